/*
Package nvram reads and writes Apple NVRAM v1 images: two redundant
partitions, each holding a "common" and a "system" section of
key=value variables.

# Layout

	+-------------------------+-------------------------+
	| partition 0             | partition 1             |
	| nvram hdr | common | sys| nvram hdr | common | sys|
	+-------------------------+-------------------------+

Each partition carries a generation counter and an Adler-32 over its body.
The valid partition with the highest generation is active.

# Editing

Mutations must be preceded by PrepareForWrite, which copies the active
partition into the other slot with a bumped generation. The previously
active partition is left intact on the device, so a torn write still
leaves one valid copy.

	img, err := nvram.Parse(data)
	if err != nil {
	    return err
	}
	img.PrepareForWrite()
	img.ActivePartition().Common.Insert(nvram.Variable{Key: []byte("boot-args"), Value: []byte("-v")})
	out, err := img.Serialize()
*/
package nvram
