/*
Package ops applies batched read, write and delete commands to a parsed
NVRAM image and commits mutations back to the device.

# References

Commands address variables as partition:name, where partition is common
or system. Write tokens append =value with the value percent-escaped (see
internal/nvtext).

# Write safety

A batch is applied entirely in memory before anything touches the device.
Any malformed token, unknown partition, missing variable or bad escape
aborts the command and the device is left unchanged. Only after the whole
batch succeeds is the image serialized and committed with a single write:

	img, _ := nvram.Parse(data)
	ex := ops.NewExecutor(img, dev, ops.Options{Eraser: ops.MTDEraser})
	res, err := ex.Write([]string{"common:boot-args=-v"})

A failure during that final write is not rolled back. Because
PrepareForWrite places the new generation in the other partition, the
previous generation normally survives a torn write.
*/
package ops
