package nvram

import (
	"bytes"
	"slices"

	"github.com/joshuapare/nvramkit/internal/format"
	"github.com/joshuapare/nvramkit/pkg/types"
)

// Variable is a single NVRAM entry. Value holds the unescaped bytes.
type Variable struct {
	Key   []byte
	Value []byte
}

// Section is an ordered collection of variables with a fixed on-disk size.
// Iteration follows on-disk order; new keys are appended.
type Section struct {
	name  []byte
	size  int // bytes including the CHRP header
	vars  []Variable
	index map[string]int
}

func newSection(name []byte, size int) *Section {
	return &Section{name: name, size: size, index: make(map[string]int)}
}

// Name returns the CHRP name of the section.
func (s *Section) Name() string { return string(s.name) }

// Size returns the section's capacity in bytes, header included.
func (s *Section) Size() int { return s.size }

// Len returns the number of variables.
func (s *Section) Len() int { return len(s.vars) }

// Get looks up a variable by key.
func (s *Section) Get(key []byte) (Variable, bool) {
	i, ok := s.index[string(key)]
	if !ok {
		return Variable{}, false
	}
	return s.vars[i], true
}

// Insert adds v, replacing any variable with the same key in place.
func (s *Section) Insert(v Variable) {
	if i, ok := s.index[string(v.Key)]; ok {
		s.vars[i] = v
		return
	}
	s.index[string(v.Key)] = len(s.vars)
	s.vars = append(s.vars, v)
}

// Remove deletes the variable with the given key, keeping the order of the
// rest. It reports whether a variable was removed.
func (s *Section) Remove(key []byte) bool {
	i, ok := s.index[string(key)]
	if !ok {
		return false
	}
	s.vars = slices.Delete(s.vars, i, i+1)
	delete(s.index, string(key))
	for j := i; j < len(s.vars); j++ {
		s.index[string(s.vars[j].Key)] = j
	}
	return true
}

// Variables returns the variables in iteration order. The slice must not be
// modified.
func (s *Section) Variables() []Variable { return s.vars }

// Used returns the number of bytes the section occupies when serialized,
// header included.
func (s *Section) Used() int {
	n := format.CHRPHeaderSize
	for _, v := range s.vars {
		n += entrySize(v)
	}
	return n
}

func entrySize(v Variable) int {
	return len(v.Key) + 1 + len(format.EscapeValue(v.Value)) + 1
}

func (s *Section) clone() *Section {
	c := newSection(s.name, s.size)
	c.vars = make([]Variable, len(s.vars))
	for i, v := range s.vars {
		c.vars[i] = Variable{Key: bytes.Clone(v.Key), Value: bytes.Clone(v.Value)}
		c.index[string(v.Key)] = i
	}
	return c
}

// parseSection decodes the section that starts at data[0]. limit is the
// number of bytes available to it within the partition.
func parseSection(data []byte, name []byte, limit int) (*Section, error) {
	hdr, err := format.ParseCHRPHeader(data)
	if err != nil {
		return nil, types.Wrap(types.ErrKindParse, "section "+string(name), err)
	}
	if err := hdr.Expect(format.SectionSignature, name); err != nil {
		return nil, types.Wrap(types.ErrKindParse, "section "+string(name), err)
	}
	size := hdr.Size()
	if size < format.CHRPHeaderSize {
		return nil, types.Newf(types.ErrKindParse, "section %s: length %d below header size", name, size)
	}
	if size > limit {
		return nil, types.Newf(types.ErrKindSectionTooBig, "section %s: length %d exceeds available %d", name, size, limit)
	}

	s := newSection(name, size)
	body := data[format.CHRPHeaderSize:size]
	for len(body) > 0 && body[0] != format.EntryTerminator {
		end := bytes.IndexByte(body, format.EntryTerminator)
		if end < 0 {
			return nil, types.Newf(types.ErrKindParse, "section %s: unterminated variable", name)
		}
		entry := body[:end]
		sep := bytes.IndexByte(entry, format.KeyValueSeparator)
		if sep < 0 {
			return nil, types.Newf(types.ErrKindParse, "section %s: variable %q has no value separator", name, entry)
		}
		s.Insert(Variable{
			Key:   bytes.Clone(entry[:sep]),
			Value: format.UnescapeValue(entry[sep+1:]),
		})
		body = body[end+1:]
	}
	return s, nil
}

// serialize writes the section into dst, which is exactly s.size bytes.
func (s *Section) serialize(dst []byte) error {
	need := s.Used()
	if len(s.vars) > 0 {
		need++ // list terminator
	}
	if need > s.size {
		return types.Newf(types.ErrKindSectionTooBig, "section %s: %d bytes needed, %d available", s.name, need, s.size)
	}
	if err := format.PutCHRPHeader(dst, format.SectionSignature, s.name, s.size); err != nil {
		return types.Wrap(types.ErrKindSectionTooBig, "section "+string(s.name), err)
	}
	body := dst[format.CHRPHeaderSize:s.size]
	clear(body)
	off := 0
	for _, v := range s.vars {
		if bytes.IndexByte(v.Key, format.KeyValueSeparator) >= 0 ||
			bytes.IndexByte(v.Key, format.EntryTerminator) >= 0 {
			return types.Newf(types.ErrKindParse, "section %s: invalid variable key %q", s.name, v.Key)
		}
		off += copy(body[off:], v.Key)
		body[off] = format.KeyValueSeparator
		off++
		off += copy(body[off:], format.EscapeValue(v.Value))
		body[off] = format.EntryTerminator
		off++
	}
	return nil
}
