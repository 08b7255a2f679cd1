package ops

import (
	"fmt"
	"io"

	"github.com/joshuapare/nvramkit/internal/logger"
	"github.com/joshuapare/nvramkit/internal/nvtext"
	"github.com/joshuapare/nvramkit/pkg/nvram"
	"github.com/joshuapare/nvramkit/pkg/types"
)

// Options controls how mutating commands commit.
type Options struct {
	// Eraser decides and performs device erases. Nil means NoErase.
	Eraser Eraser

	// DryRun applies and serializes the batch but does not touch the device.
	DryRun bool

	// BeforeCommit, if set, runs after serialization and before the device
	// is written. Returning an error aborts the commit. The backup option of
	// the CLI hooks in here.
	BeforeCommit func(serialized []byte) error
}

// Entry is one variable as reported by Lookup.
type Entry struct {
	Partition types.PartitionName
	Key       []byte
	Value     []byte
}

// Line renders the entry as partition:key=value.
func (e Entry) Line() string {
	return nvtext.FormatLine(string(e.Partition), e.Key, e.Value)
}

// Result summarizes a mutating command.
type Result struct {
	Applied   int  // tokens applied to the image
	Bytes     int  // serialized image size
	Erased    bool // device was erased before the write
	Committed bool // device was written
}

// Executor runs commands against one image and its device.
type Executor struct {
	img       Image
	dev       Device
	opts      Options
	committer *Committer
}

// NewExecutor binds an image to the device it was read from.
func NewExecutor(img Image, dev Device, opts Options) *Executor {
	return &Executor{
		img:       img,
		dev:       dev,
		opts:      opts,
		committer: &Committer{Eraser: opts.Eraser},
	}
}

// Lookup resolves read tokens. With no tokens it returns every variable of
// the common and then the system section. It never modifies the image.
func (e *Executor) Lookup(tokens []string) ([]Entry, error) {
	if len(tokens) == 0 {
		var out []Entry
		active := e.img.ActivePartition()
		for _, name := range types.Partitions {
			for _, v := range active.Section(name).Variables() {
				out = append(out, Entry{Partition: name, Key: v.Key, Value: v.Value})
			}
		}
		return out, nil
	}

	out := make([]Entry, 0, len(tokens))
	for _, token := range tokens {
		ref, err := nvtext.ParseRef(token)
		if err != nil {
			return nil, err
		}
		section, err := Resolve(ref.Partition, e.img)
		if err != nil {
			return nil, err
		}
		v, ok := section.Get(ref.Name)
		if !ok {
			return nil, types.Newf(types.ErrKindVariableNotFound, "variable %s:%s not found",
				ref.Partition, nvtext.RenderKey(ref.Name))
		}
		out = append(out, Entry{Partition: types.PartitionName(ref.Partition), Key: v.Key, Value: v.Value})
	}
	return out, nil
}

// Read prints one partition:key=value line per looked-up variable. Nothing
// is printed unless every token resolves.
func (e *Executor) Read(w io.Writer, tokens []string) error {
	entries, err := e.Lookup(tokens)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintln(w, entry.Line()); err != nil {
			return err
		}
	}
	return nil
}

// Write sets each partition:name=value token, later tokens winning, and
// commits the image. An empty batch still rewrites the device.
func (e *Executor) Write(tokens []string) (Result, error) {
	e.img.PrepareForWrite()
	for _, token := range tokens {
		a, err := nvtext.ParseAssignment(token)
		if err != nil {
			return Result{}, err
		}
		section, err := Resolve(a.Partition, e.img)
		if err != nil {
			return Result{}, err
		}
		value, err := nvtext.Decode(a.Value)
		if err != nil {
			return Result{}, err
		}
		section.Insert(nvram.Variable{Key: a.Name, Value: value})
		logger.Debug("set variable", "partition", a.Partition, "key", nvtext.RenderKey(a.Name), "bytes", len(value))
	}
	return e.commit(len(tokens))
}

// Delete removes each partition:name token's variable, ignoring names that
// are absent, and commits the image. An empty batch still rewrites the
// device.
func (e *Executor) Delete(tokens []string) (Result, error) {
	e.img.PrepareForWrite()
	for _, token := range tokens {
		ref, err := nvtext.ParseRef(token)
		if err != nil {
			return Result{}, err
		}
		section, err := Resolve(ref.Partition, e.img)
		if err != nil {
			return Result{}, err
		}
		removed := section.Remove(ref.Name)
		logger.Debug("delete variable", "partition", ref.Partition, "key", nvtext.RenderKey(ref.Name), "removed", removed)
	}
	return e.commit(len(tokens))
}

func (e *Executor) commit(applied int) (Result, error) {
	data, err := e.img.Serialize()
	if err != nil {
		return Result{}, err
	}
	res := Result{Applied: applied, Bytes: len(data)}
	if e.opts.DryRun {
		logger.Info("dry run, device not written", "bytes", len(data))
		return res, nil
	}
	if e.opts.BeforeCommit != nil {
		if err := e.opts.BeforeCommit(data); err != nil {
			return res, err
		}
	}
	res.Erased, err = e.committer.Commit(data, e.dev)
	if err != nil {
		return res, err
	}
	res.Committed = true
	return res, nil
}
