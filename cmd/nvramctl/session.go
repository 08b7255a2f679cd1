package main

import (
	"os"

	"github.com/joshuapare/nvramkit/internal/device"
	"github.com/joshuapare/nvramkit/internal/logger"
	"github.com/joshuapare/nvramkit/pkg/nvram"
	"github.com/joshuapare/nvramkit/pkg/ops"
	"github.com/joshuapare/nvramkit/pkg/types"
)

// session is one open device and the image parsed from it.
type session struct {
	dev      *device.File
	img      *nvram.Image
	original []byte
}

// openSession opens the device read-write, reads it fully and parses it.
// The caller must Close the session on every path.
func openSession(path string) (*session, error) {
	logger.Debug("opening device", "path", path)
	dev, err := device.Open(path)
	if err != nil {
		return nil, types.Wrap(types.ErrKindIO, "open device", err)
	}
	data, err := dev.ReadAll()
	if err != nil {
		dev.Close()
		return nil, types.Wrap(types.ErrKindIO, "read device", err)
	}
	img, err := nvram.Parse(data)
	if err != nil {
		dev.Close()
		return nil, err
	}
	for slot := range nvram.PartitionCount {
		if img.Partition(slot) == nil {
			logger.Warn("partition failed validation, keeping raw bytes", "device", path, "slot", slot)
		}
	}
	logger.Debug("parsed image", "device", path, "bytes", len(data), "active", img.ActiveIndex())
	return &session{dev: dev, img: img, original: data}, nil
}

func (s *session) Close() error {
	return s.dev.Close()
}

// executor builds an executor for a mutating command. backupPath, when set,
// receives the device contents from before the commit.
func (s *session) executor(backupPath string, dryRun bool) *ops.Executor {
	opts := ops.Options{Eraser: ops.MTDEraser, DryRun: dryRun}
	if backupPath != "" {
		opts.BeforeCommit = func([]byte) error {
			if err := os.WriteFile(backupPath, s.original, 0o600); err != nil {
				return types.Wrap(types.ErrKindIO, "write backup", err)
			}
			logger.Debug("wrote backup", "path", backupPath, "bytes", len(s.original))
			return nil
		}
	}
	return ops.NewExecutor(s.img, s.dev, opts)
}

// reportResult prints the outcome of a mutating command.
func reportResult(action string, res ops.Result) error {
	if cfg.JSON {
		return printJSON(map[string]interface{}{
			"action":    action,
			"applied":   res.Applied,
			"bytes":     res.Bytes,
			"erased":    res.Erased,
			"committed": res.Committed,
		})
	}
	if !res.Committed {
		printInfo("Dry run: %d variable(s) %s, %d byte image not written\n", res.Applied, action, res.Bytes)
		return nil
	}
	printVerbose("%d variable(s) %s, wrote %d bytes (erased: %v)\n", res.Applied, action, res.Bytes, res.Erased)
	return nil
}
