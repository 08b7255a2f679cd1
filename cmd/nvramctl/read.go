package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nvramkit/internal/nvtext"
	"github.com/joshuapare/nvramkit/pkg/ops"
)

func init() {
	rootCmd.AddCommand(newReadCmd())
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read [partition:name...]",
		Short: "Read nvram variables",
		Long: `The read command prints variables as partition:name=value, one per
line. Without arguments every variable of the common and system partitions
is printed.

Example:
  nvramctl read
  nvramctl read common:boot-args
  nvramctl read system:boot-volume --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(args)
		},
	}
	return cmd
}

// jsonEntry is the JSON form of one variable.
type jsonEntry struct {
	Partition string `json:"partition"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

func runRead(args []string) error {
	s, err := openSession(cfg.Device)
	if err != nil {
		return err
	}
	defer s.Close()

	ex := ops.NewExecutor(s.img, s.dev, ops.Options{})
	if !cfg.JSON {
		return ex.Read(os.Stdout, args)
	}

	entries, err := ex.Lookup(args)
	if err != nil {
		return err
	}
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonEntry{
			Partition: string(e.Partition),
			Key:       nvtext.RenderKey(e.Key),
			Value:     nvtext.Encode(e.Value),
		})
	}
	return printJSON(out)
}
