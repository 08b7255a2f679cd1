package main

import (
	"github.com/spf13/cobra"
)

var (
	writeBackup string
	writeDryRun bool
)

func init() {
	cmd := newWriteCmd()
	cmd.Flags().StringVar(&writeBackup, "backup", "", "Save the device contents to this file before writing")
	cmd.Flags().BoolVar(&writeDryRun, "dry-run", false, "Apply and serialize but do not write the device")
	rootCmd.AddCommand(cmd)
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write [partition:name=value...]",
		Short: "Write nvram variables",
		Long: `The write command sets variables and writes the image back to the
device. Values use %xx escapes for bytes that are not printable ASCII and
for '%' itself. When a name is given twice the last value wins.

Example:
  nvramctl write common:boot-args="-v"
  nvramctl write common:test=%48%65%6c%6c%6f
  nvramctl write system:a=1 system:b=2 --backup nvram.bak`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
	return cmd
}

func runWrite(args []string) error {
	s, err := openSession(cfg.Device)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.executor(writeBackup, writeDryRun).Write(args)
	if err != nil {
		return err
	}
	return reportResult("written", res)
}
