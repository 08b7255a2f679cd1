package main

import (
	"github.com/spf13/cobra"
)

var (
	deleteBackup string
	deleteDryRun bool
)

func init() {
	cmd := newDeleteCmd()
	cmd.Flags().StringVar(&deleteBackup, "backup", "", "Save the device contents to this file before writing")
	cmd.Flags().BoolVar(&deleteDryRun, "dry-run", false, "Apply and serialize but do not write the device")
	rootCmd.AddCommand(cmd)
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [partition:name...]",
		Short: "Delete nvram variables",
		Long: `The delete command removes variables and writes the image back to the
device. Names that do not exist are ignored.

Example:
  nvramctl delete common:boot-args
  nvramctl delete system:a system:b --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args)
		},
	}
	return cmd
}

func runDelete(args []string) error {
	s, err := openSession(cfg.Device)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.executor(deleteBackup, deleteDryRun).Delete(args)
	if err != nil {
		return err
	}
	return reportResult("deleted", res)
}
