package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/nvramkit/internal/mtd"
	"github.com/joshuapare/nvramkit/pkg/nvram"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Report the nvram image layout",
		Long: `The info command validates the nvram image and displays both
partitions, their generations, which one is active and how full each
section is. On MTD flash the erase geometry is shown as well.

Example:
  nvramctl info
  nvramctl info -d nvram.img --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

type sectionInfo struct {
	Name      string `json:"name"`
	Variables int    `json:"variables"`
	Used      int    `json:"used"`
	Size      int    `json:"size"`
}

type partitionInfo struct {
	Slot       int           `json:"slot"`
	Valid      bool          `json:"valid"`
	Active     bool          `json:"active"`
	Generation uint32        `json:"generation,omitempty"`
	Sections   []sectionInfo `json:"sections,omitempty"`
}

type imageInfo struct {
	Device     string          `json:"device"`
	Size       int             `json:"size"`
	Partitions []partitionInfo `json:"partitions"`
	EraseSize  uint32          `json:"erase_size,omitempty"`
}

func collectInfo(s *session) imageInfo {
	info := imageInfo{Device: s.dev.Path(), Size: s.img.Size()}
	for slot := range nvram.PartitionCount {
		pi := partitionInfo{Slot: slot, Active: slot == s.img.ActiveIndex()}
		if p := s.img.Partition(slot); p != nil {
			pi.Valid = true
			pi.Generation = p.Generation
			for _, sec := range []*nvram.Section{p.Common, p.System} {
				pi.Sections = append(pi.Sections, sectionInfo{
					Name:      sec.Name(),
					Variables: sec.Len(),
					Used:      sec.Used(),
					Size:      sec.Size(),
				})
			}
		}
		info.Partitions = append(info.Partitions, pi)
	}
	if geo, err := mtd.GetInfo(s.dev); err == nil {
		info.EraseSize = geo.EraseSize
	}
	return info
}

func runInfo() error {
	s, err := openSession(cfg.Device)
	if err != nil {
		return err
	}
	defer s.Close()

	info := collectInfo(s)
	if cfg.JSON {
		return printJSON(info)
	}

	printInfo("NVRAM Information:\n")
	printInfo("  Device: %s\n", info.Device)
	printInfo("  Size: %d bytes\n", info.Size)
	if info.EraseSize > 0 {
		printInfo("  Erase block: %d bytes\n", info.EraseSize)
	}
	for _, p := range info.Partitions {
		marker := ""
		if p.Active {
			marker = " (active)"
		}
		if !p.Valid {
			printInfo("\nPartition %d: invalid%s\n", p.Slot, marker)
			continue
		}
		printInfo("\nPartition %d: generation %d%s\n", p.Slot, p.Generation, marker)
		for _, sec := range p.Sections {
			printInfo("  %-6s %3d variable(s), %d/%d bytes\n", sec.Name, sec.Variables, sec.Used, sec.Size)
		}
	}
	return nil
}
