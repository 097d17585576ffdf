package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/volscan/volscan/internal/config"
	"github.com/volscan/volscan/internal/format"
	"github.com/volscan/volscan/internal/scanner"
	"github.com/volscan/volscan/internal/volume"
)

var detailCmd = &cobra.Command{
	Use:   "detail <mount>",
	Short: "Show everything known about one volume",
	Long: `Show all collected attributes for a single mount point.

Examples:
  volscan detail C:
  volscan detail /mnt/backup
  volscan detail D: --json`,
	Args: cobra.ExactArgs(1),
	Run:  runDetail,
}

func init() {
	detailCmd.Flags().Bool("json", false, "Output as JSON")
}

func runDetail(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	vols, err := scanner.Scan(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v := findVolume(vols, args[0])
	if v == nil {
		fmt.Fprintf(os.Stderr, "Volume not found: %s\n", args[0])
		os.Exit(1)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(v)
		return
	}

	printDetail(v)
}

// findVolume matches a mount point argument against the snapshot, ignoring
// case and trailing path separators.
func findVolume(vols []volume.Volume, query string) *volume.Volume {
	norm := func(s string) string {
		s = strings.TrimRight(s, `/\`)
		if s == "" {
			s = "/"
		}
		return strings.ToUpper(s)
	}
	want := norm(query)
	for i := range vols {
		if norm(vols[i].MountPoint) == want {
			return &vols[i]
		}
	}
	return nil
}

func printDetail(v *volume.Volume) {
	fmt.Printf("Volume: %s\n", v.MountPoint)
	fmt.Println(strings.Repeat("-", 40))

	printField("Device Type", string(v.DeviceType))
	printField("Mount Type", string(v.MountType))
	if v.IsReady {
		printField("Ready", "yes")
	} else {
		printField("Ready", "no")
	}
	printField("Label", v.Label)
	printField("Filesystem", v.Filesystem)
	if v.IsReady {
		printField("Total", fmt.Sprintf("%s bytes (%s)", humanize.Comma(int64(v.TotalBytes)), format.ByteSize(v.TotalBytes)))
		printField("Free", fmt.Sprintf("%s bytes (%s)", humanize.Comma(int64(v.FreeBytes)), format.ByteSize(v.FreeBytes)))
		printField("Free %", format.PercentFree(v.FreeBytes, v.TotalBytes))
	}
	printField("Network Path", v.NetworkPath)

	if v.Device != nil {
		fmt.Println()
		fmt.Println("Device:")
		printField("  Model", v.Device.Model)
		printField("  Manufacturer", v.Device.Manufacturer)
		printField("  Interface", v.Device.InterfaceType)
		printField("  Media Type", v.Device.MediaType)
		printField("  Serial", v.Device.Serial)
		printField("  Firmware", v.Device.Firmware)
		printField("  Bus", v.Device.BusType)
		printField("  Device ID", v.Device.DeviceID)
		printField("  Partition Style", v.Device.PartitionStyle)
		printField("  Health", v.Device.HealthStatus)
	}
}

func printField(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%-20s %s\n", name+":", value)
}
