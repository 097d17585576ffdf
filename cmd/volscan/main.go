package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/volscan/volscan/internal/config"
	"github.com/volscan/volscan/internal/format"
	"github.com/volscan/volscan/internal/scanner"
	"github.com/volscan/volscan/internal/version"
	"github.com/volscan/volscan/internal/volume"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "volscan",
	Short: "Storage volume enumeration and classification tool",
	Long: `volscan lists the storage volumes visible to the operating system and
classifies each one by device type (local, removable, network, optical,
RAM) and mount type (physical, network, virtual). Its main use is telling
genuine physical storage apart from virtual or network-backed volumes.`,
	Run: runList,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLevel(log.WarnLevel)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List and classify all visible volumes",
	Run:   runList,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the volscan version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("volscan " + version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/volscan/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	addListFlags(rootCmd)
	addListFlags(listCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(versionCmd)
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("all", "a", false, "include volumes that are not ready")
	cmd.Flags().StringP("format", "f", "", "output format: table, csv, or json")
	cmd.Flags().StringP("type", "t", "", "only show one device type (local, removable, network, cdrom, ram, unknown)")
	cmd.Flags().String("min-size", "", "only show volumes of at least this capacity (e.g. 10GB)")
}

func runList(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	showAll, _ := cmd.Flags().GetBool("all")
	showAll = showAll || cfg.ShowAll

	outFormat, _ := cmd.Flags().GetString("format")
	if outFormat == "" {
		outFormat = cfg.Format
	}

	var typeFilter volume.DeviceType
	filterByType := false
	if typeStr, _ := cmd.Flags().GetString("type"); typeStr != "" {
		typeFilter, err = volume.ParseDeviceType(typeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filterByType = true
	}

	var minSize uint64
	if sizeStr, _ := cmd.Flags().GetString("min-size"); sizeStr != "" {
		minSize, err = humanize.ParseBytes(sizeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --min-size %q: %v\n", sizeStr, err)
			os.Exit(1)
		}
	}

	vols, err := scanner.Scan(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	filtered := vols[:0]
	for _, v := range vols {
		if !showAll && !v.IsReady {
			continue
		}
		if filterByType && v.DeviceType != typeFilter {
			continue
		}
		if minSize > 0 && v.TotalBytes < minSize {
			continue
		}
		filtered = append(filtered, v)
	}

	switch outFormat {
	case "table", "":
		format.Table(os.Stdout, filtered)
	case "csv":
		if err := format.CSV(os.Stdout, filtered); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
	case "json":
		if err := format.JSON(os.Stdout, filtered); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (expected table, csv, or json)\n", outFormat)
		os.Exit(1)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
