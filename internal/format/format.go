package format

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/volscan/volscan/internal/volume"
)

var byteSuffixes = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// ByteSize renders n as a human-readable 1024-based size with one decimal
// place: 0 -> "0 B", 1536 -> "1.5 KB", 1073741824 -> "1.0 GB".
func ByteSize(n uint64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(byteSuffixes)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", v, byteSuffixes[i])
}

// PercentFree renders free/total*100 with one decimal place, or "-" when
// the total is unknown.
func PercentFree(free, total uint64) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(free)/float64(total)*100)
}

// csvHeader is the fixed first row of CSV output.
var csvHeader = []string{
	"mount_point", "device_type", "mount_type", "is_ready",
	"label", "filesystem", "total_bytes", "free_bytes", "free_percent",
	"model_or_path",
}

// CSV writes the volumes as quoted CSV with a fixed header row.
func CSV(w io.Writer, vols []volume.Volume) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range vols {
		v := &vols[i]
		total, free, pct := "", "", ""
		if v.IsReady {
			total = strconv.FormatUint(v.TotalBytes, 10)
			free = strconv.FormatUint(v.FreeBytes, 10)
			pct = strings.TrimSuffix(PercentFree(v.FreeBytes, v.TotalBytes), "%")
			if pct == "-" {
				pct = ""
			}
		}
		row := []string{
			v.MountPoint,
			string(v.DeviceType),
			string(v.MountType),
			strconv.FormatBool(v.IsReady),
			v.Label,
			v.Filesystem,
			total,
			free,
			pct,
			v.ModelOrPath(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSON writes the volumes as an indented JSON array.
func JSON(w io.Writer, vols []volume.Volume) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(vols)
}

// Table writes an aligned text table followed by device-type and
// mount-type count summaries.
func Table(w io.Writer, vols []volume.Volume) {
	const rowFmt = "%-14s %-10s %-10s %-6s %-16s %-8s %10s %10s %7s  %s\n"

	fmt.Fprintf(w, rowFmt, "MOUNT", "TYPE", "MOUNTED AS", "READY", "LABEL", "FS", "SIZE", "FREE", "FREE%", "MODEL/PATH")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i := range vols {
		v := &vols[i]

		ready := "no"
		size, free, pct := "-", "-", "-"
		if v.IsReady {
			ready = "yes"
			size = ByteSize(v.TotalBytes)
			free = ByteSize(v.FreeBytes)
			pct = PercentFree(v.FreeBytes, v.TotalBytes)
		}

		label := v.Label
		if len(label) > 16 {
			label = label[:13] + "..."
		}

		fmt.Fprintf(w, rowFmt,
			v.MountPoint, v.DeviceType, v.MountType, ready,
			label, v.Filesystem, size, free, pct, v.ModelOrPath())
	}

	fmt.Fprintln(w, strings.Repeat("-", 110))
	fmt.Fprintf(w, "Total: %d | %s\n", len(vols), countSummary(vols))
}

// countSummary builds the trailing "local: 2 | network: 1 || physical: 2 ..."
// line, listing only the categories actually present.
func countSummary(vols []volume.Volume) string {
	devCounts := make(map[volume.DeviceType]int)
	mountCounts := make(map[volume.MountType]int)
	for i := range vols {
		devCounts[vols[i].DeviceType]++
		mountCounts[vols[i].MountType]++
	}

	devOrder := []volume.DeviceType{
		volume.DeviceLocal, volume.DeviceRemovable, volume.DeviceNetwork,
		volume.DeviceCDRom, volume.DeviceRam, volume.DeviceUnknown,
	}
	mountOrder := []volume.MountType{
		volume.MountPhysical, volume.MountVirtual, volume.MountNetwork, volume.MountUnknown,
	}

	var parts []string
	for _, dt := range devOrder {
		if n := devCounts[dt]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", dt, n))
		}
	}
	dev := strings.Join(parts, " | ")

	parts = parts[:0]
	for _, mt := range mountOrder {
		if n := mountCounts[mt]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", mt, n))
		}
	}
	return dev + " || " + strings.Join(parts, " | ")
}
