package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/volscan/volscan/internal/volume"
)

func TestByteSize(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
		{1536 * 1024 * 1024, "1.5 GB"},
		{1099511627776, "1.0 TB"},
		{1125899906842624, "1.0 PB"},
		{1152921504606846976, "1.0 EB"},
	}
	for _, tt := range tests {
		if got := ByteSize(tt.in); got != tt.want {
			t.Errorf("ByteSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercentFree(t *testing.T) {
	tests := []struct {
		free, total uint64
		want        string
	}{
		{0, 0, "-"},
		{512, 1024, "50.0%"},
		{1, 3, "33.3%"},
		{1024, 1024, "100.0%"},
		{0, 1024, "0.0%"},
	}
	for _, tt := range tests {
		if got := PercentFree(tt.free, tt.total); got != tt.want {
			t.Errorf("PercentFree(%d, %d) = %q, want %q", tt.free, tt.total, got, tt.want)
		}
	}
}

func TestCSVQuoting(t *testing.T) {
	vols := []volume.Volume{
		{
			MountPoint: "D:",
			DeviceType: volume.DeviceRemovable,
			MountType:  volume.MountPhysical,
			IsReady:    true,
			Label:      `My "Backup" Stick`,
			Filesystem: "FAT32",
			TotalBytes: 2048,
			FreeBytes:  1024,
		},
	}

	var buf bytes.Buffer
	if err := CSV(&buf, vols); err != nil {
		t.Fatalf("CSV() failed: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != strings.Join(csvHeader, ",") {
		t.Errorf("header = %q", lines[0])
	}
	// Embedded quotes must be doubled and the field wrapped in quotes.
	if !strings.Contains(lines[1], `"My ""Backup"" Stick"`) {
		t.Errorf("label not quote-escaped: %q", lines[1])
	}
	if !strings.Contains(lines[1], "50.0") {
		t.Errorf("free percent missing: %q", lines[1])
	}
}

func TestCSVNotReadyOmitsCapacity(t *testing.T) {
	vols := []volume.Volume{
		{MountPoint: "E:", DeviceType: volume.DeviceCDRom, MountType: volume.MountPhysical},
	}

	var buf bytes.Buffer
	if err := CSV(&buf, vols); err != nil {
		t.Fatalf("CSV() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := "E:,cdrom,physical,false,,,,,,"
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestTable(t *testing.T) {
	vols := []volume.Volume{
		{
			MountPoint: "C:",
			DeviceType: volume.DeviceLocal,
			MountType:  volume.MountPhysical,
			IsReady:    true,
			Label:      "System",
			Filesystem: "NTFS",
			TotalBytes: 512 * 1024 * 1024 * 1024,
			FreeBytes:  256 * 1024 * 1024 * 1024,
			Device:     &volume.DeviceAttributes{Model: "Samsung SSD 980"},
		},
		{
			MountPoint:  "Z:",
			DeviceType:  volume.DeviceNetwork,
			MountType:   volume.MountNetwork,
			IsReady:     true,
			Filesystem:  "NTFS",
			NetworkPath: `\\nas\media`,
		},
		{
			MountPoint: "E:",
			DeviceType: volume.DeviceCDRom,
			MountType:  volume.MountPhysical,
		},
	}

	var buf bytes.Buffer
	Table(&buf, vols)
	out := buf.String()

	for _, want := range []string{
		"MOUNT", "MODEL/PATH",
		"Samsung SSD 980",
		`\\nas\media`,
		"512.0 GB", "50.0%",
		"Total: 3",
		"local: 1 | network: 1 | cdrom: 1",
		"physical: 2 | network: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	// Not-ready rows show no capacity.
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "E:") && !strings.Contains(line, "no") {
			t.Errorf("not-ready row should show ready=no: %q", line)
		}
	}
}

func TestJSON(t *testing.T) {
	vols := []volume.Volume{
		{MountPoint: "/", DeviceType: volume.DeviceLocal, MountType: volume.MountPhysical, IsReady: true},
	}

	var buf bytes.Buffer
	if err := JSON(&buf, vols); err != nil {
		t.Fatalf("JSON() failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"mount_point": "/"`) || !strings.Contains(out, `"mount_type": "physical"`) {
		t.Errorf("unexpected JSON output:\n%s", out)
	}
	// Absent device attributes must be omitted, not rendered as null noise.
	if strings.Contains(out, `"device"`) {
		t.Errorf("empty device attributes should be omitted:\n%s", out)
	}
}
