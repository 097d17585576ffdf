//go:build linux

package collector

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/volscan/volscan/internal/volume"
)

// Provider reads device attributes from sysfs. Reads never wake a sleeping
// drive and every missing file just leaves its attribute empty.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

// Attributes resolves a mounted block device to its parent disk and reads
// that disk's sysfs attributes. Returns nil for mounts not backed by a
// block device (network shares, tmpfs).
func (p *Provider) Attributes(mountPoint, device string) *volume.DeviceAttributes {
	disk := ParentDisk(device)
	if disk == "" {
		return nil
	}

	blockPath := filepath.Join("/sys/block", disk)
	devicePath := filepath.Join(blockPath, "device")
	if _, err := os.Stat(blockPath); err != nil {
		return nil
	}

	attrs := &volume.DeviceAttributes{
		Model:        sysfsRead(devicePath, "model"),
		Manufacturer: sysfsRead(devicePath, "vendor"),
		Firmware:     sysfsRead(devicePath, "rev"),
		Serial:       sysfsRead(devicePath, "serial"),
	}
	if attrs.Serial == "" {
		// virtio disks expose the serial on the block node itself
		attrs.Serial = sysfsRead(blockPath, "serial")
	}

	switch sysfsRead(blockPath, "queue/rotational") {
	case "1":
		attrs.MediaType = "HDD"
	case "0":
		attrs.MediaType = "SSD"
	}

	if link, err := filepath.EvalSymlinks(blockPath); err == nil {
		attrs.InterfaceType = transportFromSysfsPath(link)
		attrs.BusType = attrs.InterfaceType
	}

	attrs.PartitionStyle = partitionStyle("/dev/" + disk)

	return attrs
}

func sysfsRead(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// partitionStyle asks lsblk for the partition table type of the parent
// disk. Best-effort; lsblk may be absent.
func partitionStyle(disk string) string {
	out, err := exec.Command("lsblk", "-dno", "PTTYPE", disk).Output()
	if err != nil {
		log.WithError(err).WithField("disk", disk).Debug("lsblk query failed")
		return ""
	}
	switch strings.TrimSpace(string(out)) {
	case "gpt":
		return "GPT"
	case "dos", "mbr":
		return "MBR"
	}
	return ""
}

// ParentDisk resolves a mounted device node to the name of its parent disk
// under /sys/block, or "" when the mount is not backed by a block device.
func ParentDisk(device string) string {
	return parentDiskName(resolveDevice(device))
}

// resolveDevice follows symlinks such as /dev/disk/by-uuid/... back to the
// real node. Returns the input unchanged on failure.
func resolveDevice(device string) string {
	if resolved, err := filepath.EvalSymlinks(device); err == nil {
		return resolved
	}
	return device
}

// parentDiskName maps a partition node to its parent disk name:
// /dev/sda1 -> sda, /dev/nvme0n1p2 -> nvme0n1, /dev/mmcblk0p1 -> mmcblk0.
// Returns "" for anything that is not a plain /dev node.
func parentDiskName(device string) string {
	name := strings.TrimPrefix(device, "/dev/")
	if name == device || name == "" || strings.Contains(name, "/") {
		return ""
	}

	if strings.HasPrefix(name, "nvme") || strings.HasPrefix(name, "mmcblk") || strings.HasPrefix(name, "loop") {
		// pN partition suffix; the parent name always ends in a digit
		// (nvme0n1p2 -> nvme0n1), which keeps loop3 from losing its tail
		if idx := strings.LastIndex(name, "p"); idx > 0 &&
			name[idx+1:] != "" && allDigits(name[idx+1:]) && isDigit(name[idx-1]) {
			return name[:idx]
		}
		return name
	}

	// sdXN / vdXN / hdXN style: strip the trailing partition number
	return strings.TrimRight(name, "0123456789")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// transportFromSysfsPath infers the bus from the resolved sysfs device
// path. Order matters: virtio paths also traverse a pci segment, and usb
// paths contain scsi hosts.
func transportFromSysfsPath(path string) string {
	switch {
	case strings.Contains(path, "/virtio"):
		return "Virtual"
	case strings.Contains(path, "/usb"):
		return "USB"
	case strings.Contains(path, "/nvme"):
		return "NVMe"
	case strings.Contains(path, "/ata"):
		return "SATA"
	case strings.Contains(path, "/mmc"):
		return "MMC"
	case strings.Contains(path, "sas"):
		return "SAS"
	case strings.Contains(path, "scsi") || strings.Contains(path, "/host"):
		return "SCSI"
	}
	return ""
}
