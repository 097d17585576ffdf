//go:build windows

package scanner

import (
	"fmt"
	"syscall"
	"unsafe"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"github.com/volscan/volscan/internal/collector"
	"github.com/volscan/volscan/internal/config"
	"github.com/volscan/volscan/internal/volume"
)

// GetDriveTypeW return codes
const (
	driveUnknown   = 0
	driveNoRootDir = 1
	driveRemovable = 2
	driveFixed     = 3
	driveRemote    = 4
	driveCDRom     = 5
	driveRAMDisk   = 6
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	mpr      = windows.NewLazySystemDLL("mpr.dll")

	procGetLogicalDrives      = kernel32.NewProc("GetLogicalDrives")
	procGetDriveTypeW         = kernel32.NewProc("GetDriveTypeW")
	procGetVolumeInformationW = kernel32.NewProc("GetVolumeInformationW")
	procGetDiskFreeSpaceExW   = kernel32.NewProc("GetDiskFreeSpaceExW")
	procWNetGetConnectionW    = mpr.NewProc("WNetGetConnectionW")
)

// deviceTypeFromDriveCode is the 1:1 lookup from the OS drive kind.
func deviceTypeFromDriveCode(code uint32) volume.DeviceType {
	switch code {
	case driveRemovable:
		return volume.DeviceRemovable
	case driveFixed:
		return volume.DeviceLocal
	case driveRemote:
		return volume.DeviceNetwork
	case driveCDRom:
		return volume.DeviceCDRom
	case driveRAMDisk:
		return volume.DeviceRam
	}
	return volume.DeviceUnknown
}

func scan(cfg *config.Config) ([]volume.Volume, error) {
	ret, _, err := procGetLogicalDrives.Call()
	if ret == 0 {
		return nil, fmt.Errorf("GetLogicalDrives: %v", err)
	}
	mask := uint32(ret)

	provider := collector.New()
	var vols []volume.Volume

	for i := 0; i < 26; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		letter := string(rune('A'+i)) + ":"
		if cfg != nil && cfg.SkipMount(letter) {
			continue
		}

		code := driveTypeCode(letter + `\`)
		if code == driveNoRootDir {
			continue
		}

		v := volume.Volume{
			MountPoint: letter,
			DeviceType: deviceTypeFromDriveCode(code),
		}

		if label, fs, ok := volumeInformation(letter); ok {
			v.IsReady = true
			v.Label = label
			v.Filesystem = fs
			if total, free, err := diskFreeSpace(letter); err == nil {
				v.TotalBytes = total
				v.FreeBytes = free
			} else {
				log.WithError(err).WithField("mount", letter).Debug("free space query failed")
			}
		}

		if v.DeviceType == volume.DeviceNetwork {
			v.NetworkPath = networkPath(letter)
		} else {
			v.Device = provider.Attributes(letter, "")
		}

		vols = append(vols, v)
	}

	return vols, nil
}

func driveTypeCode(root string) uint32 {
	ptr, err := syscall.UTF16PtrFromString(root)
	if err != nil {
		return driveUnknown
	}
	ret, _, _ := procGetDriveTypeW.Call(uintptr(unsafe.Pointer(ptr)))
	return uint32(ret)
}

// volumeInformation returns the label and filesystem name. A failed call
// means no accessible media: the drive letter exists but is not ready.
func volumeInformation(letter string) (label, fs string, ok bool) {
	root, err := syscall.UTF16PtrFromString(letter + `\`)
	if err != nil {
		return "", "", false
	}

	labelBuf := make([]uint16, 256)
	fsBuf := make([]uint16, 256)
	var serial, maxComponent, flags uint32

	ret, _, _ := procGetVolumeInformationW.Call(
		uintptr(unsafe.Pointer(root)),
		uintptr(unsafe.Pointer(&labelBuf[0])),
		uintptr(len(labelBuf)),
		uintptr(unsafe.Pointer(&serial)),
		uintptr(unsafe.Pointer(&maxComponent)),
		uintptr(unsafe.Pointer(&flags)),
		uintptr(unsafe.Pointer(&fsBuf[0])),
		uintptr(len(fsBuf)),
	)
	if ret == 0 {
		return "", "", false
	}

	return windows.UTF16ToString(labelBuf), windows.UTF16ToString(fsBuf), true
}

func diskFreeSpace(letter string) (total, free uint64, err error) {
	root, err := syscall.UTF16PtrFromString(letter + `\`)
	if err != nil {
		return 0, 0, err
	}

	var freeAvailable, totalBytes, totalFree uint64
	ret, _, callErr := procGetDiskFreeSpaceExW.Call(
		uintptr(unsafe.Pointer(root)),
		uintptr(unsafe.Pointer(&freeAvailable)),
		uintptr(unsafe.Pointer(&totalBytes)),
		uintptr(unsafe.Pointer(&totalFree)),
	)
	if ret == 0 {
		return 0, 0, fmt.Errorf("GetDiskFreeSpaceExW: %v", callErr)
	}

	return totalBytes, totalFree, nil
}

// networkPath resolves a mapped drive letter to its UNC path, "" when the
// mapping cannot be read.
func networkPath(letter string) string {
	local, err := syscall.UTF16PtrFromString(letter)
	if err != nil {
		return ""
	}

	buf := make([]uint16, 1024)
	n := uint32(len(buf))
	ret, _, _ := procWNetGetConnectionW.Call(
		uintptr(unsafe.Pointer(local)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&n)),
	)
	if ret != 0 {
		return ""
	}
	return windows.UTF16ToString(buf)
}
