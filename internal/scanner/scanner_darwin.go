//go:build darwin

package scanner

import (
	"strings"

	"golang.org/x/sys/unix"

	"github.com/volscan/volscan/internal/collector"
	"github.com/volscan/volscan/internal/config"
	"github.com/volscan/volscan/internal/volume"
)

// skippedFSTypes are kernel plumbing, not storage.
var skippedFSTypes = map[string]bool{
	"devfs": true, "autofs": true, "nullfs": true,
}

func scan(cfg *config.Config) ([]volume.Volume, error) {
	n, err := unix.Getfsstat(nil, unix.MNT_NOWAIT)
	if err != nil {
		return nil, err
	}

	stats := make([]unix.Statfs_t, n)
	n, err = unix.Getfsstat(stats, unix.MNT_NOWAIT)
	if err != nil {
		return nil, err
	}

	provider := collector.New()
	var vols []volume.Volume

	for i := range stats[:n] {
		st := &stats[i]
		mountPoint := unix.ByteSliceToString(st.Mntonname[:])
		device := unix.ByteSliceToString(st.Mntfromname[:])
		fstype := unix.ByteSliceToString(st.Fstypename[:])

		if skippedFSTypes[fstype] {
			continue
		}
		if cfg != nil && (cfg.SkipFS(fstype) || cfg.SkipMount(mountPoint)) {
			continue
		}

		v := volume.Volume{
			MountPoint: mountPoint,
			Filesystem: fstype,
			DeviceType: deviceTypeForStat(st, device, fstype),
			IsReady:    true,
			TotalBytes: st.Blocks * uint64(st.Bsize),
			FreeBytes:  st.Bfree * uint64(st.Bsize),
		}

		if v.DeviceType == volume.DeviceNetwork {
			v.NetworkPath = device
		} else {
			v.Device = provider.Attributes(mountPoint, device)
		}

		vols = append(vols, v)
	}

	return vols, nil
}

func deviceTypeForStat(st *unix.Statfs_t, device, fstype string) volume.DeviceType {
	switch {
	case st.Flags&unix.MNT_LOCAL == 0:
		return volume.DeviceNetwork
	case fstype == "cd9660" || fstype == "udf":
		return volume.DeviceCDRom
	case strings.HasPrefix(device, "/dev/"):
		return volume.DeviceLocal
	}
	return volume.DeviceUnknown
}
