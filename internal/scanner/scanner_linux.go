//go:build linux

package scanner

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/volscan/volscan/internal/collector"
	"github.com/volscan/volscan/internal/config"
	"github.com/volscan/volscan/internal/volume"
)

// pseudoFSTypes never represent storage volumes.
var pseudoFSTypes = map[string]bool{
	"proc": true, "sysfs": true, "devtmpfs": true, "devpts": true,
	"cgroup": true, "cgroup2": true, "securityfs": true, "pstore": true,
	"bpf": true, "tracefs": true, "debugfs": true, "configfs": true,
	"fusectl": true, "mqueue": true, "hugetlbfs": true, "autofs": true,
	"binfmt_misc": true, "overlay": true, "squashfs": true, "nsfs": true,
	"rpc_pipefs": true, "efivarfs": true, "selinuxfs": true,
	"fuse.portal": true, "fuse.gvfsd-fuse": true,
}

// pseudoMountPrefixes hide kernel and session plumbing mounts.
var pseudoMountPrefixes = []string{"/sys", "/proc", "/dev", "/run", "/snap"}

var networkFSTypes = map[string]bool{
	"nfs": true, "nfs4": true, "cifs": true, "smbfs": true, "smb3": true,
	"sshfs": true, "fuse.sshfs": true, "9p": true, "ceph": true,
	"fuse.ceph": true, "glusterfs": true, "fuse.glusterfs": true,
	"afs": true, "ncpfs": true,
}

type mountEntry struct {
	device     string
	mountPoint string
	fstype     string
}

func scan(cfg *config.Config) ([]volume.Volume, error) {
	f, err := os.Open("/proc/self/mounts")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := parseMounts(f, cfg)
	provider := collector.New()

	vols := make([]volume.Volume, 0, len(entries))
	for _, e := range entries {
		v := volume.Volume{
			MountPoint: e.mountPoint,
			Filesystem: e.fstype,
			DeviceType: deviceTypeForMount(e.device, e.fstype),
		}

		var st unix.Statfs_t
		if err := unix.Statfs(e.mountPoint, &st); err == nil {
			v.IsReady = true
			v.TotalBytes = st.Blocks * uint64(st.Bsize)
			v.FreeBytes = st.Bfree * uint64(st.Bsize)
		} else {
			log.WithError(err).WithField("mount", e.mountPoint).Debug("statfs failed")
		}

		if v.DeviceType == volume.DeviceNetwork {
			v.NetworkPath = e.device
		} else {
			v.Device = provider.Attributes(e.mountPoint, e.device)
			v.Label = labelForDevice(e.device)
		}

		vols = append(vols, v)
	}

	return vols, nil
}

// parseMounts reads /proc/self/mounts-format data, dropping pseudo
// filesystems, configured exclusions, and duplicate mount points.
func parseMounts(r io.Reader, cfg *config.Config) []mountEntry {
	var entries []mountEntry
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
scanning:
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}

		device := unescapeMountField(fields[0])
		mountPoint := unescapeMountField(fields[1])
		fstype := fields[2]

		if pseudoFSTypes[fstype] || seen[mountPoint] {
			continue
		}
		for _, prefix := range pseudoMountPrefixes {
			if mountPoint == prefix || strings.HasPrefix(mountPoint, prefix+"/") {
				continue scanning
			}
		}
		if cfg != nil && (cfg.SkipFS(fstype) || cfg.SkipMount(mountPoint)) {
			continue
		}

		seen[mountPoint] = true
		entries = append(entries, mountEntry{device: device, mountPoint: mountPoint, fstype: fstype})
	}

	return entries
}

// unescapeMountField decodes the octal escapes (\040 for space, \011 for
// tab, ...) the kernel uses in /proc mounts fields.
func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// deviceTypeForMount derives the device type from the filesystem type and
// the backing device node.
func deviceTypeForMount(device, fstype string) volume.DeviceType {
	switch {
	case networkFSTypes[fstype]:
		return volume.DeviceNetwork
	case fstype == "tmpfs" || fstype == "ramfs":
		return volume.DeviceRam
	case fstype == "iso9660" || fstype == "udf":
		return volume.DeviceCDRom
	}

	if strings.HasPrefix(device, "/dev/") {
		if isRemovable(device) {
			return volume.DeviceRemovable
		}
		return volume.DeviceLocal
	}

	return volume.DeviceUnknown
}

func isRemovable(device string) bool {
	disk := collector.ParentDisk(device)
	if disk == "" {
		return false
	}
	data, err := os.ReadFile(filepath.Join("/sys/block", disk, "removable"))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}

// labelForDevice searches the udev by-label symlinks for one pointing at
// the mounted device.
func labelForDevice(device string) string {
	resolved, err := filepath.EvalSymlinks(device)
	if err != nil {
		resolved = device
	}

	links, err := os.ReadDir("/dev/disk/by-label")
	if err != nil {
		return ""
	}
	for _, link := range links {
		target, err := filepath.EvalSymlinks(filepath.Join("/dev/disk/by-label", link.Name()))
		if err != nil {
			continue
		}
		if target == resolved {
			return unescapeUdevLabel(link.Name())
		}
	}
	return ""
}

// unescapeUdevLabel decodes udev's \xNN hex escapes in by-label names.
func unescapeUdevLabel(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && s[i+1] == 'x' {
			if n, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
