package volume

import (
	"fmt"
	"strings"
)

// DeviceType is the OS-reported kind of a volume's backing device.
type DeviceType string

const (
	DeviceUnknown   DeviceType = "unknown"
	DeviceLocal     DeviceType = "local"
	DeviceRemovable DeviceType = "removable"
	DeviceNetwork   DeviceType = "network"
	DeviceCDRom     DeviceType = "cdrom"
	DeviceRam       DeviceType = "ram"
)

// MountType says whether a volume is backed by real hardware, a network
// share, or a virtual device. Orthogonal to DeviceType: a removable device
// is normally physical, a local device may be physical or virtual.
type MountType string

const (
	MountUnknown  MountType = "unknown"
	MountPhysical MountType = "physical"
	MountNetwork  MountType = "network"
	MountVirtual  MountType = "virtual"
)

// DeviceTypeNames lists the accepted --type filter values.
var DeviceTypeNames = []string{"local", "removable", "network", "cdrom", "ram", "unknown"}

// ParseDeviceType converts a user-supplied filter string to a DeviceType.
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local", "fixed":
		return DeviceLocal, nil
	case "removable":
		return DeviceRemovable, nil
	case "network", "remote":
		return DeviceNetwork, nil
	case "cdrom", "optical":
		return DeviceCDRom, nil
	case "ram", "ramdisk":
		return DeviceRam, nil
	case "unknown":
		return DeviceUnknown, nil
	}
	return DeviceUnknown, fmt.Errorf("unknown device type %q (expected one of: %s)", s, strings.Join(DeviceTypeNames, ", "))
}

// DeviceAttributes holds device-level metadata gathered opportunistically
// from the host's device-management interface. Any field may be empty; an
// empty string means the attribute was not available, never a match.
type DeviceAttributes struct {
	Model          string `json:"model,omitempty"`
	Manufacturer   string `json:"manufacturer,omitempty"`
	InterfaceType  string `json:"interface_type,omitempty"`
	MediaType      string `json:"media_type,omitempty"`
	Serial         string `json:"serial,omitempty"`
	Firmware       string `json:"firmware,omitempty"`
	BusType        string `json:"bus_type,omitempty"`
	DeviceID       string `json:"device_id,omitempty"`
	PartitionStyle string `json:"partition_style,omitempty"`
	HealthStatus   string `json:"health_status,omitempty"`
}

// Volume is one discovered mount point. Records are built fresh on every
// scan; nothing is cached or persisted between calls.
type Volume struct {
	MountPoint  string            `json:"mount_point"`
	DeviceType  DeviceType        `json:"device_type"`
	MountType   MountType         `json:"mount_type"`
	IsReady     bool              `json:"is_ready"`
	Label       string            `json:"label,omitempty"`
	Filesystem  string            `json:"filesystem,omitempty"`
	TotalBytes  uint64            `json:"total_bytes"`
	FreeBytes   uint64            `json:"free_bytes"`
	NetworkPath string            `json:"network_path,omitempty"`
	Device      *DeviceAttributes `json:"device,omitempty"`
}

func (v *Volume) attrModel() string {
	if v.Device == nil {
		return ""
	}
	return v.Device.Model
}

func (v *Volume) attrManufacturer() string {
	if v.Device == nil {
		return ""
	}
	return v.Device.Manufacturer
}

func (v *Volume) attrInterface() string {
	if v.Device == nil {
		return ""
	}
	return v.Device.InterfaceType
}

func (v *Volume) attrDeviceID() string {
	if v.Device == nil {
		return ""
	}
	return v.Device.DeviceID
}

// ModelOrPath is what the summary table shows in its last column: the
// remote path for network shares, the device model otherwise.
func (v *Volume) ModelOrPath() string {
	if v.DeviceType == DeviceNetwork && v.NetworkPath != "" {
		return v.NetworkPath
	}
	return v.attrModel()
}
