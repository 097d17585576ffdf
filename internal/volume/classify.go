package volume

import "strings"

// rule is one step of the classification cascade. Rules run in order and
// the first match wins; there is no scoring and no backtracking.
type rule struct {
	name   string
	match  func(v *Volume) bool
	result MountType
}

// physicalBuses are interface strings that identify a real hardware bus.
var physicalBuses = []string{"IDE", "SCSI", "SATA", "SAS", "USB", "1394", "NVME"}

// classifyRules encodes the precedence policy: explicit virtualization
// fingerprints beat physical-bus matches, which beat the bare "has a drive
// letter" default. Each step is a fallback for when the richer signal above
// it was not populated by the metadata provider.
//
// Note the order: a removable device whose model string contains "Virtual"
// classifies as virtual because the indicator scan runs before the
// removable rule. Removable physical media is unlikely to carry that label,
// but reordering would change observable behavior, so the precedence stays.
var classifyRules = []rule{
	{
		name:   "network-device",
		match:  func(v *Volume) bool { return v.DeviceType == DeviceNetwork },
		result: MountNetwork,
	},
	{
		name:   "ram-device",
		match:  func(v *Volume) bool { return v.DeviceType == DeviceRam },
		result: MountVirtual,
	},
	{
		name:   "virtual-model",
		match:  func(v *Volume) bool { return containsFold(v.attrModel(), "VIRTUAL") },
		result: MountVirtual,
	},
	{
		name: "virtual-device-id",
		match: func(v *Volume) bool {
			return containsFold(v.attrDeviceID(), "VMWARE") || containsFold(v.attrDeviceID(), "VBOX")
		},
		result: MountVirtual,
	},
	{
		name:   "virtual-interface",
		match:  func(v *Volume) bool { return containsFold(v.attrInterface(), "VIRTUAL") },
		result: MountVirtual,
	},
	{
		name: "microsoft-virtual",
		match: func(v *Volume) bool {
			return containsFold(v.attrManufacturer(), "MICROSOFT") && containsFold(v.attrModel(), "VIRTUAL")
		},
		result: MountVirtual,
	},
	{
		name:   "removable-device",
		match:  func(v *Volume) bool { return v.DeviceType == DeviceRemovable },
		result: MountPhysical,
	},
	{
		name: "local-physical-bus",
		match: func(v *Volume) bool {
			if v.DeviceType != DeviceLocal {
				return false
			}
			for _, bus := range physicalBuses {
				if containsFold(v.attrInterface(), bus) {
					return true
				}
			}
			return false
		},
		result: MountPhysical,
	},
	{
		// An assigned mount point with no contrary virtual signal is
		// assumed physical.
		name: "local-mounted",
		match: func(v *Volume) bool {
			return v.DeviceType == DeviceLocal && v.MountPoint != ""
		},
		result: MountPhysical,
	},
	{
		name:   "cdrom-device",
		match:  func(v *Volume) bool { return v.DeviceType == DeviceCDRom },
		result: MountPhysical,
	},
	{
		name:   "local-fallback",
		match:  func(v *Volume) bool { return v.DeviceType == DeviceLocal },
		result: MountPhysical,
	},
}

// Classify maps a volume to a MountType. DeviceType must already be set;
// attribute strings may all be empty, in which case classification degrades
// toward the device-type defaults. Pure function, no error path: an
// unrecognized combination yields MountUnknown rather than failing, since
// the underlying metadata sources can legitimately omit every attribute.
func Classify(v *Volume) MountType {
	for _, r := range classifyRules {
		if r.match(v) {
			return r.result
		}
	}
	return MountUnknown
}

// containsFold reports whether s contains upper, ignoring case. upper must
// already be upper-cased. Empty s never matches.
func containsFold(s, upper string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(s), upper)
}
