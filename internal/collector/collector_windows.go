//go:build windows

package collector

import (
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/volscan/volscan/internal/volume"
)

// Provider answers attribute lookups for one scan. The WMI association
// tables are fetched in bulk on first use and reused for the remaining
// drive letters of the same scan; nothing survives past the Provider.
type Provider struct {
	loaded bool

	letterToPartition map[string]string // "C:" -> "Disk #0, Partition #2"
	partitionToDisk   map[string]string // "Disk #0, Partition #2" -> "\\.\PHYSICALDRIVE0"
	partitionStyles   map[string]string // "Disk #0, Partition #2" -> "GPT" / "MBR"
	disks             map[string]diskDrive
}

type diskDrive struct {
	model         string
	manufacturer  string
	interfaceType string
	mediaType     string
	serial        string
	firmware      string
	pnpDeviceID   string
	status        string
}

func New() *Provider {
	return &Provider{}
}

// Attributes resolves a drive letter to its physical disk's attributes.
// Returns nil when the letter has no resolvable disk (network drives,
// query failures).
func (p *Provider) Attributes(mountPoint, device string) *volume.DeviceAttributes {
	p.load()

	letter := strings.ToUpper(strings.TrimSuffix(mountPoint, `\`))
	partition, ok := p.letterToPartition[letter]
	if !ok {
		return nil
	}
	diskID, ok := p.partitionToDisk[partition]
	if !ok {
		return nil
	}
	d, ok := p.disks[diskID]
	if !ok {
		return nil
	}

	return &volume.DeviceAttributes{
		Model:          d.model,
		Manufacturer:   d.manufacturer,
		InterfaceType:  d.interfaceType,
		MediaType:      d.mediaType,
		Serial:         d.serial,
		Firmware:       d.firmware,
		BusType:        busTypeFromPNPDeviceID(d.pnpDeviceID),
		DeviceID:       d.pnpDeviceID,
		PartitionStyle: p.partitionStyles[partition],
		HealthStatus:   d.status,
	}
}

// load runs the bulk WMI queries once. Each query failure is logged and
// leaves its table empty; lookups then simply return nil.
func (p *Provider) load() {
	if p.loaded {
		return
	}
	p.loaded = true

	p.letterToPartition = make(map[string]string)
	p.partitionToDisk = make(map[string]string)
	p.partitionStyles = make(map[string]string)
	p.disks = make(map[string]diskDrive)

	for _, block := range wmiQuery("path", "Win32_LogicalDiskToPartition", "get", "Antecedent,Dependent") {
		partition := wmiRefValue(block["Antecedent"])
		letter := strings.ToUpper(wmiRefValue(block["Dependent"]))
		if partition != "" && letter != "" {
			p.letterToPartition[letter] = partition
		}
	}

	for _, block := range wmiQuery("path", "Win32_DiskDriveToDiskPartition", "get", "Antecedent,Dependent") {
		disk := wmiRefValue(block["Antecedent"])
		partition := wmiRefValue(block["Dependent"])
		if disk != "" && partition != "" {
			p.partitionToDisk[partition] = disk
		}
	}

	for _, block := range wmiQuery("partition", "get", "DeviceID,Type") {
		if id := block["DeviceID"]; id != "" {
			p.partitionStyles[id] = partitionStyleFromType(block["Type"])
		}
	}

	for _, block := range wmiQuery("diskdrive", "get",
		"DeviceID,Model,Manufacturer,InterfaceType,MediaType,SerialNumber,FirmwareRevision,PNPDeviceID,Status") {
		id := block["DeviceID"]
		if id == "" {
			continue
		}
		p.disks[id] = diskDrive{
			model:         block["Model"],
			manufacturer:  block["Manufacturer"],
			interfaceType: block["InterfaceType"],
			mediaType:     block["MediaType"],
			serial:        block["SerialNumber"],
			firmware:      block["FirmwareRevision"],
			pnpDeviceID:   block["PNPDeviceID"],
			status:        block["Status"],
		}
	}
}

func wmiQuery(args ...string) []map[string]string {
	args = append(args, "/format:list")
	out, err := exec.Command("wmic", args...).Output()
	if err != nil {
		log.WithError(err).WithField("query", strings.Join(args, " ")).Debug("wmic query failed")
		return nil
	}
	return parseWMIList(string(out))
}
