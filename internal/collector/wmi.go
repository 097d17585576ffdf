package collector

import "strings"

// parseWMIList parses `wmic ... /format:list` output: blocks of KEY=VALUE
// lines separated by blank lines, one block per instance. Values may be
// empty; keys never repeat within a block.
func parseWMIList(out string) []map[string]string {
	var blocks []map[string]string
	var cur map[string]string

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 1 {
			continue
		}
		if cur == nil {
			cur = make(map[string]string)
		}
		cur[line[:idx]] = strings.TrimSpace(line[idx+1:])
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// wmiRefValue extracts the key value from a WMI object reference such as
//
//	\\HOST\root\cimv2:Win32_DiskPartition.DeviceID="Disk #0, Partition #2"
//
// returning the text between the quotes with WMI backslash escaping undone.
func wmiRefValue(ref string) string {
	start := strings.Index(ref, `"`)
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(ref, `"`)
	if end <= start {
		return ""
	}
	val := ref[start+1 : end]
	val = strings.ReplaceAll(val, `\\`, `\`)
	return val
}

// busTypeFromPNPDeviceID derives the bus from a PNP device ID's enumerator
// prefix, e.g. SCSI\DISK&VEN_... -> SCSI, USBSTOR\... -> USB.
func busTypeFromPNPDeviceID(id string) string {
	idx := strings.Index(id, `\`)
	if idx <= 0 {
		return ""
	}
	switch prefix := strings.ToUpper(id[:idx]); prefix {
	case "USBSTOR":
		return "USB"
	case "SCSI", "IDE", "NVME", "SD", "1394":
		return prefix
	default:
		return prefix
	}
}

// partitionStyleFromType maps a Win32_DiskPartition Type string ("GPT:
// Basic Data", "Installable File System", ...) to GPT or MBR.
func partitionStyleFromType(t string) string {
	if t == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToUpper(t), "GPT") {
		return "GPT"
	}
	return "MBR"
}
