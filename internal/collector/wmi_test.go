package collector

import "testing"

func TestParseWMIList(t *testing.T) {
	out := "\r\n\r\n" +
		"DeviceID=\\\\.\\PHYSICALDRIVE0\r\n" +
		"InterfaceType=SCSI\r\n" +
		"Model=VMware Virtual disk SCSI Disk Device\r\n" +
		"SerialNumber=\r\n" +
		"\r\n\r\n" +
		"DeviceID=\\\\.\\PHYSICALDRIVE1\r\n" +
		"InterfaceType=USB\r\n" +
		"Model=SanDisk Ultra USB Device\r\n" +
		"SerialNumber=4C530001230\r\n" +
		"\r\n"

	blocks := parseWMIList(out)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0]["Model"] != "VMware Virtual disk SCSI Disk Device" {
		t.Errorf("Model = %q", blocks[0]["Model"])
	}
	if blocks[0]["SerialNumber"] != "" {
		t.Errorf("empty SerialNumber = %q", blocks[0]["SerialNumber"])
	}
	if blocks[1]["InterfaceType"] != "USB" {
		t.Errorf("InterfaceType = %q", blocks[1]["InterfaceType"])
	}
	if blocks[1]["DeviceID"] != `\\.\PHYSICALDRIVE1` {
		t.Errorf("DeviceID = %q", blocks[1]["DeviceID"])
	}
}

func TestParseWMIListEmpty(t *testing.T) {
	if blocks := parseWMIList(""); len(blocks) != 0 {
		t.Errorf("got %d blocks from empty input", len(blocks))
	}
	if blocks := parseWMIList("No Instance(s) Available.\r\n"); len(blocks) != 0 {
		t.Errorf("got %d blocks from error output", len(blocks))
	}
}

func TestWMIRefValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\\HOST\root\cimv2:Win32_DiskPartition.DeviceID="Disk #0, Partition #2"`, "Disk #0, Partition #2"},
		{`\\HOST\root\cimv2:Win32_LogicalDisk.DeviceID="C:"`, "C:"},
		{`\\HOST\root\cimv2:Win32_DiskDrive.DeviceID="\\\\.\\PHYSICALDRIVE0"`, `\\.\PHYSICALDRIVE0`},
		{"no quotes here", ""},
		{`only one "`, ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := wmiRefValue(tt.in); got != tt.want {
			t.Errorf("wmiRefValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBusTypeFromPNPDeviceID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`SCSI\DISK&VEN_VMWARE_&PROD_VMWARE_VIRTUAL_S\5&1234`, "SCSI"},
		{`USBSTOR\DISK&VEN_SANDISK&PROD_ULTRA\4C530001230`, "USB"},
		{`IDE\DISKVBOX_HARDDISK\5&2F5461E9`, "IDE"},
		{`NVME\DISK&VEN_SAMSUNG\6&ABC`, "NVME"},
		{"", ""},
		{"NOSEP", ""},
	}
	for _, tt := range tests {
		if got := busTypeFromPNPDeviceID(tt.in); got != tt.want {
			t.Errorf("busTypeFromPNPDeviceID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPartitionStyleFromType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GPT: Basic Data", "GPT"},
		{"GPT: System", "GPT"},
		{"Installable File System", "MBR"},
		{"Extended w/Extended Int 13", "MBR"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := partitionStyleFromType(tt.in); got != tt.want {
			t.Errorf("partitionStyleFromType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
