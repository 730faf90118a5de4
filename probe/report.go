// Package probe consumes the privileged hardware probe helper: it decodes
// probe reports into the engine's hardware identity and keeps a channel to
// the helper for on-demand probing and hotplug notifications.
package probe

import (
	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

// Report is the JSON document the probe helper produces for one machine.
// Chipset strings follow the helper's IORegistry-derived naming.
type Report struct {
	Model            string        `json:"model"`
	BoardID          string        `json:"boardId,omitempty"`
	BluetoothChipset string        `json:"bluetoothChipset,omitempty"`
	Wireless         *WirelessInfo `json:"wifi,omitempty"`
	PatcherVersion   string        `json:"patcherVersion,omitempty"`
}

// WirelessInfo describes the wireless card found next to the controller.
type WirelessInfo struct {
	Chipset  string `json:"chipset"`
	VendorID uint16 `json:"vendorId,omitempty"`
	DeviceID uint16 `json:"deviceId,omitempty"`
}

var bluetoothChipsets = map[string]oclp.BluetoothChipset{
	"BRCM2046 Hub":                oclp.BRCM2046Hub,
	"BRCM2070 Hub":                oclp.BRCM2070Hub,
	"BRCM20702 Hub":               oclp.BRCM20702Hub,
	"3rd Party Bluetooth 4.0 Hub": oclp.ThirdPartyBT40Hub,
	"Generic":                     oclp.GenericBluetooth,
}

var wirelessChipsets = map[string]oclp.WirelessChipset{
	"AirportBrcmNIC":   oclp.AirportBrcmNIC,
	"AirPortBrcm4360":  oclp.AirPortBrcm4360,
	"AirPortBrcm4331":  oclp.AirPortBrcm4331,
	"AirPortBrcm43224": oclp.AirPortBrcm43224,
	"AirPortAtheros40": oclp.AirPortAtheros40,
}

// Identity converts the report into the engine's hardware identity. A report
// without a Bluetooth controller yields nil, which sends resolution down the
// static fallback path. Unrecognized chipset strings are never an error;
// they map to the unknown tags and resolve to no quirks.
func (r *Report) Identity() *oclp.HardwareIdentity {
	if r == nil || r.BluetoothChipset == "" {
		return nil
	}
	id := &oclp.HardwareIdentity{
		Bluetooth: bluetoothChipsets[r.BluetoothChipset],
		Wireless:  oclp.WirelessNone,
	}
	if r.Wireless != nil {
		if w, ok := wirelessChipsets[r.Wireless.Chipset]; ok {
			id.Wireless = w
		} else {
			id.Wireless = oclp.WirelessUnknown
		}
	}
	return id
}
