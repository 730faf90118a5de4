package oclp

import (
	"time"
)

// KextSource identifies a bundled kext build that the resolver may ask the
// applier to enable.
type KextSource struct {
	Version string
	Path    string
}

// KextCatalog lists the Bluetooth compatibility kexts shipped with the
// patcher payloads.
type KextCatalog struct {
	BlueToolFixup  KextSource
	BluetoothSpoof KextSource
}

// Options configures the patch build layer.
type Options struct {
	Model       string // SMBIOS model identifier, e.g. "MacBookPro8,1"
	CustomModel bool   // resolve from the static tables even when probe data exists

	ProbeRPCURL    string // websocket endpoint of the probe helper (e.g. ws://localhost:8090/rpc)
	ProbeReportURL string // HTTP base URL of the probe helper report endpoint

	ProfileTablePath string // optional YAML override for the built-in model table
	ProfileServerURL string // optional remote profile service base URL

	Kexts KextCatalog

	Timeouts TimeoutConfig
}

type TimeoutConfig struct {
	ProbeCall time.Duration
	HTTP      time.Duration
}

// DefaultOptions gives baseline sensible defaults for a local build.
func DefaultOptions() Options {
	opts := Options{}
	opts.ProbeReportURL = "http://localhost:8090"
	opts.ProbeRPCURL = "ws://localhost:8090/rpc"
	opts.Kexts = KextCatalog{
		BlueToolFixup:  KextSource{Version: "2.6.8", Path: "payloads/Kexts/Acidanthera/BlueToolFixup-v2.6.8.zip"},
		BluetoothSpoof: KextSource{Version: "2.6.3", Path: "payloads/Kexts/Misc/Bluetooth-Spoof-v2.6.3.zip"},
	}
	opts.Timeouts = TimeoutConfig{
		ProbeCall: 5 * time.Second,
		HTTP:      10 * time.Second,
	}
	return opts
}
