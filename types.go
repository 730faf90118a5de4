package oclp

// BluetoothChipset identifies the Bluetooth controller family reported by the
// hardware probe. The zero value means the probe could not classify the
// controller; resolution treats it as "no applicable quirk".
type BluetoothChipset int

const (
	BluetoothChipsetUnknown BluetoothChipset = iota
	BRCM2046Hub
	BRCM2070Hub
	BRCM20702Hub
	ThirdPartyBT40Hub
	GenericBluetooth
)

func (c BluetoothChipset) String() string {
	switch c {
	case BRCM2046Hub:
		return "BRCM2046 Hub"
	case BRCM2070Hub:
		return "BRCM2070 Hub"
	case BRCM20702Hub:
		return "BRCM20702 Hub"
	case ThirdPartyBT40Hub:
		return "3rd Party Bluetooth 4.0 Hub"
	case GenericBluetooth:
		return "Generic"
	default:
		return "Unknown"
	}
}

// WirelessChipset identifies the companion wireless card family, when one was
// found next to the Bluetooth controller.
type WirelessChipset int

const (
	WirelessNone WirelessChipset = iota // no wireless card detected
	WirelessUnknown
	AirportBrcmNIC
	AirPortBrcm4360
	AirPortBrcm4331
	AirPortBrcm43224
	AirPortAtheros40
)

func (c WirelessChipset) String() string {
	switch c {
	case AirportBrcmNIC:
		return "AirportBrcmNIC"
	case AirPortBrcm4360:
		return "AirPortBrcm4360"
	case AirPortBrcm4331:
		return "AirPortBrcm4331"
	case AirPortBrcm43224:
		return "AirPortBrcm43224"
	case AirPortAtheros40:
		return "AirPortAtheros40"
	case WirelessUnknown:
		return "Unknown"
	default:
		return "None"
	}
}

// CPUGeneration orders Intel platform generations. Comparisons are ordinal:
// Mac firmwares below IvyBridge cannot upload controller firmware to the
// newer Bluetooth chipsets.
type CPUGeneration int

const (
	Pentium4 CPUGeneration = iota
	Yonah
	Conroe
	Penryn
	Nehalem
	Westmere
	SandyBridge
	IvyBridge
	Haswell
	Broadwell
	Skylake
	KabyLake
	CoffeeLake
	CometLake
)

// BluetoothTier ranks static hardware profiles by controller compatibility
// age; lower tiers are older hardware. Only ordinal comparisons are
// meaningful. The zero value means the model has no recorded tier.
type BluetoothTier int

const (
	TierUnknown BluetoothTier = iota
	TierBRCM2045
	TierBRCM2046
	TierBRCM2070
	TierBRCM20702v1
	TierBRCM20702v2
	TierBRCM20703
)

// HardwareIdentity is the probed controller identity for one resolution pass.
// It is constructed once by the probe layer and never mutated.
type HardwareIdentity struct {
	Bluetooth BluetoothChipset
	Wireless  WirelessChipset
}

// StaticProfile is the per-model record the static tables carry for hardware
// the probe cannot see (or when a custom model is forced).
type StaticProfile struct {
	BluetoothTier BluetoothTier
	CPUGeneration CPUGeneration
}

// ModelTable is read-only access to the static per-model profiles. Injected
// into the resolution engine so tests can substitute fixtures.
type ModelTable interface {
	Lookup(model string) (StaticProfile, bool)
}

// PatchAction is a single instruction for the config document applier.
// Actions are pure values; ordering within a ResolutionResult is significant
// and the applier must preserve it.
type PatchAction interface {
	isPatchAction()
}

// EnableKext requests a named compatibility kext be activated in the
// document's kernel extension list.
type EnableKext struct {
	Name       string
	Version    string
	SourcePath string
}

// SetBootArg appends a token to the boot-argument string.
type SetBootArg struct {
	Token string
}

// SetNVRAMVariable sets a persisted firmware variable to an exact byte value
// under the document's Apple NVRAM namespace.
type SetNVRAMVariable struct {
	Key   string
	Value []byte
}

// DeleteNVRAMVariable marks a firmware variable for reset at boot.
type DeleteNVRAMVariable struct {
	Key string
}

// SetKernelQuirk toggles a named kernel quirk boolean.
type SetKernelQuirk struct {
	Name    string
	Enabled bool
}

func (EnableKext) isPatchAction()          {}
func (SetBootArg) isPatchAction()          {}
func (SetNVRAMVariable) isPatchAction()    {}
func (DeleteNVRAMVariable) isPatchAction() {}
func (SetKernelQuirk) isPatchAction()      {}

// ResolutionResult is the ordered action sequence produced by one resolution
// pass. Produced fresh each pass and consumed exactly once by the applier.
type ResolutionResult []PatchAction
