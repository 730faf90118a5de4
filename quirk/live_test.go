package quirk_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
	"github.com/jbinder6342/OpenCore-Legacy-Patcher/quirk"
)

type tableFixture map[string]oclp.StaticProfile

func (t tableFixture) Lookup(model string) (oclp.StaticProfile, bool) {
	p, ok := t[model]
	return p, ok
}

var testCatalog = oclp.KextCatalog{
	BlueToolFixup:  oclp.KextSource{Version: "2.6.8", Path: "payloads/Kexts/Acidanthera/BlueToolFixup-v2.6.8.zip"},
	BluetoothSpoof: oclp.KextSource{Version: "2.6.3", Path: "payloads/Kexts/Misc/Bluetooth-Spoof-v2.6.3.zip"},
}

var testTable = tableFixture{
	"MacBookPro8,1": {BluetoothTier: oclp.TierBRCM2070, CPUGeneration: oclp.SandyBridge},
	"MacBookPro9,1": {BluetoothTier: oclp.TierBRCM20702v2, CPUGeneration: oclp.IvyBridge},
	"iMac14,2":      {BluetoothTier: oclp.TierBRCM20702v2, CPUGeneration: oclp.Haswell},
}

func testResolver(t *testing.T) *quirk.Resolver {
	t.Helper()
	return quirk.NewResolver(testTable, testCatalog, nil)
}

func enableBlueTool() oclp.PatchAction {
	return oclp.EnableKext{Name: "BlueToolFixup.kext", Version: "2.6.8", SourcePath: "payloads/Kexts/Acidanthera/BlueToolFixup-v2.6.8.zip"}
}

func enableSpoof() oclp.PatchAction {
	return oclp.EnableKext{Name: "Bluetooth-Spoof.kext", Version: "2.6.3", SourcePath: "payloads/Kexts/Misc/Bluetooth-Spoof-v2.6.3.zip"}
}

func workaroundBlock() []oclp.PatchAction {
	return []oclp.PatchAction{
		oclp.SetNVRAMVariable{Key: "bluetoothInternalControllerInfo", Value: make([]byte, 14)},
		oclp.SetNVRAMVariable{Key: "bluetoothExternalDongleFailed", Value: make([]byte, 1)},
		oclp.DeleteNVRAMVariable{Key: "bluetoothInternalControllerInfo"},
		oclp.DeleteNVRAMVariable{Key: "bluetoothExternalDongleFailed"},
	}
}

func TestEvaluateLiveLegacyHubs(t *testing.T) {
	r := testResolver(t)

	want := oclp.ResolutionResult{
		enableBlueTool(),
		enableSpoof(),
		oclp.SetBootArg{Token: "-btlfxallowanyaddr"},
	}
	want = append(want, workaroundBlock()...)

	got2070 := r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BRCM2070Hub}, "MacBookPro8,1")
	require.Empty(t, cmp.Diff(want, got2070))

	// The two legacy hub families get identical treatment.
	got2046 := r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BRCM2046Hub}, "MacBookPro8,1")
	require.Empty(t, cmp.Diff(got2070, got2046))
}

func TestEvaluateLiveUnknownChipset(t *testing.T) {
	r := testResolver(t)

	got := r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BluetoothChipsetUnknown}, "MacBookPro8,1")
	assert.Empty(t, got)
}

func TestEvaluateLiveThirdParty(t *testing.T) {
	r := testResolver(t)

	want := oclp.ResolutionResult{
		enableBlueTool(),
		oclp.SetKernelQuirk{Name: "ExtendBTFeatureFlags", Enabled: true},
	}

	for _, chipset := range []oclp.BluetoothChipset{oclp.ThirdPartyBT40Hub, oclp.GenericBluetooth} {
		got := r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: chipset}, "iMac14,2")
		assert.Empty(t, cmp.Diff(want, got), "chipset %s", chipset)
	}
}

func TestEvaluateLiveBRCM20702(t *testing.T) {
	r := testResolver(t)

	t.Run("wifi condition only", func(t *testing.T) {
		got := r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BRCM20702Hub, Wireless: oclp.AirPortBrcm4360}, "MacBookPro9,1")
		want := oclp.ResolutionResult{enableBlueTool()}
		assert.Empty(t, cmp.Diff(want, got))
	})

	t.Run("platform condition only", func(t *testing.T) {
		got := r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BRCM20702Hub}, "MacBookPro8,1")
		want := append(oclp.ResolutionResult{enableBlueTool()}, workaroundBlock()...)
		assert.Empty(t, cmp.Diff(want, got))
	})

	t.Run("both conditions fire independently", func(t *testing.T) {
		got := r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BRCM20702Hub, Wireless: oclp.AirPortBrcm4360}, "MacBookPro8,1")
		want := append(oclp.ResolutionResult{enableBlueTool(), enableBlueTool()}, workaroundBlock()...)
		assert.Empty(t, cmp.Diff(want, got))
	})

	t.Run("neither condition", func(t *testing.T) {
		got := r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BRCM20702Hub, Wireless: oclp.AirPortBrcm4331}, "MacBookPro9,1")
		assert.Empty(t, got)
	})

	t.Run("model not in table", func(t *testing.T) {
		got := r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BRCM20702Hub}, "Macmini9,9")
		assert.Empty(t, got)
	})
}

func TestEvaluateLiveIdempotent(t *testing.T) {
	r := testResolver(t)
	id := oclp.HardwareIdentity{Bluetooth: oclp.BRCM2070Hub}

	first := r.EvaluateLive(id, "MacBookPro8,1")
	second := r.EvaluateLive(id, "MacBookPro8,1")
	assert.Empty(t, cmp.Diff(first, second))
}

// The firmware workaround must appear as one contiguous 4-action block, and
// only after a BlueToolFixup enablement.
func TestWorkaroundBlockPlacement(t *testing.T) {
	r := testResolver(t)

	results := []oclp.ResolutionResult{
		r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BRCM2070Hub}, "MacBookPro8,1"),
		r.EvaluateLive(oclp.HardwareIdentity{Bluetooth: oclp.BRCM20702Hub}, "MacBookPro8,1"),
		r.EvaluateFallback("MacBookPro8,1"),
	}

	for i, res := range results {
		start := -1
		for j, act := range res {
			if v, ok := act.(oclp.SetNVRAMVariable); ok && v.Key == "bluetoothInternalControllerInfo" {
				start = j
				break
			}
		}
		require.GreaterOrEqual(t, start, 1, "result %d: workaround block missing or leading", i)
		require.Empty(t, cmp.Diff(workaroundBlock(), []oclp.PatchAction(res[start:start+4])), "result %d", i)

		sawBlueTool := false
		for _, act := range res[:start] {
			if v, ok := act.(oclp.EnableKext); ok && v.Name == "BlueToolFixup.kext" {
				sawBlueTool = true
			}
		}
		assert.True(t, sawBlueTool, "result %d: workaround not preceded by BlueToolFixup", i)
	}
}
