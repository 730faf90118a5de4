// Package quirk maps detected or assumed Bluetooth hardware to the ordered
// set of config document mutations that keep the controller working on
// macOS releases that dropped its native support.
package quirk

import (
	"go.uber.org/zap"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

// Well-known names the resolver emits. The applier and the base config
// document template must agree on the kext bundle paths.
const (
	KextBlueToolFixup  = "BlueToolFixup.kext"
	KextBluetoothSpoof = "Bluetooth-Spoof.kext"

	BootArgAllowAnyAddr = "-btlfxallowanyaddr"

	QuirkExtendBTFeatureFlags = "ExtendBTFeatureFlags"

	nvramInternalControllerInfo = "bluetoothInternalControllerInfo"
	nvramExternalDongleFailed   = "bluetoothExternalDongleFailed"
)

// Resolver chooses between live-detection resolution and static-fallback
// resolution for one build pass. Resolution is a pure function of its inputs;
// the Resolver holds only read-only reference data and may be shared across
// concurrent passes.
type Resolver struct {
	table oclp.ModelTable
	kexts oclp.KextCatalog
	log   *zap.Logger
}

// NewResolver builds a Resolver over the injected model table and kext
// catalog. A nil logger disables the advisory branch narration.
func NewResolver(table oclp.ModelTable, kexts oclp.KextCatalog, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{table: table, kexts: kexts, log: log}
}

// Resolve returns the ordered patch actions for the Bluetooth subsystem.
// The live path is taken when probe data exists and no custom model was
// forced; otherwise resolution falls back to the static tables. An empty
// result is a valid outcome: the hardware needs no quirks.
func (r *Resolver) Resolve(customModel bool, detected *oclp.HardwareIdentity, model string) oclp.ResolutionResult {
	if !customModel && detected != nil {
		return r.EvaluateLive(*detected, model)
	}
	return r.EvaluateFallback(model)
}

func (r *Resolver) enableKext(name string, src oclp.KextSource) oclp.PatchAction {
	return oclp.EnableKext{Name: name, Version: src.Version, SourcePath: src.Path}
}

// firmwareUploadWorkaround is the fixed sub-sequence for Mac firmwares that
// cannot perform controller firmware uploads: the persisted "already failed
// once" state is zeroed and scheduled for deletion so the next boot retries.
// Always emitted as a contiguous block of four actions directly after a
// BlueToolFixup enablement.
func firmwareUploadWorkaround() []oclp.PatchAction {
	return []oclp.PatchAction{
		oclp.SetNVRAMVariable{Key: nvramInternalControllerInfo, Value: make([]byte, 14)},
		oclp.SetNVRAMVariable{Key: nvramExternalDongleFailed, Value: make([]byte, 1)},
		oclp.DeleteNVRAMVariable{Key: nvramInternalControllerInfo},
		oclp.DeleteNVRAMVariable{Key: nvramExternalDongleFailed},
	}
}
