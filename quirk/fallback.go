package quirk

import (
	"go.uber.org/zap"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

// EvaluateFallback resolves from the static model table alone, for builds
// where live detection is unavailable or a custom model was forced. A model
// without a table entry, or without a recorded Bluetooth tier, needs no
// quirks.
func (r *Resolver) EvaluateFallback(model string) oclp.ResolutionResult {
	prof, ok := r.table.Lookup(model)
	if !ok || prof.BluetoothTier == oclp.TierUnknown {
		return nil
	}
	if prof.BluetoothTier > oclp.TierBRCM20702v1 {
		return nil
	}

	r.log.Info("fixing legacy Bluetooth", zap.String("model", model))
	out := oclp.ResolutionResult{r.enableKext(KextBlueToolFixup, r.kexts.BlueToolFixup)}

	if prof.BluetoothTier <= oclp.TierBRCM2070 {
		out = append(out, oclp.SetBootArg{Token: BootArgAllowAnyAddr})
		out = append(out, firmwareUploadWorkaround()...)
		out = append(out, r.enableKext(KextBluetoothSpoof, r.kexts.BluetoothSpoof))
	}
	return out
}
