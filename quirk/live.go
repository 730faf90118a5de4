package quirk

import (
	"go.uber.org/zap"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

// EvaluateLive maps a probed controller identity to its patch actions. At
// most one chipset branch fires; unrecognized chipsets emit nothing. The
// model identifier is only consulted for the BRCM20702 platform-generation
// check, which the static table answers.
func (r *Resolver) EvaluateLive(id oclp.HardwareIdentity, model string) oclp.ResolutionResult {
	var out oclp.ResolutionResult

	switch id.Bluetooth {
	case oclp.BRCM2070Hub, oclp.BRCM2046Hub:
		r.log.Info("fixing legacy Bluetooth", zap.String("chipset", id.Bluetooth.String()))
		out = append(out, r.enableKext(KextBlueToolFixup, r.kexts.BlueToolFixup))
		out = append(out, r.enableKext(KextBluetoothSpoof, r.kexts.BluetoothSpoof))
		out = append(out, oclp.SetBootArg{Token: BootArgAllowAnyAddr})
		out = append(out, firmwareUploadWorkaround()...)

	case oclp.BRCM20702Hub:
		// BCM94331 cards carry either BRCM2070 or BRCM20702 v1 Bluetooth
		// silicon; only v2 (found with BCM94360) still uploads firmware
		// natively, so BlueToolFixup is needed for the legacy pairings.
		// The wireless-card check and the platform-generation check are
		// independent conditions and both may fire; the applier treats a
		// repeated kext enablement as a no-op.
		if id.Wireless == oclp.AirPortBrcm4360 {
			r.log.Info("fixing legacy Bluetooth", zap.String("wifi", id.Wireless.String()))
			out = append(out, r.enableKext(KextBlueToolFixup, r.kexts.BlueToolFixup))
		}
		// Pre-2012 firmwares mishandle the newer chipsets regardless of the
		// wireless card.
		if prof, ok := r.table.Lookup(model); ok && prof.CPUGeneration < oclp.IvyBridge {
			r.log.Info("fixing legacy Bluetooth", zap.String("model", model))
			out = append(out, r.enableKext(KextBlueToolFixup, r.kexts.BlueToolFixup))
			out = append(out, firmwareUploadWorkaround()...)
		}

	case oclp.ThirdPartyBT40Hub, oclp.GenericBluetooth:
		r.log.Info("enabling Bluetooth feature flags", zap.String("chipset", id.Bluetooth.String()))
		out = append(out, r.enableKext(KextBlueToolFixup, r.kexts.BlueToolFixup))
		out = append(out, oclp.SetKernelQuirk{Name: QuirkExtendBTFeatureFlags, Enabled: true})
	}

	return out
}
