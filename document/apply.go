package document

import (
	"fmt"

	"go.uber.org/zap"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

// Applier mutates a Document from a resolution result. Actions are applied
// strictly in sequence order; later actions may depend on earlier ones.
type Applier struct {
	doc *Document
	log *zap.Logger
}

func NewApplier(doc *Document, log *zap.Logger) *Applier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Applier{doc: doc, log: log}
}

// Apply walks the result in order. Enabling an already-enabled kext is a
// no-op, so independent rule branches may request the same kext without
// stacking side effects.
func (a *Applier) Apply(res oclp.ResolutionResult) error {
	for _, act := range res {
		if err := a.apply(act); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) apply(act oclp.PatchAction) error {
	switch v := act.(type) {
	case oclp.EnableKext:
		return a.enableKext(v)
	case oclp.SetBootArg:
		a.doc.AppendBootArg(v.Token)
		return nil
	case oclp.SetNVRAMVariable:
		a.doc.SetNVRAM(v.Key, v.Value)
		return nil
	case oclp.DeleteNVRAMVariable:
		a.doc.DeleteNVRAM(v.Key)
		return nil
	case oclp.SetKernelQuirk:
		a.doc.SetQuirk(v.Name, v.Enabled)
		return nil
	default:
		return fmt.Errorf("document: unsupported patch action %T", act)
	}
}

func (a *Applier) enableKext(v oclp.EnableKext) error {
	entry := a.doc.KextByBundlePath(v.Name)
	if entry == nil {
		return fmt.Errorf("%w: %s", oclp.ErrKextNotFound, v.Name)
	}
	if entry.Enabled {
		return nil
	}
	a.log.Info("adding kext", zap.String("kext", v.Name), zap.String("version", v.Version))
	entry.Enabled = true
	entry.Version = v.Version
	entry.SourcePath = v.SourcePath
	return nil
}
