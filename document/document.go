// Package document models the bootloader configuration document as an
// in-memory tree with addressable sections, and applies resolved patch
// actions to it. Persisting the document belongs to the surrounding build
// tooling, not this package.
package document

import (
	"strings"

	"github.com/google/uuid"
)

// AppleNVRAMNamespace is the namespace GUID under which all patched firmware
// variables live.
var AppleNVRAMNamespace = uuid.MustParse("7C436110-AB2A-4BBB-A880-FE41995C9F82")

// KextEntry is one record in the document's kernel extension list. Entries
// start disabled in the base template; the applier flips them on.
type KextEntry struct {
	BundlePath string
	Comment    string
	Enabled    bool
	Version    string
	SourcePath string
}

// Document is the in-memory configuration tree.
type Document struct {
	NVRAMAdd     map[uuid.UUID]map[string][]byte
	NVRAMDelete  map[uuid.UUID][]string
	BootArgs     string
	KernelAdd    []*KextEntry
	KernelQuirks map[string]bool
}

// New builds a document seeded with the given (disabled) kext entries.
func New(kexts ...KextEntry) *Document {
	d := &Document{
		NVRAMAdd:     make(map[uuid.UUID]map[string][]byte),
		NVRAMDelete:  make(map[uuid.UUID][]string),
		KernelAdd:    make([]*KextEntry, 0, len(kexts)),
		KernelQuirks: make(map[string]bool),
	}
	for _, k := range kexts {
		entry := k
		entry.Enabled = false
		d.KernelAdd = append(d.KernelAdd, &entry)
	}
	return d
}

// KextByBundlePath finds a kernel extension record, enabled or not.
func (d *Document) KextByBundlePath(bundlePath string) *KextEntry {
	for _, k := range d.KernelAdd {
		if k.BundlePath == bundlePath {
			return k
		}
	}
	return nil
}

// AppendBootArg appends a space-separated token to the boot-argument string.
func (d *Document) AppendBootArg(token string) {
	if d.BootArgs == "" {
		d.BootArgs = token
		return
	}
	d.BootArgs += " " + token
}

// HasBootArg reports whether token is present in the boot-argument string.
func (d *Document) HasBootArg(token string) bool {
	for _, t := range strings.Fields(d.BootArgs) {
		if t == token {
			return true
		}
	}
	return false
}

// SetNVRAM sets a firmware variable under the Apple namespace to an exact
// byte value. The value is copied.
func (d *Document) SetNVRAM(key string, value []byte) {
	ns := d.NVRAMAdd[AppleNVRAMNamespace]
	if ns == nil {
		ns = make(map[string][]byte)
		d.NVRAMAdd[AppleNVRAMNamespace] = ns
	}
	ns[key] = append([]byte(nil), value...)
}

// DeleteNVRAM schedules a firmware variable for reset at boot. Scheduling the
// same key twice is a no-op.
func (d *Document) DeleteNVRAM(key string) {
	for _, k := range d.NVRAMDelete[AppleNVRAMNamespace] {
		if k == key {
			return
		}
	}
	d.NVRAMDelete[AppleNVRAMNamespace] = append(d.NVRAMDelete[AppleNVRAMNamespace], key)
}

// SetQuirk toggles a kernel quirk boolean.
func (d *Document) SetQuirk(name string, enabled bool) {
	d.KernelQuirks[name] = enabled
}

// Prune drops kext entries a build never enabled, mirroring the cleanup the
// build tooling performs before the document is written out.
func (d *Document) Prune() {
	kept := d.KernelAdd[:0]
	for _, k := range d.KernelAdd {
		if k.Enabled {
			kept = append(kept, k)
		}
	}
	d.KernelAdd = kept
}
