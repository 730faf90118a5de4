package profiles

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

//go:embed models.yaml
var builtinYAML []byte

var (
	builtinOnce  sync.Once
	builtinTable *Table
)

// Builtin returns the model table compiled into the binary. Panics only if
// the embedded dataset is corrupt, which is a build defect.
func Builtin() *Table {
	builtinOnce.Do(func() {
		t, err := Parse(builtinYAML)
		if err != nil {
			panic(fmt.Sprintf("profiles: embedded dataset: %v", err))
		}
		builtinTable = t
	})
	return builtinTable
}

// Load reads a model table from a YAML file, for builds pinned to a dataset
// newer than the embedded one.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profiles: read table: %w", err)
	}
	return Parse(data)
}

type tableFile struct {
	Models map[string]entry `yaml:"models"`
}

type entry struct {
	// BluetoothModel is the controller generation name (e.g. "BRCM2070").
	// Empty means the model has no recorded controller tier.
	BluetoothModel string `yaml:"bluetoothModel,omitempty"`
	CPUGeneration  string `yaml:"cpuGeneration"`
}

// Parse decodes a YAML model table.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("profiles: parse table: %w", err)
	}
	entries := make(map[string]oclp.StaticProfile, len(f.Models))
	for model, e := range f.Models {
		tier, err := parseTier(e.BluetoothModel)
		if err != nil {
			return nil, fmt.Errorf("profiles: model %s: %w", model, err)
		}
		gen, err := parseCPUGeneration(e.CPUGeneration)
		if err != nil {
			return nil, fmt.Errorf("profiles: model %s: %w", model, err)
		}
		entries[model] = oclp.StaticProfile{BluetoothTier: tier, CPUGeneration: gen}
	}
	return &Table{entries: entries}, nil
}

var tierNames = map[string]oclp.BluetoothTier{
	"BRCM2045":     oclp.TierBRCM2045,
	"BRCM2046":     oclp.TierBRCM2046,
	"BRCM2070":     oclp.TierBRCM2070,
	"BRCM20702_v1": oclp.TierBRCM20702v1,
	"BRCM20702_v2": oclp.TierBRCM20702v2,
	"BRCM20703":    oclp.TierBRCM20703,
}

var cpuGenNames = map[string]oclp.CPUGeneration{
	"pentium_4":    oclp.Pentium4,
	"yonah":        oclp.Yonah,
	"conroe":       oclp.Conroe,
	"penryn":       oclp.Penryn,
	"nehalem":      oclp.Nehalem,
	"westmere":     oclp.Westmere,
	"sandy_bridge": oclp.SandyBridge,
	"ivy_bridge":   oclp.IvyBridge,
	"haswell":      oclp.Haswell,
	"broadwell":    oclp.Broadwell,
	"skylake":      oclp.Skylake,
	"kaby_lake":    oclp.KabyLake,
	"coffee_lake":  oclp.CoffeeLake,
	"comet_lake":   oclp.CometLake,
}

func parseTier(name string) (oclp.BluetoothTier, error) {
	if name == "" {
		return oclp.TierUnknown, nil
	}
	tier, ok := tierNames[name]
	if !ok {
		return oclp.TierUnknown, fmt.Errorf("unknown bluetooth model %q", name)
	}
	return tier, nil
}

func parseCPUGeneration(name string) (oclp.CPUGeneration, error) {
	gen, ok := cpuGenNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown cpu generation %q", name)
	}
	return gen, nil
}
