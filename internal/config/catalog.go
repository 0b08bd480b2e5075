package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var builtinCatalog []byte

//go:embed catalog.schema.json
var catalogSchema string

type Catalog struct {
	Defaults  RunDefaults `yaml:"defaults"`
	Scenarios []Scenario  `yaml:"scenarios"`
}

type RunDefaults struct {
	Players     int `yaml:"players"`
	Simulations int `yaml:"simulations"`
	TargetSize  int `yaml:"target_size"`
}

// Scenario is one dummy layout scored against one npc footprint.
// Zero Size/Players/Simulations fall back to the catalog defaults.
type Scenario struct {
	Name        string   `yaml:"name"`
	Dummies     [][2]int `yaml:"dummies"`
	Target      [2]int   `yaml:"target"` // south-west cell
	Size        int      `yaml:"size"`
	Players     int      `yaml:"players"`
	Simulations int      `yaml:"simulations"`
}

func (c *Catalog) Find(name string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Resolved fills unset fields from the catalog defaults.
func (c *Catalog) Resolved(s Scenario) Scenario {
	if s.Size == 0 {
		s.Size = c.Defaults.TargetSize
	}
	if s.Players == 0 {
		s.Players = c.Defaults.Players
	}
	if s.Simulations == 0 {
		s.Simulations = c.Defaults.Simulations
	}
	return s
}

func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog("scenarios.yaml", builtinCatalog)
}

func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return ParseCatalog(path, b)
}

// ParseCatalog validates the document against the catalog schema before decoding it.
func ParseCatalog(name string, b []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", name, err)
	}
	if err := validateCatalog(doc); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", name, err)
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", name, err)
	}
	seen := map[string]bool{}
	for _, s := range c.Scenarios {
		if seen[s.Name] {
			return nil, fmt.Errorf("catalog %s: duplicate scenario %q", name, s.Name)
		}
		seen[s.Name] = true
	}
	return &c, nil
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("catalog.schema.json", catalogSchema)
})

func validateCatalog(doc any) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	// round-trip through json so numbers and maps have the shapes the validator expects
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}
