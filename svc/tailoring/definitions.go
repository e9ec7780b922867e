package tailoring

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

// Output formats.
const (
	OutputPDF   = "pdf"
	OutputXHTML = "xhtml"
)

// Editability policies.
const (
	PolicyAlways = "always"
	PolicyNever  = "never"
	PolicyLock   = "lock"
)

// Definition configures one tenant.
type Definition struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Label          string         `yaml:"label"`
	Output         string         `yaml:"output"`
	Template       string         `yaml:"template"`
	FragmentPrefix string         `yaml:"fragment_prefix"`
	Placeholders   map[string]any `yaml:"placeholders"`
	Editability    Editability    `yaml:"editability"`
}

// Editability selects the editability policy of a tenant.
type Editability struct {
	Policy string `yaml:"policy"`
}

// Tenant returns the tenant described by d.
func (d Definition) Tenant() tenant.Tenant {
	return tenant.Tenant{ID: d.ID, Name: d.Name, Label: d.Label}
}

type definitionsFile struct {
	Tenants []Definition `yaml:"tenants"`
}

// LoadDefinitions reads tenant definitions from a YAML file.
func LoadDefinitions(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrDefinitions, err)
	}
	defer func() { _ = f.Close() }()
	return ParseDefinitions(f)
}

// ParseDefinitions decodes and normalises tenant definitions. Unknown keys
// are rejected.
func ParseDefinitions(r io.Reader) ([]Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file definitionsFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrDefinitions, err)
	}

	for i := range file.Tenants {
		if err := file.Tenants[i].normalize(); err != nil {
			return nil, err
		}
	}
	return file.Tenants, nil
}

func (d *Definition) normalize() error {
	if d.Output == "" {
		d.Output = OutputPDF
	}
	if d.Template == "" {
		d.Template = "catalog.html"
	}
	if d.Editability.Policy == "" {
		d.Editability.Policy = PolicyAlways
	}

	switch d.Output {
	case OutputPDF, OutputXHTML:
	default:
		return fmt.Errorf("%w: tenant %q: unknown output %q", ErrDefinitions, d.ID, d.Output)
	}
	switch d.Editability.Policy {
	case PolicyAlways, PolicyNever, PolicyLock:
	default:
		return fmt.Errorf("%w: tenant %q: unknown editability policy %q", ErrDefinitions, d.ID, d.Editability.Policy)
	}
	return nil
}
