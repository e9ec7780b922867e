// Package catalog holds the read-only requirement catalog snapshot that is
// rendered into tailoring documents.
package catalog

import "strings"

// Catalog is a versioned, ordered collection of requirements together with
// the DRD definitions its requirements may reference.
type Catalog struct {
	Version      string        `json:"version" yaml:"version"`
	Requirements []Requirement `json:"requirements" yaml:"requirements"`
	DRDs         []DRD         `json:"drds" yaml:"drds"`
}

// Requirement is one catalog entry. DRDs lists the numbers of the DRDs it
// must satisfy.
type Requirement struct {
	ID   string   `json:"id" yaml:"id"`
	Text string   `json:"text" yaml:"text"`
	DRDs []string `json:"drds,omitempty" yaml:"drds,omitempty"`
}

// DRD is a Document Requirements Description definition.
type DRD struct {
	Number       string `json:"number" yaml:"number"`
	Title        string `json:"title" yaml:"title"`
	Subtitle     string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	DeliveryDate string `json:"delivery_date,omitempty" yaml:"delivery_date,omitempty"`
	Action       string `json:"action,omitempty" yaml:"action,omitempty"`
}

// DRDIndex returns the DRD definitions keyed by their trimmed number.
// Definitions without a number are skipped and later duplicates win.
func (c Catalog) DRDIndex() map[string]DRD {
	idx := make(map[string]DRD, len(c.DRDs))
	for _, d := range c.DRDs {
		number := strings.TrimSpace(d.Number)
		if number == "" {
			continue
		}
		idx[number] = d
	}
	return idx
}

// Validate checks the structural constraints the renderer relies on.
func (c Catalog) Validate() error {
	if c.Version == "" {
		return ErrMissingVersion
	}
	seen := make(map[string]struct{}, len(c.Requirements))
	for _, r := range c.Requirements {
		if r.ID == "" {
			return ErrMissingRequirementID
		}
		if _, dup := seen[r.ID]; dup {
			return &DuplicateRequirementError{ID: r.ID}
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
