// Package drd aggregates the DRD cross-references embedded in a requirement
// catalog into one entry per DRD with its full back-reference set.
package drd

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/tailoring/pkg/catalog"
)

// Element is one DRD as seen by rendering templates: its definition plus the
// ids of every requirement that references it.
type Element struct {
	Number       string
	Title        string
	Subtitle     string
	DeliveryDate string
	Action       string
	Requirements []string
}

// Dangling is a requirement reference to a DRD the catalog does not define.
type Dangling struct {
	Requirement string
	DRD         string
}

// Aggregate scans every requirement and groups requirement ids by referenced
// DRD. Only DRDs with at least one reference are returned, sorted by number.
// Requirement ids keep catalog order and appear once per DRD even when a
// requirement lists the same DRD twice. References to undefined DRDs are
// returned as dangling and excluded from the elements.
func Aggregate(c catalog.Catalog) ([]Element, []Dangling) {
	defs := c.DRDIndex()
	byNumber := make(map[string]*Element)
	var dangling []Dangling

	for _, req := range c.Requirements {
		for _, number := range req.DRDs {
			number = strings.TrimSpace(number)
			if number == "" {
				continue
			}

			def, ok := defs[number]
			if !ok {
				dangling = append(dangling, Dangling{Requirement: req.ID, DRD: number})
				continue
			}

			el, ok := byNumber[number]
			if !ok {
				el = &Element{
					Number:       number,
					Title:        def.Title,
					Subtitle:     def.Subtitle,
					DeliveryDate: def.DeliveryDate,
					Action:       def.Action,
				}
				byNumber[number] = el
			}
			if !slices.Contains(el.Requirements, req.ID) {
				el.Requirements = append(el.Requirements, req.ID)
			}
		}
	}

	out := make([]Element, 0, len(byNumber))
	for _, el := range byNumber {
		out = append(out, *el)
	}
	slices.SortFunc(out, func(a, b Element) int {
		return strings.Compare(a.Number, b.Number)
	})
	return out, dangling
}

// References reports whether the element lists requirement id.
func (e Element) References(id string) bool {
	return slices.Contains(e.Requirements, id)
}
