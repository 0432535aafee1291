// Package config is the external YAML configuration loader spec.md §1
// names as out of scope for the hard core: it deserializes on-disk
// catalog documents into the plain Go values catalog.New validates, and
// nothing more. The core (catalog, blueprint, world, engine, procgen)
// never imports this package or gopkg.in/yaml.v3 directly — catalog
// types only carry yaml struct tags for this loader to target.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hyperion-sim/hyperion/catalog"
)

// Document is the top-level shape of one catalog YAML file: every table
// §4.1 names, plus tunables.
type Document struct {
	Classes    []catalog.ShipClass    `yaml:"classes"`
	Slots      []moduleSlotDoc        `yaml:"slots"`
	Variants   []catalog.ModuleVariant `yaml:"variants"`
	Weapons    []catalog.Weapon        `yaml:"weapons"`
	Ammunition []catalog.Ammunition    `yaml:"ammunition"`
	TagEffects []catalog.TagEffect     `yaml:"tag_effects"`
	Tunables   catalog.Tunables        `yaml:"tunables"`
}

// moduleSlotDoc mirrors catalog.ModuleSlot but also accepts the source
// plan's "has_varients" misspelling on input (§9 Open Questions); either
// spelling is accepted here, and the loader always hands catalog.New the
// canonically-spelled HasVariants field.
type moduleSlotDoc struct {
	catalog.ModuleSlot `yaml:",inline"`
	HasVarientsSic     *bool `yaml:"has_varients"`
}

func (d moduleSlotDoc) resolved() catalog.ModuleSlot {
	slot := d.ModuleSlot
	if d.HasVarientsSic != nil && *d.HasVarientsSic {
		slot.HasVariants = true
	}
	return slot
}

// Load reads and validates one catalog YAML file from disk, returning the
// built *catalog.Catalog or the aggregated list of catalog.CatalogError
// values catalog.New's validation produced (§7 "Catalog errors abort startup").
func Load(path string) (*catalog.Catalog, []*catalog.CatalogError, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse is Load without the filesystem read, used by tests and by
// callers that already have the document bytes (e.g. embedded defaults).
func Parse(raw []byte) (*catalog.Catalog, []*catalog.CatalogError, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("config: parse catalog: %w", err)
	}

	slots := make([]catalog.ModuleSlot, len(doc.Slots))
	for i, s := range doc.Slots {
		slots[i] = s.resolved()
	}

	cat, errs := catalog.New(doc.Classes, slots, doc.Variants, doc.Weapons, doc.Ammunition, doc.TagEffects, doc.Tunables)
	if len(errs) > 0 {
		return nil, errs, nil
	}
	return cat, nil, nil
}
