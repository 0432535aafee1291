package catalog

// Tag is a descriptor attached to a weapon or ammunition payload that
// modifies firing pattern, damage resolution, or applied status effect
// (§9 "Tag algebra"). Represented as a string rather than a bitset of
// named constants so that a new tag is a single catalog-data addition,
// not a code change — the table lookup in TagEffect carries the behavior.
type Tag string

const (
	TagBeam        Tag = "Beam"
	TagPulse       Tag = "Pulse"
	TagBurst       Tag = "Burst"
	TagSingle      Tag = "Single"
	TagPhoton      Tag = "Photon"
	TagPlasma      Tag = "Plasma"
	TagPositron    Tag = "Positron"
	TagIon         Tag = "Ion"
	TagGraviton    Tag = "Graviton"
	TagTachyon     Tag = "Tachyon"
	TagAntimissile Tag = "Antimissile"
	TagAntitorpedo Tag = "Antitorpedo"
	TagChaff       Tag = "Chaff"
	TagDecoy       Tag = "Decoy"
)

// TagTable indexes TagEffect by Tag for O(1) lookup during damage
// resolution and firing-pattern derivation.
type TagTable map[Tag]TagEffect

// HasTag reports whether a tag set contains a given tag.
func HasTag(tags []Tag, t Tag) bool {
	for _, x := range tags {
		if x == t {
			return true
		}
	}
	return false
}

// FiringPatternFor derives the firing pattern of a weapon from its tag set.
// Single is the default when no pattern tag is present, matching the
// catalog convention that every weapon's tag list is exhaustive.
func (tt TagTable) FiringPatternFor(tags []Tag) FiringPattern {
	for _, t := range tags {
		if eff, ok := tt[t]; ok && eff.FiringPattern != "" {
			return eff.FiringPattern
		}
	}
	return PatternSingle
}
