package procgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(42, Params{NumStars: 100, NumFactions: 5})
	b := Generate(42, Params{NumStars: 100, NumFactions: 5})

	require.Equal(t, len(a.Galaxy.Stars), len(b.Galaxy.Stars))
	for i := range a.Galaxy.Stars {
		assert.Equal(t, a.Galaxy.Stars[i], b.Galaxy.Stars[i])
	}
	assert.Equal(t, a.Factions, b.Factions)
	assert.Equal(t, a.Relations, b.Relations)
	assert.Equal(t, a.Languages, b.Languages)
	assert.Equal(t, a.History, b.History)
}

func TestGenerate_DifferentSeedsDiverge(t *testing.T) {
	a := Generate(1, Params{NumStars: 50, NumFactions: 4})
	b := Generate(2, Params{NumStars: 50, NumFactions: 4})
	assert.NotEqual(t, a.Galaxy.Stars, b.Galaxy.Stars)
}

func TestValidate_ProbabilityTablesSumToOne(t *testing.T) {
	errs := Validate()
	assert.Empty(t, errs)
}

func TestGenerateFactions_TraitsNeverConflict(t *testing.T) {
	u := Generate(7, Params{NumStars: 80, NumFactions: 6})
	for _, f := range u.Factions {
		for i, t1 := range f.Traits {
			for _, t2 := range f.Traits[i+1:] {
				assert.False(t, isConflictPair(t1, t2), "faction %s has conflicting traits %s/%s", f.Name, t1, t2)
			}
		}
	}
}

func isConflictPair(a, b Trait) bool {
	for _, pair := range TraitConflicts {
		if (pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a) {
			return true
		}
	}
	return false
}

func TestGenerateFactions_TerritoryDisjoint(t *testing.T) {
	u := Generate(11, Params{NumStars: 60, NumFactions: 4})
	seen := map[int]bool{}
	for _, f := range u.Factions {
		for _, star := range f.Territory {
			assert.False(t, seen[star], "star %d claimed by more than one faction", star)
			seen[star] = true
		}
	}
}

func TestLanguage_TranslateStable(t *testing.T) {
	u := Generate(3, Params{NumStars: 40, NumFactions: 3})
	require.NotEmpty(t, u.Languages)
	lang := u.Languages[0]
	w1 := lang.Translate("unknown-concept")
	w2 := lang.Translate("unknown-concept")
	assert.Equal(t, w1, w2)
	assert.NotEmpty(t, lang.Translate("hello"))
}

func TestHistory_FirstContactForEveryPair(t *testing.T) {
	u := Generate(5, Params{NumStars: 30, NumFactions: 4})
	expectedPairs := 4 * 3 / 2
	contacts := 0
	for _, ev := range u.History {
		if ev.Kind == EventFirstContact {
			contacts++
		}
	}
	assert.Equal(t, expectedPairs, contacts)
}
