package procgen

import (
	"math/rand"
	"strings"
)

// SyllablePattern is one of the four shapes §4.6 step 4 names.
type SyllablePattern string

const (
	PatternCV  SyllablePattern = "CV"
	PatternCVC SyllablePattern = "CVC"
	PatternV   SyllablePattern = "V"
	PatternVC  SyllablePattern = "VC"
)

var syllablePatterns = []SyllablePattern{PatternCV, PatternCVC, PatternV, PatternVC}

// vocabularySlots is the fixed set of core-vocabulary concepts every
// language generates a word for (§4.6 step 4: "25 entries").
var vocabularySlots = []string{
	"hello", "goodbye", "yes", "no", "friend", "enemy", "ship", "star",
	"war", "peace", "honor", "trade", "home", "danger", "alliance",
	"captain", "fleet", "weapon", "shield", "victory", "defeat",
	"ancestor", "future", "truth", "death",
}

// Language is one faction's sampled phonology, syllable inventory, and
// core vocabulary.
type Language struct {
	FactionID  int
	Consonants []rune
	Vowels     []rune
	Clusters   []string // consonant clusters this language permits
	Patterns   []SyllablePattern
	Vocabulary map[string]string // concept -> word
}

var consonantPool = []rune("bcdfghjklmnpqrstvwxz")
var vowelPool = []rune("aeiouy")
var clusterPool = []string{"th", "sh", "ch", "kr", "zr", "ph", "vl", "dr", "gn"}

// generateLanguages samples one Language per faction (§4.6 step 4).
// Translation (Language.Translate) is a deterministic hash-keyed lookup:
// a concept already in Vocabulary returns its stored word; any other
// input is synthesized syllable-by-syllable from a hash of the input
// string, so the same word is generated every time for a given language
// and input regardless of generation order.
func generateLanguages(rng *rand.Rand, factions []Faction) []Language {
	langs := make([]Language, len(factions))
	for i, f := range factions {
		langs[i] = generateLanguage(rng, f.ID)
	}
	return langs
}

func generateLanguage(rng *rand.Rand, factionID int) Language {
	numConsonants := 8 + rng.Intn(6) // 8..13
	numVowels := 3 + rng.Intn(3)     // 3..5
	numClusters := rng.Intn(4)       // 0..3
	numPatterns := 1 + rng.Intn(3)   // 1..3

	lang := Language{
		FactionID:  factionID,
		Consonants: sampleRunes(rng, consonantPool, numConsonants),
		Vowels:     sampleRunes(rng, vowelPool, numVowels),
		Clusters:   sampleStrings(rng, clusterPool, numClusters),
		Patterns:   samplePatterns(rng, numPatterns),
		Vocabulary: make(map[string]string, len(vocabularySlots)),
	}

	for _, concept := range vocabularySlots {
		lang.Vocabulary[concept] = lang.synthesize(concept)
	}
	return lang
}

func sampleRunes(rng *rand.Rand, pool []rune, n int) []rune {
	if n > len(pool) {
		n = len(pool)
	}
	idx := rng.Perm(len(pool))[:n]
	out := make([]rune, n)
	for i, p := range idx {
		out[i] = pool[p]
	}
	return out
}

func sampleStrings(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	idx := rng.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, p := range idx {
		out[i] = pool[p]
	}
	return out
}

func samplePatterns(rng *rand.Rand, n int) []SyllablePattern {
	if n > len(syllablePatterns) {
		n = len(syllablePatterns)
	}
	idx := rng.Perm(len(syllablePatterns))[:n]
	out := make([]SyllablePattern, n)
	for i, p := range idx {
		out[i] = syllablePatterns[p]
	}
	return out
}

// Translate returns the word this language uses for a concept: the
// stored core-vocabulary entry if present, otherwise a word synthesized
// deterministically from the input.
func (l Language) Translate(concept string) string {
	if w, ok := l.Vocabulary[concept]; ok {
		return w
	}
	return l.synthesize(concept)
}

// synthesize builds a word from this language's phonology, hash-keyed on
// the input so the same concept always maps to the same word for this
// language (§8 "Procedural: generate(seed, params) twice yields identical
// universes" extends to any derived lookup, not just the initial draw).
func (l Language) synthesize(concept string) string {
	h := fnv1aString(concept)
	numSyllables := 2 + int(h%3) // 2..4
	var b strings.Builder
	for i := 0; i < numSyllables; i++ {
		pattern := l.Patterns[int(h>>uint(i*3))%len(l.Patterns)]
		b.WriteString(l.syllable(pattern, &h))
	}
	return b.String()
}

func (l Language) syllable(pattern SyllablePattern, h *uint64) string {
	next := func(n int) int {
		*h = (*h)*6364136223846793005 + 1442695040888963407
		return int((*h >> 33) % uint64(n))
	}
	c := func() string {
		if len(l.Clusters) > 0 && next(4) == 0 {
			return l.Clusters[next(len(l.Clusters))]
		}
		return string(l.Consonants[next(len(l.Consonants))])
	}
	v := func() string { return string(l.Vowels[next(len(l.Vowels))]) }

	switch pattern {
	case PatternCV:
		return c() + v()
	case PatternCVC:
		return c() + v() + c()
	case PatternV:
		return v()
	case PatternVC:
		return v() + c()
	default:
		return c() + v()
	}
}

func fnv1aString(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
