package rhyme

import "encoding/json"

// Type is the closed set of rhyme categories. None is a valid outcome.
type Type int

const (
	None Type = iota
	Perfect
	Consonant
	Assonant
	Internal
)

// Category strengths. Classify and the scanner read these and nothing else.
const (
	PerfectStrength   = 1.0
	ConsonantStrength = 0.8
	AssonantStrength  = 0.6
	InternalStrength  = 0.5

	// MinWordLen is the shortest normalized word that can rhyme.
	MinWordLen = 2
	// PerfectSuffixLen is the trailing run that makes a rima perfeita.
	PerfectSuffixLen = 3
	// ConsonantSuffixLen is the trailing run that makes a rima consoante.
	ConsonantSuffixLen = 2
	// AssonantVowels is how many trailing vowels a rima toante compares.
	AssonantVowels = 2
)

// Types lists every category that can appear in a record.
var Types = []Type{Perfect, Consonant, Assonant, Internal}

func (t Type) String() string {
	switch t {
	case Perfect:
		return "perfect"
	case Consonant:
		return "consonant"
	case Assonant:
		return "assonant"
	case Internal:
		return "internal"
	default:
		return "none"
	}
}

func ParseType(s string) Type {
	switch s {
	case "perfect":
		return Perfect
	case "consonant":
		return Consonant
	case "assonant":
		return Assonant
	case "internal":
		return Internal
	default:
		return None
	}
}

func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Type) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseType(s)
	return nil
}

// equivalentEndings are Portuguese near-rhymes that plain suffix matching
// misses. Both orders are accepted; the key is the normalized two-letter tail.
var equivalentEndings = map[[2]string]struct{}{
	{"ao", "am"}: {},
	{"er", "ar"}: {},
	{"ir", "ar"}: {},
	{"eu", "el"}: {},
}

func equivalentTails(a, b string) bool {
	ta, tb := suffix(a, 2), suffix(b, 2)
	if _, ok := equivalentEndings[[2]string{ta, tb}]; ok {
		return true
	}
	_, ok := equivalentEndings[[2]string{tb, ta}]
	return ok
}

// Classify compares two words and returns their rhyme category and strength.
// First match wins: reject short/identical, perfect, consonant, assonant,
// then the equivalence table.
func Classify(a, b string) (Type, float64) {
	return ClassifyNormalized(Normalize(a), Normalize(b))
}

// ClassifyNormalized is Classify for inputs already passed through Normalize.
func ClassifyNormalized(na, nb string) (Type, float64) {
	if len(na) < MinWordLen || len(nb) < MinWordLen || na == nb {
		return None, 0
	}

	common := commonSuffixLen(na, nb)
	if common >= PerfectSuffixLen {
		return Perfect, PerfectStrength
	}
	if common >= ConsonantSuffixLen {
		return Consonant, ConsonantStrength
	}

	va, vb := vowels(na), vowels(nb)
	if len(va) >= AssonantVowels && len(vb) >= AssonantVowels &&
		suffix(va, AssonantVowels) == suffix(vb, AssonantVowels) {
		return Assonant, AssonantStrength
	}

	if equivalentTails(na, nb) {
		return Consonant, ConsonantStrength
	}
	return None, 0
}

// Rhymes reports whether Classify returns anything but None.
func Rhymes(a, b string) bool {
	t, _ := Classify(a, b)
	return t != None
}
