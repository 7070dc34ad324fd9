package ports

import "strings"

// NameLookup resolves a native-script name to a curated Latin spelling.
type NameLookup interface {
	LatinFor(native string) (string, bool)
}

// NameMap is an in-memory NameLookup keyed by upper-cased native spelling.
type NameMap map[string]string

func (m NameMap) LatinFor(native string) (string, bool) {
	if len(m) == 0 {
		return "", false
	}
	v, ok := m[NameKey(native)]
	return v, ok
}

// NameKey is the canonical key form for NameMap entries.
func NameKey(native string) string {
	return strings.ToUpper(strings.Join(strings.Fields(native), " "))
}
