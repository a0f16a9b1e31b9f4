// Package recommend aggregates group cuisine preferences and selects a
// cuisine for a group, either through deterministic scoring or through a
// random-forest classifier trained at startup on synthetic groups.
package recommend

// Catalog is the fixed set of recognized cuisines. Order matters: it is the
// feature order of the classifier and the tie-break order for argmin.
var Catalog = []string{
	"italian",
	"chinese",
	"mexican",
	"indian",
	"japanese",
	"french",
	"mediterranean",
	"thai",
}

const (
	// MaxSeqLength bounds how many cuisines a user can rank.
	MaxSeqLength = 5
	// DefaultRank is one past the worst expressible rank, used for a
	// cuisine no member ranked.
	DefaultRank = float64(MaxSeqLength + 1)
	// FrequencyExponent is the exponent p in the weighted scores.
	FrequencyExponent = 2.0
)

// CatalogIndex returns the catalog position of a cuisine, or -1.
func CatalogIndex(cuisine string) int {
	for i, c := range Catalog {
		if c == cuisine {
			return i
		}
	}
	return -1
}
