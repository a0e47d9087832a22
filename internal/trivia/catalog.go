package trivia

import "sort"

// Genres maps canonical lowercase genre keywords to TMDB genre ids.
// Fixed at process start, never persisted.
var Genres = map[string]int{
	"action":      28,
	"adventure":   12,
	"animation":   16,
	"comedy":      35,
	"crime":       80,
	"documentary": 99,
	"drama":       18,
	"family":      10751,
	"fantasy":     14,
	"history":     36,
	"horror":      27,
	"music":       10402,
	"mystery":     9648,
	"romance":     10749,
	"scifi":       878,
	"thriller":    53,
	"war":         10752,
	"western":     37,
}

// Providers maps canonical lowercase provider keywords to TMDB watch
// provider ids.
var Providers = map[string]int{
	"netflix":   8,
	"prime":     9,
	"disney":    337,
	"hulu":      15,
	"max":       1899,
	"apple":     350,
	"peacock":   386,
	"paramount": 531,
}

// GenreKeywords returns the genre keywords, sorted
func GenreKeywords() []string {
	return sortedKeys(Genres)
}

// ProviderKeywords returns the provider keywords, sorted
func ProviderKeywords() []string {
	return sortedKeys(Providers)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
