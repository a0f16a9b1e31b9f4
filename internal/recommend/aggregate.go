package recommend

import (
	"strings"

	"mesa/internal/models"
)

// CuisineStats holds the per-cuisine aggregate over a group's members.
type CuisineStats struct {
	AvgRank   float64 `json:"avg_rank"`
	Frequency int     `json:"frequency"`
}

// Aggregate computes per-cuisine statistics for the given members out of the
// full user table. A cuisine's rank for a member is its 1-based position in
// the member's favorite list; cuisines outside the catalog are ignored, and a
// cuisine nobody ranked gets DefaultRank with frequency 0.
func Aggregate(users []models.User, members []string) map[string]CuisineStats {
	inGroup := make(map[string]struct{}, len(members))
	for _, m := range members {
		inGroup[m] = struct{}{}
	}
	var favorites [][]string
	for _, u := range users {
		if _, ok := inGroup[u.Username]; ok {
			favorites = append(favorites, u.FavoriteCuisines)
		}
	}
	return statsFromRanks(aggregateRanks(favorites))
}

// aggregateRanks collects, per catalog cuisine, every 1-based rank it holds
// across the given favorite lists.
func aggregateRanks(favorites [][]string) map[string][]int {
	ranks := make(map[string][]int, len(Catalog))
	for _, c := range Catalog {
		ranks[c] = nil
	}
	for _, favs := range favorites {
		for pos, raw := range favs {
			cuisine := strings.ToLower(strings.TrimSpace(raw))
			if _, known := ranks[cuisine]; known {
				ranks[cuisine] = append(ranks[cuisine], pos+1)
			}
		}
	}
	return ranks
}

func statsFromRanks(ranks map[string][]int) map[string]CuisineStats {
	stats := make(map[string]CuisineStats, len(Catalog))
	for _, c := range Catalog {
		rs := ranks[c]
		if len(rs) == 0 {
			stats[c] = CuisineStats{AvgRank: DefaultRank, Frequency: 0}
			continue
		}
		sum := 0
		for _, r := range rs {
			sum += r
		}
		stats[c] = CuisineStats{
			AvgRank:   float64(sum) / float64(len(rs)),
			Frequency: len(rs),
		}
	}
	return stats
}
