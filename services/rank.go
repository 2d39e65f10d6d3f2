package services

// RankTier is one named band of the point scale. Bands are contiguous,
// non-overlapping and inclusive on both ends.
type RankTier struct {
	Name      string `json:"name"`
	MinPoints int64  `json:"min_points"`
	MaxPoints int64  `json:"max_points"`
}

// DefaultRank is the tier assigned to a fresh ranking record.
const DefaultRank = "Bronze"

var RankTiers = []RankTier{
	{Name: "Bronze", MinPoints: 0, MaxPoints: 100},
	{Name: "Silver", MinPoints: 101, MaxPoints: 200},
	{Name: "Gold", MinPoints: 201, MaxPoints: 300},
	{Name: "Platinum", MinPoints: 301, MaxPoints: 400},
	{Name: "Diamond", MinPoints: 401, MaxPoints: 500},
	{Name: "Master", MinPoints: 501, MaxPoints: 600},
	{Name: "Grandmaster", MinPoints: 601, MaxPoints: 700},
	{Name: "Challenger", MinPoints: 701, MaxPoints: 800},
	{Name: "Legend", MinPoints: 801, MaxPoints: 900},
	{Name: "Mythic", MinPoints: 901, MaxPoints: 1000},
}

// RankByPoints returns the tier name whose band contains points. The second
// return is false when no band matches (negative totals, or totals past the
// top band). Callers keep the previous rank in that case rather than
// clearing it.
func RankByPoints(points int64) (string, bool) {
	for _, t := range RankTiers {
		if points >= t.MinPoints && points <= t.MaxPoints {
			return t.Name, true
		}
	}
	return "", false
}
