package tracker

import "math"

// bwsBase is the decay base of the badge-weighted seeding formula used by
// the tournament: bws = rank ^ (0.9937 ^ badges²).
const bwsBase = 0.9937

// BwsRank computes the badge-weighted rank for a player.
//
// Each badge discounts the raw global rank: the exponent 0.9937^badges²
// shrinks toward zero as badges grow, pulling the result toward 1 no matter
// how large the rank is. An unranked player (rank 0) always maps to 0, and
// a player without badges keeps their raw rank.
func BwsRank(globalRank, badges int) int {
	// At very high badge counts the exponent underflows to 0 and
	// math.Pow(0, 0) is 1, so the unranked case is handled first.
	if globalRank <= 0 {
		return 0
	}
	exp := math.Pow(bwsBase, float64(badges*badges))
	return int(math.Round(math.Pow(float64(globalRank), exp)))
}
