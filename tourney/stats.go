/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"math"
)

// EloK is the development coefficient used for the in-tournament rating
// change estimate.
const EloK = 20.0

// PlayerStats summarises one player's tournament.
type PlayerStats struct {
	Player      Player
	Points      float64
	GamesPlayed int
	Wins        int
	Draws       int
	Losses      int
	// OpponentRatings lists every real opponent paired so far, whether or
	// not the game has a result yet.
	OpponentRatings       []int
	AverageOpponentRating float64
	PerformanceRating     int
	RatingChange          float64
}

// expectedScore is the Elo expectation of a player rated myRating against
// oppRating: 10^(my/400) / (10^(my/400) + 10^(opp/400)).
func expectedScore(myRating float64, oppRating float64) float64 {
	// == 1/(10^((opp-my)/400)+1), which does not overflow for large ratings
	exp := math.Pow(10, (oppRating-myRating)/400.0)
	return 1.0 / (exp + 1.0)
}

// performanceRating estimates the rating implied by scoring pct against
// opponents averaging avgOpp. A perfect or zero score is capped at ±400.
func performanceRating(avgOpp float64, pct float64) int {
	switch pct {
	case 1.0:
		return int(avgOpp + 400)
	case 0.0:
		return int(avgOpp - 400)
	}
	perf := avgOpp + (-400 * math.Log10((1-pct)/pct))
	if math.IsNaN(perf) || math.IsInf(perf, 0) {
		return int(avgOpp)
	}

	return int(perf)
}

// PlayerStatistics scans every round of t for games involving name.
func PlayerStatistics(t *Tournament, name string) (PlayerStats, error) {
	me, err := t.Player(name)
	if err != nil {
		return PlayerStats{}, err
	}
	tc := t.info.TimeControl
	myRating := float64(me.Rating.For(tc))

	stats := PlayerStats{Player: me}
	for _, r := range t.rounds {
		for _, m := range r.Matches {
			if !m.Involves(me.Name) {
				continue
			}
			if m.IsBye() {
				stats.Points += 1.0
				stats.GamesPlayed++
				stats.Wins++
				continue
			}

			opp := *m.Black
			if m.Black.Name == me.Name {
				opp = m.White
			}
			oppRating := opp.Rating.For(tc)
			stats.OpponentRatings = append(stats.OpponentRatings, oppRating)

			wPts, bPts, ok := m.Result.Points()
			if !ok {
				continue
			}
			actual := wPts
			if m.White.Name != me.Name {
				actual = bPts
			}
			stats.Points += actual
			stats.GamesPlayed++
			switch actual {
			case 1.0:
				stats.Wins++
			case 0.5:
				stats.Draws++
			default:
				stats.Losses++
			}
			stats.RatingChange += EloK *
				(actual - expectedScore(myRating, float64(oppRating)))
		}
	}

	if len(stats.OpponentRatings) > 0 {
		sum := 0
		for _, r := range stats.OpponentRatings {
			sum += r
		}
		stats.AverageOpponentRating =
			float64(sum) / float64(len(stats.OpponentRatings))
	}
	if stats.GamesPlayed > 0 {
		stats.PerformanceRating = performanceRating(
			stats.AverageOpponentRating,
			stats.Points/float64(stats.GamesPlayed))
	}

	return stats, nil
}
