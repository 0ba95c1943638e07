/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"sort"
)

// Standing is one player's line in the standings table.
type Standing struct {
	Player Player
	Score  float64
	Played int
}

// Standings totals every recorded result in rounds. A bye is worth a point
// and a game to its holder; unplayed games are skipped. The table is ordered
// by score, then by the tc rating, then by roster order.
func Standings(players []Player, rounds []Round,
	tc TimeControl) ([]Standing, error) {

	table := make([]Standing, len(players))
	byName := make(map[string]*Standing, len(players))
	for idx, p := range players {
		table[idx] = Standing{Player: p}
		byName[p.Name] = &table[idx]
	}

	lookup := func(r Round, name string) (*Standing, error) {
		s, ok := byName[name]
		if !ok {
			return nil, dataFormatf("round %d pairs %v who is not on the roster",
				r.Number, name)
		}
		return s, nil
	}

	for _, r := range rounds {
		for _, m := range r.Matches {
			w, err := lookup(r, m.White.Name)
			if err != nil {
				return nil, err
			}
			if m.IsBye() {
				w.Score += 1.0
				w.Played++
				continue
			}
			b, err := lookup(r, m.Black.Name)
			if err != nil {
				return nil, err
			}
			wPts, bPts, ok := m.Result.Points()
			if !ok {
				continue
			}
			w.Score += wPts
			w.Played++
			b.Score += bPts
			b.Played++
		}
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Score != table[j].Score {
			return table[i].Score > table[j].Score
		}
		return table[i].Player.Rating.For(tc) > table[j].Player.Rating.For(tc)
	})

	return table, nil
}

// Standings returns the tournament standings after round asOf; 0 means after
// every recorded round.
func (t *Tournament) Standings(asOf int) ([]Standing, error) {
	if asOf < 0 || asOf > len(t.rounds) {
		return nil, invalidf("standings round must be between 0 and %d (got %d)",
			len(t.rounds), asOf)
	}
	rounds := t.rounds
	if asOf > 0 {
		rounds = rounds[:asOf]
	}

	return Standings(t.players, rounds, t.info.TimeControl)
}
