/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"fmt"
	"testing"
)

func mustPlayer(t *testing.T, name string, classic int) Player {
	t.Helper()
	p, err := NewPlayer(name, "1990-01-01", "other",
		Rating{Classic: classic, Rapid: classic / 2, Blitz: classic / 3})
	if err != nil {
		t.Fatalf("NewPlayer(%v): %v", name, err)
	}
	return p
}

// newTestTournament enrolls P1..Pn rated by the given classic ratings.
func newTestTournament(t *testing.T, variant Variant, numRounds int,
	ratings ...int) *Tournament {

	t.Helper()
	tourney, err := NewTournament(Info{
		Name:        "Test Open",
		Location:    "Boston",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-02",
		TimeControl: Classic,
		Variant:     variant,
		NumRounds:   numRounds,
	})
	if err != nil {
		t.Fatalf("NewTournament: %v", err)
	}
	for idx, r := range ratings {
		if err := tourney.AddPlayer(mustPlayer(t, fmt.Sprintf("P%d", idx+1),
			r)); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	return tourney
}

func pairingNames(pairings []Pairing) []string {
	var out []string
	for _, p := range pairings {
		black := "BYE"
		if p.Black != nil {
			black = p.Black.Name
		}
		out = append(out, p.White.Name+"-"+black)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// playRound pairs the next round and records results table by table.
func playRound(t *testing.T, tourney *Tournament, results ...Result) Round {
	t.Helper()
	r, err := PairNextRound(tourney)
	if err != nil {
		t.Fatalf("PairNextRound: %v", err)
	}
	for idx, res := range results {
		if err := tourney.SetResult(r.Number, idx, res); err != nil {
			t.Fatalf("SetResult(%d, %d, %v): %v", r.Number, idx, res, err)
		}
	}
	out, err := tourney.Round(r.Number)
	if err != nil {
		t.Fatalf("Round(%d): %v", r.Number, err)
	}
	return out
}
