/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"errors"
	"testing"
)

func TestSwissPairings(t *testing.T) {
	cases := []struct {
		name     string
		ratings  []int
		round    int
		expected []string
	}{
		{
			name:     "round 1 even field",
			ratings:  []int{1800, 2000, 1700, 1900},
			round:    1,
			expected: []string{"P2-P1", "P4-P3"},
		},
		{
			name:     "round 1 odd field",
			ratings:  []int{2000, 1900, 1800, 1700, 1600},
			round:    1,
			expected: []string{"P1-P3", "P2-P4", "P5-BYE"},
		},
		{
			name:     "round 2 neighbours with higher rated as black",
			ratings:  []int{2000, 1900, 1800, 1700},
			round:    2,
			expected: []string{"P2-P1", "P4-P3"},
		},
		{
			name:     "round 3 neighbours with higher rated as white",
			ratings:  []int{2000, 1900, 1800, 1700, 1600},
			round:    3,
			expected: []string{"P1-P2", "P3-P4", "P5-BYE"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var players []Player
			for idx, r := range c.ratings {
				players = append(players, mustPlayer(t,
					"P"+string(rune('1'+idx)), r))
			}
			pairings, err := SwissPairings(players, Classic, c.round, 5, nil)
			if err != nil {
				t.Fatalf("SwissPairings: %v", err)
			}
			got := pairingNames(pairings)
			if !equalStrings(got, c.expected) {
				t.Errorf("pairings = %v; want %v", got, c.expected)
			}
		})
	}
}

func TestSwissRound1Colors(t *testing.T) {
	tourney := newTestTournament(t, VariantSwiss, 3, 2000, 1900, 1800, 1700)
	r, err := PairNextRound(tourney)
	if err != nil {
		t.Fatalf("PairNextRound: %v", err)
	}
	if len(r.Matches) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(r.Matches))
	}
	want := [][2]int{{2000, 1800}, {1900, 1700}}
	for idx, m := range r.Matches {
		if m.White.Rating.Classic != want[idx][0] ||
			m.Black.Rating.Classic != want[idx][1] {
			t.Errorf("table %d: %d vs %d; want %d vs %d", idx+1,
				m.White.Rating.Classic, m.Black.Rating.Classic,
				want[idx][0], want[idx][1])
		}
	}
}

func TestSwissPairingsRatingByTimeControl(t *testing.T) {
	a, _ := NewPlayer("A", "1990-01-01", "male", Rating{Classic: 2000, Blitz: 1500})
	b, _ := NewPlayer("B", "1990-01-01", "male", Rating{Classic: 1500, Blitz: 2000})
	c, _ := NewPlayer("C", "1990-01-01", "male", Rating{Classic: 1000, Blitz: 1000})
	d, _ := NewPlayer("D", "1990-01-01", "male", Rating{Classic: 900, Blitz: 900})

	pairings, err := SwissPairings([]Player{a, b, c, d}, Blitz, 1, 3, nil)
	if err != nil {
		t.Fatalf("SwissPairings: %v", err)
	}
	got := pairingNames(pairings)
	want := []string{"B-C", "A-D"}
	if !equalStrings(got, want) {
		t.Errorf("blitz pairings = %v; want %v", got, want)
	}
}

func TestSwissPairingsInvalid(t *testing.T) {
	one := []Player{mustPlayer(t, "Solo", 1500)}
	if _, err := SwissPairings(one, Classic, 1, 3, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("single player: expected ErrInvalidInput, got %v", err)
	}

	two := []Player{mustPlayer(t, "A", 1500), mustPlayer(t, "B", 1400)}
	for _, round := range []int{0, 4} {
		if _, err := SwissPairings(two, Classic, round, 3, nil); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("round %d: expected ErrInvalidInput, got %v", round, err)
		}
	}
}

func TestSwissEveryPlayerOncePerRound(t *testing.T) {
	tourney := newTestTournament(t, VariantSwiss, 4,
		1500, 1600, 1700, 1800, 1900, 2000, 2100)

	for round := 1; round <= 4; round++ {
		r, err := PairNextRound(tourney)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		seen := make(map[string]int)
		for idx, m := range r.Matches {
			seen[m.White.Name]++
			if m.IsBye() {
				if idx != len(r.Matches)-1 {
					t.Errorf("round %d: bye at table %d is not last", round, idx+1)
				}
				continue
			}
			seen[m.Black.Name]++
			if err := tourney.SetResult(round, idx, ResultDraw); err != nil {
				t.Fatalf("SetResult: %v", err)
			}
		}
		if len(seen) != 7 {
			t.Errorf("round %d: %d players paired; want 7", round, len(seen))
		}
		for name, count := range seen {
			if count != 1 {
				t.Errorf("round %d: %v paired %d times", round, name, count)
			}
		}
		if r.Byes() != 1 {
			t.Errorf("round %d: %d byes; want 1", round, r.Byes())
		}
	}

	if !tourney.IsFinished() {
		t.Errorf("expected tournament to be finished")
	}
	if _, err := PairNextRound(tourney); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("pairing past the last round: expected ErrInvalidInput, got %v", err)
	}
}
