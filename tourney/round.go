/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

// Round is the ordered set of matches played in one round.
type Round struct {
	Number   int
	Subround int
	Matches  []Match
}

// NewRound builds an unplayed round from engine pairings.
func NewRound(number int, subround int, pairings []Pairing) (Round, error) {
	if number <= 0 {
		return Round{}, invalidf("round number must be positive (got %d)",
			number)
	}
	if subround < 0 {
		return Round{}, invalidf("subround must be non-negative (got %d)",
			subround)
	}

	r := Round{
		Number:   number,
		Subround: subround,
		Matches:  make([]Match, 0, len(pairings)),
	}
	for _, p := range pairings {
		m, err := NewMatch(p, ResultNone)
		if err != nil {
			return Round{}, err
		}
		r.Matches = append(r.Matches, m)
	}

	return r, nil
}

// IsComplete reports whether every non-bye match carries a result.
func (r Round) IsComplete() bool {
	return r.firstUnresolved() < 0
}

func (r Round) firstUnresolved() int {
	for idx, m := range r.Matches {
		if !m.IsResolved() {
			return idx
		}
	}

	return -1
}

// Byes counts the bye entries in the round.
func (r Round) Byes() int {
	count := 0
	for _, m := range r.Matches {
		if m.IsBye() {
			count++
		}
	}

	return count
}

func (r Round) clone() Round {
	out := r
	out.Matches = append([]Match(nil), r.Matches...)
	return out
}
