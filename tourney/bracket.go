/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"fmt"
	"math/bits"
)

// BracketInfo describes the shape of a single elimination bracket.
type BracketInfo struct {
	TotalRounds int
	BracketSize int
	Byes        int
	RoundNames  []string
}

// NewBracketInfo sizes a bracket for n players: the bracket is the smallest
// power of two holding everyone and the difference is filled with byes.
func NewBracketInfo(n int) (BracketInfo, error) {
	if n < 2 {
		return BracketInfo{},
			invalidf("at least 2 players are required for a bracket (got %d)", n)
	}

	// ceil(log2(n)) without floating point
	total := bits.Len(uint(n - 1))
	size := 1 << total

	return BracketInfo{
		TotalRounds: total,
		BracketSize: size,
		Byes:        size - n,
		RoundNames:  RoundNames(total),
	}, nil
}

// RoundNames labels each round of a bracket with totalRounds rounds. The last
// three rounds are the quarterfinal, semifinal and final; anything earlier is
// "Round k".
func RoundNames(totalRounds int) []string {
	finals := []string{"Quarterfinal", "Semifinal", "Final"}

	names := make([]string, totalRounds)
	for idx := range names {
		fromEnd := totalRounds - idx
		if fromEnd <= len(finals) {
			names[idx] = finals[len(finals)-fromEnd]
		} else {
			names[idx] = fmt.Sprintf("Round %d", idx+1)
		}
	}

	return names
}

// BracketPairings pairs one round of a single elimination bracket.
//
// In round 1 the top seeds receive the byes and the remaining players meet by
// mirrored seed (best vs worst, second best vs second worst, ...); the byes
// follow as the last tables. Every later round pairs the winners of the
// previous round in table order: winner of table 1 vs winner of table 2 and
// so on.
func BracketPairings(players []Player, tc TimeControl, roundNumber int,
	prior []Round) ([]Pairing, error) {

	info, err := NewBracketInfo(len(players))
	if err != nil {
		return nil, err
	}
	if roundNumber < 1 || roundNumber > info.TotalRounds {
		return nil, invalidf("round number must be between 1 and %d (got %d)",
			info.TotalRounds, roundNumber)
	}

	if roundNumber == 1 {
		return seedBracket(sortByRating(players, tc), info.Byes), nil
	}

	winners, err := previousWinners(roundNumber-1, prior)
	if err != nil {
		return nil, err
	}

	return pairWinners(winners), nil
}

func seedBracket(seeded []Player, byes int) []Pairing {
	held := seeded[:byes]
	active := seeded[byes:]

	pairings := make([]Pairing, 0, len(active)/2+len(held))
	last := len(active) - 1
	for i := 0; i < len(active)/2; i++ {
		pairings = append(pairings, Pairing{White: active[i],
			Black: &active[last-i]})
	}
	for _, p := range held {
		pairings = append(pairings, buildOneBye(p))
	}

	return pairings
}

func previousWinners(number int, prior []Round) ([]Player, error) {
	var prev *Round
	for idx := range prior {
		if prior[idx].Number == number {
			prev = &prior[idx]
			break
		}
	}
	if prev == nil {
		return nil, &NotReadyError{Round: number, Reason: "round not played"}
	}

	winners := make([]Player, 0, len(prev.Matches))
	for idx, m := range prev.Matches {
		if !m.IsResolved() {
			return nil, &NotReadyError{
				Round:  number,
				Reason: fmt.Sprintf("table %d has no result", idx+1),
			}
		}
		w, ok := m.Winner()
		if !ok {
			return nil, &NotReadyError{
				Round: number,
				Reason: fmt.Sprintf("table %d is drawn (%v); elimination needs a decisive result",
					idx+1, m.Result),
			}
		}
		winners = append(winners, w)
	}

	return winners, nil
}

func pairWinners(winners []Player) []Pairing {
	pairings := make([]Pairing, 0, len(winners)/2+1)
	for i := 0; i+1 < len(winners); i += 2 {
		pairings = append(pairings, Pairing{White: winners[i],
			Black: &winners[i+1]})
	}
	if len(winners)%2 == 1 {
		pairings = append(pairings, buildOneBye(winners[len(winners)-1]))
	}

	return pairings
}
