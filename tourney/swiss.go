/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

type color int

const (
	white color = iota
	black
)

// topColor is the color held by the higher rated player of each table:
// white in odd rounds, black in even rounds.
func topColor(roundNumber int) color {
	if roundNumber%2 == 1 {
		return white
	}
	return black
}

// SwissPairings pairs players for one round of a swiss tournament.
//
// Round 1 splits the field by rating into a top and bottom half and pairs
// top[i] against bottom[i]. Later rounds pair neighbours in rating order
// (1v2, 3v4, ...). Neither avoids repeat opponents or balances colors beyond
// alternating by round. With an odd field the lowest rated leftover player
// gets the bye, which is always the last table.
//
// prior is accepted for symmetry with the bracket engine; the swiss policy
// does not consult it.
func SwissPairings(players []Player, tc TimeControl, roundNumber int,
	totalRounds int, prior []Round) ([]Pairing, error) {

	if len(players) < 2 {
		return nil, invalidf("at least 2 players are required to pair (got %d)",
			len(players))
	}
	if roundNumber < 1 || roundNumber > totalRounds {
		return nil, invalidf("round number must be between 1 and %d (got %d)",
			totalRounds, roundNumber)
	}

	sorted := sortByRating(players, tc)
	if roundNumber == 1 {
		return round1Pairings(sorted, roundNumber), nil
	}

	return neighbourPairings(sorted, roundNumber), nil
}

func round1Pairings(sorted []Player, roundNumber int) []Pairing {
	mid := len(sorted) / 2
	top := sorted[:mid]
	bottom := sorted[mid:]

	pairings := make([]Pairing, 0, mid+1)
	for i := range top {
		pairings = append(pairings, buildOnePairing(top[i], bottom[i],
			roundNumber))
	}
	if len(sorted)%2 == 1 {
		pairings = append(pairings, buildOneBye(sorted[len(sorted)-1]))
	}

	return pairings
}

func neighbourPairings(sorted []Player, roundNumber int) []Pairing {
	pairings := make([]Pairing, 0, len(sorted)/2+1)
	for i := 0; i+1 < len(sorted); i += 2 {
		pairings = append(pairings, buildOnePairing(sorted[i], sorted[i+1],
			roundNumber))
	}
	if len(sorted)%2 == 1 {
		pairings = append(pairings, buildOneBye(sorted[len(sorted)-1]))
	}

	return pairings
}

func buildOnePairing(higher Player, lower Player, roundNumber int) Pairing {
	if topColor(roundNumber) == white {
		return Pairing{White: higher, Black: &lower}
	}
	return Pairing{White: lower, Black: &higher}
}

func buildOneBye(p Player) Pairing {
	return Pairing{White: p}
}
