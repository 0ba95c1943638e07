/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

// pairingStrategy produces the pairings for roundNumber of t.
type pairingStrategy func(t *Tournament, roundNumber int) ([]Pairing, error)

var pairingStrategies = map[Variant]pairingStrategy{
	VariantSwiss: func(t *Tournament, roundNumber int) ([]Pairing, error) {
		return SwissPairings(t.players, t.info.TimeControl, roundNumber,
			t.info.NumRounds, t.rounds)
	},
	VariantElimination: func(t *Tournament, roundNumber int) ([]Pairing, error) {
		return BracketPairings(t.players, t.info.TimeControl, roundNumber,
			t.rounds)
	},
}

// GenerateNextRound pairs the next round of t without modifying it. Callers
// persist the result with NewRound and AddRound.
func GenerateNextRound(t *Tournament) (int, []Pairing, error) {
	strategy, ok := pairingStrategies[t.info.Variant]
	if !ok {
		return 0, nil, invalidf("%v tournaments have no pairing system",
			t.info.Variant)
	}
	if err := t.Ready(); err != nil {
		return 0, nil, err
	}

	next := t.NextRoundNumber()
	pairings, err := strategy(t, next)
	if err != nil {
		return 0, nil, err
	}

	return next, pairings, nil
}

// PairNextRound generates the next round and appends it to t.
func PairNextRound(t *Tournament) (Round, error) {
	number, pairings, err := GenerateNextRound(t)
	if err != nil {
		return Round{}, err
	}
	r, err := NewRound(number, 0, pairings)
	if err != nil {
		return Round{}, err
	}
	if err := t.AddRound(r); err != nil {
		return Round{}, err
	}

	return r, nil
}

// GetStandings is the presentation-layer entry point for standings; asOf 0
// means all recorded rounds.
func GetStandings(t *Tournament, asOf int) ([]Standing, error) {
	return t.Standings(asOf)
}

func GetPlayerStatistics(t *Tournament, name string) (PlayerStats, error) {
	return PlayerStatistics(t, name)
}

// BracketInfo is only defined for elimination tournaments.
func (t *Tournament) BracketInfo() (BracketInfo, error) {
	if t.info.Variant != VariantElimination {
		return BracketInfo{}, invalidf("tournament %v is %v, not elimination",
			t.info.Name, t.info.Variant)
	}

	return NewBracketInfo(len(t.players))
}
