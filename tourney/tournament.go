/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"fmt"
	"strings"

	"github.com/mikeb26/chesstourney/internal"
)

// Variant is the tournament format; it selects the pairing strategy.
type Variant string

const (
	VariantBasic       Variant = "basic"
	VariantSwiss       Variant = "swiss"
	VariantElimination Variant = "elimination"
)

// ParseVariant also accepts "eliminatory", the name older data files use.
func ParseVariant(s string) (Variant, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", string(VariantBasic):
		return VariantBasic, nil
	case string(VariantSwiss):
		return VariantSwiss, nil
	case string(VariantElimination), "eliminatory":
		return VariantElimination, nil
	}

	return VariantBasic, invalidf("tournament type %q must be basic, swiss or elimination", s)
}

// Info is the descriptive part of a tournament.
type Info struct {
	Name        string
	Location    string
	StartDate   string
	EndDate     string
	TimeControl TimeControl
	Variant     Variant
	// NumRounds is the planned number of rounds; swiss only.
	NumRounds int
}

func (info Info) validate() (Info, error) {
	info.Name = strings.TrimSpace(info.Name)
	info.Location = strings.TrimSpace(info.Location)
	if info.Name == "" {
		return info, invalidf("tournament name must be non-empty")
	}
	if info.Location == "" {
		return info, invalidf("tournament %v location must be non-empty",
			info.Name)
	}
	if err := internal.ValidateDate(info.StartDate); err != nil {
		return info, invalidf("tournament %v start date: %v", info.Name, err)
	}
	if err := internal.ValidateDate(info.EndDate); err != nil {
		return info, invalidf("tournament %v end date: %v", info.Name, err)
	}
	// YYYY-MM-DD compares lexically
	if info.EndDate < info.StartDate {
		return info, invalidf("tournament %v ends (%v) before it starts (%v)",
			info.Name, info.EndDate, info.StartDate)
	}
	if info.TimeControl < Classic || info.TimeControl > Blitz {
		return info, invalidf("tournament %v has unknown time control %d",
			info.Name, info.TimeControl)
	}
	if info.Variant == "" {
		info.Variant = VariantBasic
	}
	switch info.Variant {
	case VariantSwiss:
		if info.NumRounds <= 0 {
			return info, invalidf("swiss tournament %v needs a positive number of rounds (got %d)",
				info.Name, info.NumRounds)
		}
	case VariantBasic, VariantElimination:
		info.NumRounds = 0
	default:
		return info, invalidf("tournament %v has unknown type %q", info.Name,
			info.Variant)
	}

	return info, nil
}

// Tournament owns a roster and the round history. All mutation goes through
// the validating methods below.
type Tournament struct {
	info    Info
	players []Player
	rounds  []Round
}

func NewTournament(info Info) (*Tournament, error) {
	info, err := info.validate()
	if err != nil {
		return nil, err
	}

	return &Tournament{info: info}, nil
}

func (t *Tournament) Info() Info {
	return t.info
}

func (t *Tournament) Name() string {
	return t.info.Name
}

// UpdateInfo replaces the descriptive fields. The format cannot change once
// pairings exist.
func (t *Tournament) UpdateInfo(info Info) error {
	info, err := info.validate()
	if err != nil {
		return err
	}
	if len(t.rounds) > 0 {
		if info.Variant != t.info.Variant || info.TimeControl != t.info.TimeControl {
			return invalidf("tournament %v format cannot change after round 1",
				t.info.Name)
		}
		if info.Variant == VariantSwiss && info.NumRounds < len(t.rounds) {
			return invalidf("tournament %v already played %d rounds",
				t.info.Name, len(t.rounds))
		}
	}
	t.info = info

	return nil
}

func (t *Tournament) Players() []Player {
	return append([]Player(nil), t.players...)
}

func (t *Tournament) Player(name string) (Player, error) {
	name = strings.TrimSpace(name)
	for _, p := range t.players {
		if p.Name == name {
			return p, nil
		}
	}

	return Player{}, notFoundf("player %v is not in tournament %v", name,
		t.info.Name)
}

// PlayersByRating returns the roster ranked by the given rating.
func (t *Tournament) PlayersByRating(tc TimeControl) []Player {
	return sortByRating(t.players, tc)
}

func (t *Tournament) AddPlayer(p Player) error {
	valid, err := NewPlayer(p.Name, p.Birthdate, string(p.Gender), p.Rating)
	if err != nil {
		return err
	}
	if len(t.rounds) > 0 {
		return invalidf("cannot add %v: tournament %v already started",
			valid.Name, t.info.Name)
	}
	if _, err := t.Player(valid.Name); err == nil {
		return invalidf("player %v is already in tournament %v", valid.Name,
			t.info.Name)
	}
	t.players = append(t.players, valid)

	return nil
}

func (t *Tournament) RemovePlayer(name string) error {
	name = strings.TrimSpace(name)
	if len(t.rounds) > 0 {
		return invalidf("cannot remove %v: tournament %v already started",
			name, t.info.Name)
	}
	for idx, p := range t.players {
		if p.Name == name {
			t.players = append(t.players[:idx:idx], t.players[idx+1:]...)
			return nil
		}
	}

	return notFoundf("player %v is not in tournament %v", name, t.info.Name)
}

func (t *Tournament) Rounds() []Round {
	out := make([]Round, len(t.rounds))
	for idx, r := range t.rounds {
		out[idx] = r.clone()
	}

	return out
}

func (t *Tournament) Round(number int) (Round, error) {
	if number < 1 || number > len(t.rounds) {
		return Round{}, notFoundf("tournament %v has no round %d",
			t.info.Name, number)
	}

	return t.rounds[number-1].clone(), nil
}

// NextRoundNumber is the number the next appended round must carry.
func (t *Tournament) NextRoundNumber() int {
	return len(t.rounds) + 1
}

// TotalRounds is the planned length of the tournament: the configured count
// for swiss, ceil(log2(n)) for elimination and 0 for basic tournaments.
func (t *Tournament) TotalRounds() int {
	switch t.info.Variant {
	case VariantSwiss:
		return t.info.NumRounds
	case VariantElimination:
		info, err := NewBracketInfo(len(t.players))
		if err != nil {
			return 0
		}
		return info.TotalRounds
	}

	return 0
}

// Ready is the gate for appending a round: nil once every non-bye match of
// the latest round carries a result.
func (t *Tournament) Ready() error {
	if len(t.rounds) == 0 {
		return nil
	}
	last := t.rounds[len(t.rounds)-1]
	if idx := last.firstUnresolved(); idx >= 0 {
		return &NotReadyError{
			Round:  last.Number,
			Reason: fmt.Sprintf("table %d has no result", idx+1),
		}
	}

	return nil
}

// IsFinished reports whether every planned round was played to completion.
func (t *Tournament) IsFinished() bool {
	total := t.TotalRounds()
	return total > 0 && len(t.rounds) >= total && t.Ready() == nil
}

// AddRound appends r to the history once the tournament is ready for it.
func (t *Tournament) AddRound(r Round) error {
	if r.Number != t.NextRoundNumber() {
		return invalidf("tournament %v expects round %d, got round %d",
			t.info.Name, t.NextRoundNumber(), r.Number)
	}
	if r.Subround < 0 {
		return invalidf("subround must be non-negative (got %d)", r.Subround)
	}
	if total := t.TotalRounds(); t.info.Variant != VariantBasic &&
		r.Number > total {
		return invalidf("tournament %v has only %d rounds", t.info.Name, total)
	}
	if err := t.Ready(); err != nil {
		return err
	}
	if len(r.Matches) == 0 {
		return invalidf("round %d has no matches", r.Number)
	}

	seen := make(map[string]bool)
	matches := make([]Match, 0, len(r.Matches))
	for idx, m := range r.Matches {
		valid, err := NewMatch(m.Pairing, m.Result)
		if err != nil {
			return fmt.Errorf("round %d table %d: %w", r.Number, idx+1, err)
		}
		names := []string{m.White.Name}
		if !m.IsBye() {
			names = append(names, m.Black.Name)
		}
		for _, name := range names {
			if _, err := t.Player(name); err != nil {
				return fmt.Errorf("round %d table %d: %w", r.Number, idx+1, err)
			}
			if seen[name] {
				return invalidf("round %d pairs %v more than once", r.Number,
					name)
			}
			seen[name] = true
		}
		matches = append(matches, valid)
	}

	added := r.clone()
	added.Matches = matches
	t.rounds = append(t.rounds, added)

	return nil
}

// SetResult records the result of one table of the latest round. Earlier
// rounds are closed since later pairings already depend on them.
func (t *Tournament) SetResult(roundNumber int, matchIndex int,
	result Result) error {

	if roundNumber < 1 || roundNumber > len(t.rounds) {
		return notFoundf("tournament %v has no round %d", t.info.Name,
			roundNumber)
	}
	if roundNumber != len(t.rounds) {
		return invalidf("round %d is closed; only round %d accepts results",
			roundNumber, len(t.rounds))
	}
	r := &t.rounds[roundNumber-1]
	if matchIndex < 0 || matchIndex >= len(r.Matches) {
		return notFoundf("round %d has no table %d", roundNumber, matchIndex+1)
	}
	m, err := NewMatch(r.Matches[matchIndex].Pairing, result)
	if err != nil {
		return err
	}
	r.Matches[matchIndex] = m

	return nil
}
