/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"strconv"
	"strings"
)

// Result is a game outcome in "W-B" notation; the zero value means the game
// has no result yet.
type Result string

const (
	ResultNone      Result = ""
	ResultWhiteWins Result = "1-0"
	ResultBlackWins Result = "0-1"
	ResultDraw      Result = "0.5-0.5"
)

// ParseResult accepts the three literal results, the empty string for an
// unset result, and "½-½" as an alias of a draw.
func ParseResult(s string) (Result, error) {
	s = strings.TrimSpace(s)
	if s == "½-½" {
		s = string(ResultDraw)
	}
	switch r := Result(s); r {
	case ResultNone, ResultWhiteWins, ResultBlackWins, ResultDraw:
		return r, nil
	}

	return ResultNone, invalidf("result %q must be 1-0, 0-1 or 0.5-0.5", s)
}

// Points returns the white and black score encoded in the result.
func (r Result) Points() (white float64, black float64, ok bool) {
	if r == ResultNone {
		return 0, 0, false
	}
	parts := strings.SplitN(string(r), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(parts[0], 64)
	b, errB := strconv.ParseFloat(parts[1], 64)
	if errW != nil || errB != nil {
		return 0, 0, false
	}

	return w, b, true
}

// Pairing is one table produced by a pairing engine. A nil Black is a bye.
type Pairing struct {
	White Player
	Black *Player
}

func (p Pairing) IsBye() bool {
	return p.Black == nil
}

// Match is a pairing together with its recorded result.
type Match struct {
	Pairing
	Result Result
}

// NewMatch validates the result against the pairing.
func NewMatch(p Pairing, result Result) (Match, error) {
	if _, err := ParseResult(string(result)); err != nil {
		return Match{}, err
	}
	if p.IsBye() && result != ResultNone && result != ResultWhiteWins {
		return Match{}, invalidf("bye for %v can only be recorded as 1-0",
			p.White.Name)
	}
	if !p.IsBye() && p.White.Name == p.Black.Name {
		return Match{}, invalidf("%v cannot play themselves", p.White.Name)
	}

	return Match{Pairing: p, Result: result}, nil
}

// IsResolved reports whether the match needs no further input: byes always
// resolve, games resolve once a result is set.
func (m Match) IsResolved() bool {
	return m.IsBye() || m.Result != ResultNone
}

// Involves reports whether the named player sits at this table.
func (m Match) Involves(name string) bool {
	return m.White.Name == name || (!m.IsBye() && m.Black.Name == name)
}

// Winner returns the player advancing from this match. Byes advance the bye
// holder; otherwise the side with the higher score wins. ok is false for
// unresolved and drawn games.
func (m Match) Winner() (Player, bool) {
	if m.IsBye() {
		return m.White, true
	}
	w, b, ok := m.Result.Points()
	if !ok || w == b {
		return Player{}, false
	}
	if w > b {
		return m.White, true
	}
	return *m.Black, true
}
