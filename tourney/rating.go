/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"strings"
)

// TimeControl selects which rating governs seeding and ranking.
type TimeControl int

const (
	Classic TimeControl = iota
	Rapid
	Blitz
)

func (tc TimeControl) String() string {
	switch tc {
	case Classic:
		return "classic"
	case Rapid:
		return "rapid"
	case Blitz:
		return "blitz"
	default:
		return "?"
	}
}

// ParseTimeControl accepts "classic", "rapid" or "blitz" in any case.
func ParseTimeControl(s string) (TimeControl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic":
		return Classic, nil
	case "rapid":
		return Rapid, nil
	case "blitz":
		return Blitz, nil
	}

	return Classic, invalidf("time control %q must be classic, rapid or blitz",
		s)
}

// Rating holds a player's rating for each time control.
type Rating struct {
	Classic int
	Rapid   int
	Blitz   int
}

func NewRating(classic, rapid, blitz int) (Rating, error) {
	if classic < 0 || rapid < 0 || blitz < 0 {
		return Rating{}, invalidf("ratings must be non-negative (got %d/%d/%d)",
			classic, rapid, blitz)
	}

	return Rating{Classic: classic, Rapid: rapid, Blitz: blitz}, nil
}

// For returns the rating used under the given time control.
func (r Rating) For(tc TimeControl) int {
	switch tc {
	case Rapid:
		return r.Rapid
	case Blitz:
		return r.Blitz
	default:
		return r.Classic
	}
}
