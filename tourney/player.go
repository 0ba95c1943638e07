/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"sort"
	"strings"

	"github.com/mikeb26/chesstourney/internal"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return g, nil
	}

	return "", invalidf("gender %q must be male, female or other", s)
}

// Player is a competitor. Players are identified by name within a roster.
type Player struct {
	Name      string
	Birthdate string
	Gender    Gender
	Rating    Rating
}

// NewPlayer validates every field and returns the player with its name
// trimmed.
func NewPlayer(name string, birthdate string, gender string,
	rating Rating) (Player, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, invalidf("player name must be non-empty")
	}
	if err := internal.ValidateDate(birthdate); err != nil {
		return Player{}, invalidf("player %v birthdate: %v", name, err)
	}
	g, err := ParseGender(gender)
	if err != nil {
		return Player{}, err
	}
	if _, err := NewRating(rating.Classic, rating.Rapid,
		rating.Blitz); err != nil {
		return Player{}, err
	}

	return Player{
		Name:      name,
		Birthdate: birthdate,
		Gender:    g,
		Rating:    rating,
	}, nil
}

// sortByRating orders a copy of players by their tc rating, highest first.
// Equal ratings keep their relative roster order.
func sortByRating(players []Player, tc TimeControl) []Player {
	sorted := append([]Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating.For(tc) > sorted[j].Rating.For(tc)
	})

	return sorted
}
