/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"errors"
	"testing"
)

func TestNewPlayer(t *testing.T) {
	cases := []struct {
		name      string
		pName     string
		birthdate string
		gender    string
		rating    Rating
		wantErr   bool
		wantName  string
	}{
		{
			name:      "valid and trimmed",
			pName:     "  Judit Polgar ",
			birthdate: "1976-07-23",
			gender:    "Female",
			rating:    Rating{Classic: 2675, Rapid: 2650, Blitz: 2700},
			wantName:  "Judit Polgar",
		},
		{
			name:      "empty name",
			pName:     "   ",
			birthdate: "1976-07-23",
			gender:    "female",
			wantErr:   true,
		},
		{
			name:      "slash date",
			pName:     "A",
			birthdate: "1976/07/23",
			gender:    "male",
			wantErr:   true,
		},
		{
			name:      "impossible date",
			pName:     "A",
			birthdate: "1976-13-40",
			gender:    "male",
			wantErr:   true,
		},
		{
			name:      "unknown gender",
			pName:     "A",
			birthdate: "1976-07-23",
			gender:    "robot",
			wantErr:   true,
		},
		{
			name:      "negative rating",
			pName:     "A",
			birthdate: "1976-07-23",
			gender:    "other",
			rating:    Rating{Classic: -1},
			wantErr:   true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := NewPlayer(c.pName, c.birthdate, c.gender, c.rating)
			if c.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name != c.wantName {
				t.Errorf("Name = %q; want %q", p.Name, c.wantName)
			}
		})
	}
}

func TestRatingFor(t *testing.T) {
	r, err := NewRating(2000, 1900, 1800)
	if err != nil {
		t.Fatalf("NewRating: %v", err)
	}
	if r.For(Classic) != 2000 || r.For(Rapid) != 1900 || r.For(Blitz) != 1800 {
		t.Errorf("unexpected For() values for %+v", r)
	}
}

func TestParseTimeControl(t *testing.T) {
	tc, err := ParseTimeControl(" Blitz ")
	if err != nil || tc != Blitz {
		t.Fatalf("ParseTimeControl(Blitz) = %v, %v", tc, err)
	}
	if _, err := ParseTimeControl("bullet"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bullet, got %v", err)
	}
}

func TestParseResult(t *testing.T) {
	for _, s := range []string{"1-0", "0-1", "0.5-0.5", "", "½-½"} {
		if _, err := ParseResult(s); err != nil {
			t.Errorf("ParseResult(%q): %v", s, err)
		}
	}
	for _, s := range []string{"1-1", "2-0", "draw", "0,5-0,5"} {
		if _, err := ParseResult(s); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseResult(%q) expected ErrInvalidInput, got %v", s, err)
		}
	}
}
