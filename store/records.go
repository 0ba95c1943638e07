/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"encoding/json"
	"fmt"

	"github.com/mikeb26/chesstourney/tourney"
)

type metaRecord struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	TimeControl string `json:"time_control"`
	Type        string `json:"type"`
	NumRounds   int    `json:"num_rounds,omitempty"`
}

type ratingRecord struct {
	Classic int `json:"classic"`
	Rapid   int `json:"rapid"`
	Blitz   int `json:"blitz"`
}

type playerRecord struct {
	Name      string       `json:"name"`
	Birthdate string       `json:"birthdate"`
	Gender    string       `json:"gender"`
	Rating    ratingRecord `json:"rating"`
}

// matchRecord refers to players by name; a null black is a bye and a null
// result is a game not yet played.
type matchRecord struct {
	White  string  `json:"white"`
	Black  *string `json:"black"`
	Result *string `json:"result"`
}

type roundRecord struct {
	Round    int           `json:"round"`
	Subround int           `json:"subround"`
	Matches  []matchRecord `json:"matches"`
}

func dataFormatf(format string, args ...any) error {
	return fmt.Errorf("%w: %v", tourney.ErrDataFormat, fmt.Sprintf(format, args...))
}

func decode(key string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return dataFormatf("%v: %v", key, err)
	}
	return nil
}

func infoToRecord(info tourney.Info) metaRecord {
	return metaRecord{
		Name:        info.Name,
		Location:    info.Location,
		StartDate:   info.StartDate,
		EndDate:     info.EndDate,
		TimeControl: info.TimeControl.String(),
		Type:        string(info.Variant),
		NumRounds:   info.NumRounds,
	}
}

func recordToInfo(rec metaRecord) (tourney.Info, error) {
	tc, err := tourney.ParseTimeControl(rec.TimeControl)
	if err != nil {
		return tourney.Info{}, dataFormatf("tournament %v: %v", rec.Name, err)
	}
	variant, err := tourney.ParseVariant(rec.Type)
	if err != nil {
		return tourney.Info{}, dataFormatf("tournament %v: %v", rec.Name, err)
	}

	return tourney.Info{
		Name:        rec.Name,
		Location:    rec.Location,
		StartDate:   rec.StartDate,
		EndDate:     rec.EndDate,
		TimeControl: tc,
		Variant:     variant,
		NumRounds:   rec.NumRounds,
	}, nil
}

func playerToRecord(p tourney.Player) playerRecord {
	return playerRecord{
		Name:      p.Name,
		Birthdate: p.Birthdate,
		Gender:    string(p.Gender),
		Rating: ratingRecord{
			Classic: p.Rating.Classic,
			Rapid:   p.Rating.Rapid,
			Blitz:   p.Rating.Blitz,
		},
	}
}

func recordToPlayer(rec playerRecord) (tourney.Player, error) {
	p, err := tourney.NewPlayer(rec.Name, rec.Birthdate, rec.Gender,
		tourney.Rating{
			Classic: rec.Rating.Classic,
			Rapid:   rec.Rating.Rapid,
			Blitz:   rec.Rating.Blitz,
		})
	if err != nil {
		return tourney.Player{}, dataFormatf("player %q: %v", rec.Name, err)
	}

	return p, nil
}

func roundsToRecords(rounds []tourney.Round) []roundRecord {
	out := make([]roundRecord, 0, len(rounds))
	for _, r := range rounds {
		rec := roundRecord{
			Round:    r.Number,
			Subround: r.Subround,
			Matches:  make([]matchRecord, 0, len(r.Matches)),
		}
		for _, m := range r.Matches {
			mr := matchRecord{White: m.White.Name}
			if !m.IsBye() {
				black := m.Black.Name
				mr.Black = &black
			}
			if m.Result != tourney.ResultNone {
				res := string(m.Result)
				mr.Result = &res
			}
			rec.Matches = append(rec.Matches, mr)
		}
		out = append(out, rec)
	}

	return out
}

// recordToRound resolves player names against roster.
func recordToRound(rec roundRecord,
	roster map[string]tourney.Player) (tourney.Round, error) {

	lookup := func(name string) (tourney.Player, error) {
		p, ok := roster[name]
		if !ok {
			return tourney.Player{},
				dataFormatf("round %d pairs %v who is not on the roster",
					rec.Round, name)
		}
		return p, nil
	}

	r := tourney.Round{Number: rec.Round, Subround: rec.Subround}
	for _, mr := range rec.Matches {
		white, err := lookup(mr.White)
		if err != nil {
			return tourney.Round{}, err
		}
		pairing := tourney.Pairing{White: white}
		if mr.Black != nil {
			black, err := lookup(*mr.Black)
			if err != nil {
				return tourney.Round{}, err
			}
			pairing.Black = &black
		}
		result := tourney.ResultNone
		if mr.Result != nil {
			result, err = tourney.ParseResult(*mr.Result)
			if err != nil {
				return tourney.Round{}, dataFormatf("round %d: %v", rec.Round,
					err)
			}
		}
		m, err := tourney.NewMatch(pairing, result)
		if err != nil {
			return tourney.Round{}, dataFormatf("round %d: %v", rec.Round, err)
		}
		r.Matches = append(r.Matches, m)
	}

	return r, nil
}
