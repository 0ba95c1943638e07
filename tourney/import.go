/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/chesstourney/internal"
)

// entryColumns maps the lower cased header text of a registration table to
// the column it names.
var entryColumns = map[string]string{
	"name":      "name",
	"player":    "name",
	"birthdate": "birthdate",
	"born":      "birthdate",
	"dob":       "birthdate",
	"gender":    "gender",
	"sex":       "gender",
	"classic":   "classic",
	"classical": "classic",
	"standard":  "classic",
	"rapid":     "rapid",
	"blitz":     "blitz",
	"rating":    "rating",
}

// ParseEntries extracts players from the first table on a registration page
// that has a Name column. Ratings may be given per time control or as a
// single Rating column applied to all three. Blank or "unrated" ratings are
// 0.
func ParseEntries(r io.Reader) ([]Player, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, dataFormatf("unable to parse entries page: %v", err)
	}

	var table *goquery.Selection
	var cols map[string]int
	doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		c := entryHeader(s)
		if _, ok := c["name"]; ok {
			table = s
			cols = c
			return false
		}
		return true
	})
	if table == nil {
		return nil, dataFormatf("no entries table with a Name column found")
	}

	var players []Player
	var rowErr error
	table.Find("tbody tr").EachWithBreak(func(idx int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return true
		}
		cell := func(key string) string {
			c, ok := cols[key]
			if !ok || c >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(c).Text())
		}

		p, err := entryToPlayer(cell)
		if err != nil {
			rowErr = fmt.Errorf("entries row %d: %w", idx+1, err)
			return false
		}
		players = append(players, p)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return players, nil
}

func entryHeader(table *goquery.Selection) map[string]int {
	cols := make(map[string]int)
	headers := table.Find("thead th")
	if headers.Length() == 0 {
		headers = table.Find("tr").First().Find("th")
	}
	headers.Each(func(idx int, th *goquery.Selection) {
		key := strings.ToLower(strings.TrimSpace(th.Text()))
		if col, ok := entryColumns[key]; ok {
			if _, dup := cols[col]; !dup {
				cols[col] = idx
			}
		}
	})

	return cols
}

func entryToPlayer(cell func(key string) string) (Player, error) {
	birthdate, err := internal.NormalizeDate(cell("birthdate"))
	if err != nil {
		return Player{}, dataFormatf("%v: %v", cell("name"), err)
	}

	base, err := strRatingToInt(cell("rating"))
	if err != nil {
		return Player{}, dataFormatf("%v: %v", cell("name"), err)
	}
	var ratings [3]int
	for idx, key := range []string{"classic", "rapid", "blitz"} {
		ratings[idx] = base
		if v := cell(key); v != "" {
			ratings[idx], err = strRatingToInt(v)
			if err != nil {
				return Player{}, dataFormatf("%v: %v", cell("name"), err)
			}
		}
	}
	rating, err := NewRating(ratings[0], ratings[1], ratings[2])
	if err != nil {
		return Player{}, err
	}

	gender := cell("gender")
	switch strings.ToLower(gender) {
	case "m":
		gender = string(GenderMale)
	case "f":
		gender = string(GenderFemale)
	case "":
		gender = string(GenderOther)
	}

	return NewPlayer(cell("name"), birthdate, gender, rating)
}

// strRatingToInt handles formats like "1559/24" and "1559P10"
func strRatingToInt(rating string) (int, error) {
	rating = strings.TrimSpace(rating)
	if rating == "" || strings.EqualFold(rating, "unrated") ||
		strings.EqualFold(rating, "unr.") {
		return 0, nil
	}
	if idx := strings.IndexAny(rating, "/P"); idx != -1 {
		rating = rating[:idx]
	}
	r, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil {
		return 0, fmt.Errorf("invalid rating %q", rating)
	}

	return r, nil
}

// FetchEntries downloads a registration page and parses its entries table.
func FetchEntries(ctx context.Context, client *http.Client,
	url string) ([]Player, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch entries (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch entries (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return ParseEntries(resp.Body)
}
