/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"math"
	"strings"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical on-disk date format.
const DateLayout = "2006-01-02"

// ValidateDate requires s to be a real calendar date written as YYYY-MM-DD.
func ValidateDate(s string) error {
	if len(s) != len(DateLayout) || s[4] != '-' || s[7] != '-' {
		return fmt.Errorf("date %q must be in YYYY-MM-DD format", s)
	}
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return fmt.Errorf("date %q is not a valid date: %w", s, err)
	}
	// dateparse tolerates some overflow; make sure it round trips
	if t.Format(DateLayout) != s {
		return fmt.Errorf("date %q is not a valid date", s)
	}

	return nil
}

// NormalizeDate accepts loosely formatted user input ("March 3, 1990",
// "1990/03/03", ...) and rewrites it as YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return "", fmt.Errorf("unable to parse date %q: %w", s, err)
	}

	return t.Format(DateLayout), nil
}

// ScoreToString renders a score the way crosstables do, e.g. 2½.
func ScoreToString(score float64) string {
	whole, frac := math.Modf(score)
	if frac == 0 {
		return fmt.Sprintf("%d", int(whole))
	}
	if whole == 0 {
		return "½"
	}
	return fmt.Sprintf("%d½", int(whole))
}
