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

// writeTable writes left aligned columns sized to the widest cell.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for idx, h := range header {
		widths[idx] = len([]rune(h))
	}
	for _, row := range rows {
		for idx, cell := range row {
			if l := len([]rune(cell)); l > widths[idx] {
				widths[idx] = l
			}
		}
	}

	writeRow := func(cells []string) {
		var line strings.Builder
		for idx, cell := range cells {
			if idx > 0 {
				line.WriteString("  ")
			}
			line.WriteString(cell)
			line.WriteString(strings.Repeat(" ", widths[idx]-len([]rune(cell))))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}

	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
}

func roundTitle(t *Tournament, number int) string {
	if t.info.Variant == VariantElimination {
		if info, err := t.BracketInfo(); err == nil &&
			number >= 1 && number <= len(info.RoundNames) {
			return info.RoundNames[number-1]
		}
	}
	return fmt.Sprintf("Round %d", number)
}

// BuildPairingsOutput formats one round into an aligned table
func BuildPairingsOutput(t *Tournament, r Round) string {
	var sb strings.Builder
	tc := t.info.TimeControl

	sb.WriteString(fmt.Sprintf("%v - %v Pairings:\n\n", t.info.Name,
		roundTitle(t, r.Number)))
	if len(r.Matches) == 0 {
		sb.WriteString("No pairings\n")
		return sb.String()
	}

	var rows [][]string
	board := 1
	for _, m := range r.Matches {
		w := fmt.Sprintf("%s(%d)", m.White.Name, m.White.Rating.For(tc))
		if m.IsBye() {
			rows = append(rows, []string{"n/a", w, "BYE(1)", "1-0"})
			continue
		}
		bl := fmt.Sprintf("%s(%d)", m.Black.Name, m.Black.Rating.For(tc))
		res := string(m.Result)
		if res == "" {
			res = "-"
		}
		rows = append(rows, []string{fmt.Sprintf("%d.", board), w, bl, res})
		board++
	}
	writeTable(&sb, []string{"Board", "White", "Black", "Result"}, rows)

	return sb.String()
}

// BuildStandingsOutput formats standings; tied players share a place and
// only the first of them shows it.
func BuildStandingsOutput(t *Tournament, standings []Standing,
	asOf int) string {

	var sb strings.Builder
	if asOf == 0 {
		asOf = len(t.rounds)
	}
	if asOf == 0 {
		sb.WriteString(fmt.Sprintf("%v has not started\n", t.info.Name))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("%v - Standings after %v:\n\n", t.info.Name,
		roundTitle(t, asOf)))

	var rows [][]string
	priorScore := -1.0
	for idx, s := range standings {
		place := ""
		if idx == 0 || s.Score != priorScore {
			place = fmt.Sprintf("%d.", idx+1)
			priorScore = s.Score
		}
		rows = append(rows, []string{
			place,
			s.Player.Name,
			fmt.Sprintf("%d", s.Player.Rating.For(t.info.TimeControl)),
			internal.ScoreToString(s.Score),
			fmt.Sprintf("%d", s.Played),
		})
	}
	writeTable(&sb, []string{"Place", "Name", "Rating", "Score", "Games"}, rows)

	return sb.String()
}

// BuildEntriesOutput lists the roster by rating
func BuildEntriesOutput(t *Tournament) string {
	var sb strings.Builder
	tc := t.info.TimeControl

	info := t.info
	sb.WriteString(fmt.Sprintf("%v (%v, %v to %v, %v %v)\n\n", info.Name,
		info.Location, info.StartDate, info.EndDate, info.TimeControl,
		info.Variant))
	players := t.PlayersByRating(tc)
	if len(players) == 0 {
		sb.WriteString("No entries\n")
		return sb.String()
	}

	var rows [][]string
	for _, p := range players {
		r := "unrated"
		if p.Rating.For(tc) != 0 {
			r = fmt.Sprintf("%d", p.Rating.For(tc))
		}
		rows = append(rows, []string{p.Name, r, p.Birthdate, string(p.Gender)})
	}
	writeTable(&sb, []string{"Player", "Rating", "Born", "Gender"}, rows)

	return sb.String()
}

func BuildPlayerStatsOutput(stats PlayerStats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v\n", stats.Player.Name))
	sb.WriteString(fmt.Sprintf("  Score: %v/%d (+%d =%d -%d)\n",
		internal.ScoreToString(stats.Points), stats.GamesPlayed, stats.Wins,
		stats.Draws, stats.Losses))
	if len(stats.OpponentRatings) > 0 {
		sb.WriteString(fmt.Sprintf("  Opponents: %v (avg %.0f)\n",
			stats.OpponentRatings, stats.AverageOpponentRating))
	}
	if stats.GamesPlayed > 0 {
		sb.WriteString(fmt.Sprintf("  Performance: %d\n",
			stats.PerformanceRating))
		sb.WriteString(fmt.Sprintf("  Rating change: %+.1f\n",
			stats.RatingChange))
	}

	return sb.String()
}

func BuildBracketOutput(t *Tournament, info BracketInfo) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v bracket: %d players, size %d, %d byes\n\n",
		t.info.Name, len(t.players), info.BracketSize, info.Byes))
	var rows [][]string
	for idx, name := range info.RoundNames {
		status := "pending"
		if idx < len(t.rounds) {
			if t.rounds[idx].IsComplete() {
				status = "complete"
			} else {
				status = "in progress"
			}
		}
		rows = append(rows, []string{fmt.Sprintf("%d.", idx+1), name, status})
	}
	writeTable(&sb, []string{"#", "Round", "Status"}, rows)

	return sb.String()
}

// BuildTournamentListOutput lists tournaments one per line
func BuildTournamentListOutput(infos []Info) string {
	if len(infos) == 0 {
		return "No tournaments found\n"
	}

	var rows [][]string
	for _, info := range infos {
		rounds := "-"
		if info.Variant == VariantSwiss {
			rounds = fmt.Sprintf("%d", info.NumRounds)
		}
		rows = append(rows, []string{info.Name, string(info.Variant),
			info.TimeControl.String(), rounds, info.StartDate, info.Location})
	}
	var sb strings.Builder
	writeTable(&sb, []string{"Name", "Type", "Time", "Rounds", "Start",
		"Location"}, rows)

	return sb.String()
}
