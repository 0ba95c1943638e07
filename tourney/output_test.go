/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"strings"
	"testing"
)

func TestBuildPairingsOutput(t *testing.T) {
	tourney := newTestTournament(t, VariantSwiss, 3, 2000, 1900, 1800)
	r := playRound(t, tourney, ResultDraw)

	out := BuildPairingsOutput(tourney, r)
	for _, want := range []string{
		"Test Open - Round 1 Pairings:",
		"1.     P1(2000)  P2(1900)  0.5-0.5",
		"n/a    P3(1800)  BYE(1)    1-0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pairings output missing %q:\n%v", want, out)
		}
	}
}

func TestBuildStandingsOutput(t *testing.T) {
	tourney := newTestTournament(t, VariantSwiss, 3, 2000, 1900, 1800, 1700)
	if out := BuildStandingsOutput(tourney, nil, 0); !strings.Contains(out,
		"has not started") {
		t.Errorf("unexpected output before round 1:\n%v", out)
	}

	playRound(t, tourney, ResultDraw, ResultDraw)
	standings, err := tourney.Standings(0)
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	out := BuildStandingsOutput(tourney, standings, 0)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title, blank, header, 4 players
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%v", len(lines), out)
	}
	if !strings.HasPrefix(lines[3], "1.") {
		t.Errorf("leader line = %q", lines[3])
	}
	for _, l := range lines[4:] {
		if !strings.HasPrefix(l, "  ") {
			t.Errorf("tied player shows a place: %q", l)
		}
		if !strings.Contains(l, "½") {
			t.Errorf("draw score not rendered as ½: %q", l)
		}
	}
}

func TestBuildBracketOutput(t *testing.T) {
	tourney := newTestTournament(t, VariantElimination, 0,
		2000, 1900, 1800, 1700, 1600)
	r := playRound(t, tourney)

	if out := BuildPairingsOutput(tourney, r); !strings.Contains(out,
		"Quarterfinal Pairings") {
		t.Errorf("elimination round not named:\n%v", out)
	}

	info, err := tourney.BracketInfo()
	if err != nil {
		t.Fatalf("BracketInfo: %v", err)
	}
	out := BuildBracketOutput(tourney, info)
	for _, want := range []string{"5 players, size 8, 3 byes",
		"Quarterfinal  in progress", "Final         pending"} {
		if !strings.Contains(out, want) {
			t.Errorf("bracket output missing %q:\n%v", want, out)
		}
	}
}

func TestBuildPlayerStatsOutput(t *testing.T) {
	tourney := playSeries(t, []Result{ResultWhiteWins, ResultDraw},
		1800, 1700, 1900)
	stats, err := PlayerStatistics(tourney, "P1")
	if err != nil {
		t.Fatalf("PlayerStatistics: %v", err)
	}
	out := BuildPlayerStatsOutput(stats)
	for _, want := range []string{"Score: 1½/2 (+1 =1 -0)",
		"Opponents: [1700 1900] (avg 1800)", "Performance: "} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%v", want, out)
		}
	}
}

func TestBuildTournamentListOutput(t *testing.T) {
	if out := BuildTournamentListOutput(nil); out != "No tournaments found\n" {
		t.Errorf("empty list = %q", out)
	}
	tourney := newTestTournament(t, VariantSwiss, 5)
	out := BuildTournamentListOutput([]Info{tourney.Info()})
	if !strings.Contains(out, "Test Open") || !strings.Contains(out, "swiss") {
		t.Errorf("list output:\n%v", out)
	}
}
