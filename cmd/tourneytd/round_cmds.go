/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/mikeb26/chesstourney/tourney"
)

// parseTournamentFlags parses args with a mandatory --tournament plus
// whatever extra flags define registers, then loads the tournament.
func parseTournamentFlags(ctx context.Context, env *cmdEnv, name string,
	args []string, define func(fs *flag.FlagSet)) (*tourney.Tournament, error) {

	fs := newFlagSet(env, name)
	id := fs.String("tournament", "", "Tournament name")
	if define != nil {
		define(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := requireFlag(fs, "tournament", *id); err != nil {
		return nil, err
	}

	return env.store.LoadTournament(ctx, *id)
}

func handlePair(ctx context.Context, env *cmdEnv, args []string) error {
	t, err := parseTournamentFlags(ctx, env, "pair", args, nil)
	if err != nil {
		return err
	}
	t, r, err := env.store.PairNextRound(ctx, t.Name())
	if err != nil {
		return err
	}

	fmt.Fprint(env.out, tourney.BuildPairingsOutput(t, r))
	return nil
}

func handleResult(ctx context.Context, env *cmdEnv, args []string) error {
	var round, table int
	var result string
	t, err := parseTournamentFlags(ctx, env, "result", args,
		func(fs *flag.FlagSet) {
			fs.IntVar(&round, "round", 0, "Round number (defaults to the latest)")
			fs.IntVar(&table, "table", 0, "Table number, starting at 1")
			fs.StringVar(&result, "result", "", "1-0, 0-1 or 0.5-0.5")
		})
	if err != nil {
		return err
	}
	if round == 0 {
		round = len(t.Rounds())
	}
	res, err := tourney.ParseResult(result)
	if err != nil {
		return err
	}
	if res == tourney.ResultNone {
		return fmt.Errorf("--result is required")
	}

	t, err = env.store.SaveMatchResult(ctx, t.Name(), round, table-1, res)
	if err != nil {
		return err
	}
	r, err := t.Round(round)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "Recorded %v on table %d of round %d\n", res, table,
		round)
	if r.IsComplete() {
		fmt.Fprintf(env.out, "Round %d is complete\n", round)
	}

	return nil
}

func handlePairings(ctx context.Context, env *cmdEnv, args []string) error {
	var round int
	t, err := parseTournamentFlags(ctx, env, "pairings", args,
		func(fs *flag.FlagSet) {
			fs.IntVar(&round, "round", 0, "Round number (defaults to the latest)")
		})
	if err != nil {
		return err
	}
	if round == 0 {
		round = len(t.Rounds())
	}
	if round == 0 {
		fmt.Fprintf(env.out, "%v has not been paired yet\n", t.Name())
		return nil
	}
	r, err := t.Round(round)
	if err != nil {
		return err
	}

	fmt.Fprint(env.out, tourney.BuildPairingsOutput(t, r))
	return nil
}

func handleStandings(ctx context.Context, env *cmdEnv, args []string) error {
	var round int
	t, err := parseTournamentFlags(ctx, env, "standings", args,
		func(fs *flag.FlagSet) {
			fs.IntVar(&round, "round", 0, "Standings after this round (defaults to all)")
		})
	if err != nil {
		return err
	}
	standings, err := tourney.GetStandings(t, round)
	if err != nil {
		return err
	}

	fmt.Fprint(env.out, tourney.BuildStandingsOutput(t, standings, round))
	return nil
}

func handleStats(ctx context.Context, env *cmdEnv, args []string) error {
	var player string
	t, err := parseTournamentFlags(ctx, env, "stats", args,
		func(fs *flag.FlagSet) {
			fs.StringVar(&player, "player", "", "Player name")
		})
	if err != nil {
		return err
	}
	stats, err := tourney.GetPlayerStatistics(t, player)
	if err != nil {
		return err
	}

	fmt.Fprint(env.out, tourney.BuildPlayerStatsOutput(stats))
	return nil
}

func handleBracket(ctx context.Context, env *cmdEnv, args []string) error {
	t, err := parseTournamentFlags(ctx, env, "bracket", args, nil)
	if err != nil {
		return err
	}
	info, err := t.BracketInfo()
	if err != nil {
		return err
	}

	fmt.Fprint(env.out, tourney.BuildBracketOutput(t, info))
	return nil
}
