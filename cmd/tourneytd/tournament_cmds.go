/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mikeb26/chesstourney/blobstore"
	"github.com/mikeb26/chesstourney/internal"
	"github.com/mikeb26/chesstourney/tourney"
)

// normalizeDateFlag rewrites loosely formatted dates; empty stays empty.
func normalizeDateFlag(name string, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	d, err := internal.NormalizeDate(value)
	if err != nil {
		return "", fmt.Errorf("--%v: %w", name, err)
	}
	return d, nil
}

func handlePlayerAdd(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "player-add")
	name := fs.String("name", "", "Player name")
	birthdate := fs.String("birthdate", "", "Birthdate")
	gender := fs.String("gender", string(tourney.GenderOther),
		"male, female or other")
	classic := fs.Int("classic", 0, "Classic rating")
	rapid := fs.Int("rapid", 0, "Rapid rating")
	blitz := fs.Int("blitz", 0, "Blitz rating")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "name", *name); err != nil {
		return err
	}
	bd, err := normalizeDateFlag("birthdate", *birthdate)
	if err != nil {
		return err
	}
	rating, err := tourney.NewRating(*classic, *rapid, *blitz)
	if err != nil {
		return err
	}
	p, err := tourney.NewPlayer(*name, bd, *gender, rating)
	if err != nil {
		return err
	}
	if err := env.store.RegisterPlayer(ctx, p); err != nil {
		return err
	}

	fmt.Fprintf(env.out, "Registered %v\n", p.Name)
	return nil
}

func handlePlayerList(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "player-list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	players, err := env.store.ListPlayers(ctx)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		fmt.Fprintln(env.out, "No players registered")
		return nil
	}
	for _, p := range players {
		fmt.Fprintf(env.out, "%v (%v, %v) classic:%d rapid:%d blitz:%d\n",
			p.Name, p.Birthdate, p.Gender, p.Rating.Classic, p.Rating.Rapid,
			p.Rating.Blitz)
	}

	return nil
}

func handleCreate(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "create")
	name := fs.String("name", "", "Tournament name (unique)")
	location := fs.String("location", "", "Where the tournament is held")
	start := fs.String("start", "", "Start date")
	end := fs.String("end", "", "End date (defaults to the start date)")
	tc := fs.String("tc", "classic", "Time control: classic, rapid or blitz")
	variant := fs.String("type", "swiss", "basic, swiss or elimination")
	rounds := fs.Int("rounds", 0, "Number of rounds (swiss only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "name", *name); err != nil {
		return err
	}
	if err := requireFlag(fs, "start", *start); err != nil {
		return err
	}
	if *end == "" {
		*end = *start
	}

	info := tourney.Info{Name: *name, Location: *location, NumRounds: *rounds}
	var err error
	if info.StartDate, err = normalizeDateFlag("start", *start); err != nil {
		return err
	}
	if info.EndDate, err = normalizeDateFlag("end", *end); err != nil {
		return err
	}
	if info.TimeControl, err = tourney.ParseTimeControl(*tc); err != nil {
		return err
	}
	if info.Variant, err = tourney.ParseVariant(*variant); err != nil {
		return err
	}

	t, err := env.store.CreateTournament(ctx, info)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "Created %v tournament %v\n", t.Info().Variant, t.Name())
	return nil
}

func handleList(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "list")
	variant := fs.String("type", "", "Only list tournaments of this type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var infos []tourney.Info
	var err error
	if *variant == "" {
		infos, err = env.store.ListTournaments(ctx)
	} else {
		var v tourney.Variant
		if v, err = tourney.ParseVariant(*variant); err != nil {
			return err
		}
		infos, err = env.store.ListByVariant(ctx, v)
	}
	if err != nil {
		return err
	}

	fmt.Fprint(env.out, tourney.BuildTournamentListOutput(infos))
	return nil
}

func handleInfo(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "info")
	id := fs.String("tournament", "", "Tournament name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "tournament", *id); err != nil {
		return err
	}
	t, err := env.store.LoadTournament(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Fprint(env.out, tourney.BuildEntriesOutput(t))
	return nil
}

func handleUpdate(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "update")
	id := fs.String("tournament", "", "Tournament name")
	name := fs.String("name", "", "New tournament name")
	location := fs.String("location", "", "New location")
	start := fs.String("start", "", "New start date")
	end := fs.String("end", "", "New end date")
	rounds := fs.Int("rounds", 0, "New number of rounds (swiss only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "tournament", *id); err != nil {
		return err
	}
	t, err := env.store.LoadTournament(ctx, *id)
	if err != nil {
		return err
	}

	info := t.Info()
	if *name != "" {
		info.Name = *name
	}
	if *location != "" {
		info.Location = *location
	}
	if *start != "" {
		if info.StartDate, err = normalizeDateFlag("start", *start); err != nil {
			return err
		}
	}
	if *end != "" {
		if info.EndDate, err = normalizeDateFlag("end", *end); err != nil {
			return err
		}
	}
	if *rounds != 0 {
		info.NumRounds = *rounds
	}

	t, err = env.store.UpdateInfo(ctx, *id, info)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "Updated %v\n", t.Name())
	return nil
}

func handleDelete(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "delete")
	id := fs.String("tournament", "", "Tournament name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "tournament", *id); err != nil {
		return err
	}
	if err := env.store.DeleteTournament(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(env.out, "Deleted %v\n", *id)
	return nil
}

func handleEnroll(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "enroll")
	id := fs.String("tournament", "", "Tournament name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "tournament", *id); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("no players named")
	}
	t, err := env.store.Enroll(ctx, *id, fs.Args()...)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "%v now has %d players\n", t.Name(), len(t.Players()))
	return nil
}

func handleWithdraw(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "withdraw")
	id := fs.String("tournament", "", "Tournament name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "tournament", *id); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("name exactly one player to withdraw")
	}
	t, err := env.store.Withdraw(ctx, *id, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "%v now has %d players\n", t.Name(), len(t.Players()))
	return nil
}

// handleImport registers every player of a registration page that is not yet
// in the registry and enrolls everyone not yet on the roster.
func handleImport(ctx context.Context, env *cmdEnv, args []string) error {
	fs := newFlagSet(env, "import")
	id := fs.String("tournament", "", "Tournament name")
	file := fs.String("file", "", "Saved registration page")
	url := fs.String("url", "", "Registration page URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "tournament", *id); err != nil {
		return err
	}
	if (*file == "") == (*url == "") {
		return fmt.Errorf("provide exactly one of --file or --url")
	}

	var players []tourney.Player
	var err error
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		players, err = tourney.ParseEntries(f)
		if err != nil {
			return err
		}
	} else {
		client := internal.NewCachedHttpClient(
			blobstore.AsHTTPCache(ctx, env.backend), env.cfg.WebCacheMaxAge)
		players, err = tourney.FetchEntries(ctx, client, *url)
		if err != nil {
			return err
		}
	}

	roster, err := env.store.LoadRoster(ctx, *id)
	if err != nil {
		return err
	}
	enrolled := make(map[string]bool, len(roster))
	for _, p := range roster {
		enrolled[p.Name] = true
	}

	var names []string
	for _, p := range players {
		if err := env.store.RegisterPlayer(ctx, p); err != nil {
			if !errors.Is(err, tourney.ErrInvalidInput) {
				return err
			}
			log.Printf("tourneytd.import: keeping registered %v: %v", p.Name, err)
		}
		if !enrolled[p.Name] {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		fmt.Fprintln(env.out, "No new entries")
		return nil
	}
	t, err := env.store.Enroll(ctx, *id, names...)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "Enrolled %v\n%v now has %d players\n",
		strings.Join(names, ", "), t.Name(), len(t.Players()))
	return nil
}
