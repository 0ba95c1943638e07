/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mikeb26/chesstourney/blobstore"
	"github.com/mikeb26/chesstourney/internal"
	"github.com/mikeb26/chesstourney/store"
	"github.com/mikeb26/chesstourney/tourney"
)

func newTestEnv() (*cmdEnv, *bytes.Buffer) {
	backend := blobstore.NewMemoryStore()
	out := &bytes.Buffer{}
	return &cmdEnv{
		cfg: internal.Config{Store: internal.StoreMemory,
			WebCacheMaxAge: time.Minute},
		backend: backend,
		store:   store.New(backend),
		out:     out,
		errOut:  &bytes.Buffer{},
	}, out
}

// run invokes one command and returns its output.
func run(t *testing.T, env *cmdEnv, out *bytes.Buffer, args ...string) string {
	t.Helper()
	out.Reset()
	handler, ok := commands[args[0]]
	if !ok {
		t.Fatalf("unknown command %v", args[0])
	}
	if err := handler(context.Background(), env, args[1:]); err != nil {
		t.Fatalf("%v: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestEliminationSession(t *testing.T) {
	env, out := newTestEnv()

	run(t, env, out, "create", "--name", "Knockout", "--location", "Club",
		"--start", "May 2, 2026", "--type", "elimination", "--tc", "blitz")
	for idx, r := range []int{2000, 1900, 1800, 1700, 1600} {
		run(t, env, out, "player-add", "--name", fmt.Sprintf("P%d", idx+1),
			"--birthdate", "1990-01-01", "--blitz", fmt.Sprint(r))
	}
	got := run(t, env, out, "enroll", "--tournament", "Knockout",
		"P1", "P2", "P3", "P4", "P5")
	if !strings.Contains(got, "Knockout now has 5 players") {
		t.Errorf("enroll output = %q", got)
	}

	got = run(t, env, out, "bracket", "--tournament", "Knockout")
	if !strings.Contains(got, "size 8, 3 byes") {
		t.Errorf("bracket output = %q", got)
	}

	got = run(t, env, out, "pair", "--tournament", "Knockout")
	if !strings.Contains(got, "P4(1700)  P5(1600)") ||
		strings.Count(got, "BYE(1)") != 3 {
		t.Errorf("round 1 pairings = %q", got)
	}
	got = run(t, env, out, "result", "--tournament", "Knockout",
		"--table", "1", "--result", "0-1")
	if !strings.Contains(got, "Round 1 is complete") {
		t.Errorf("result output = %q", got)
	}

	got = run(t, env, out, "pair", "--tournament", "Knockout")
	if !strings.Contains(got, "Semifinal") || strings.Count(got, "\n") != 5 {
		t.Errorf("round 2 pairings = %q", got)
	}

	got = run(t, env, out, "standings", "--tournament", "Knockout")
	if !strings.Contains(got, "Standings after Semifinal") {
		t.Errorf("standings output = %q", got)
	}
	got = run(t, env, out, "stats", "--tournament", "Knockout", "--player", "P5")
	if !strings.Contains(got, "Score: 1/1") {
		t.Errorf("stats output = %q", got)
	}
}

func TestCommandErrors(t *testing.T) {
	env, out := newTestEnv()
	run(t, env, out, "create", "--name", "Swiss", "--location", "Club",
		"--start", "2026-05-02", "--rounds", "3")

	cases := []struct {
		name string
		args []string
		want error
	}{
		{"unknown tournament", []string{"info", "--tournament", "Nope"}, tourney.ErrNotFound},
		{"duplicate tournament", []string{"create", "--name", "Swiss",
			"--location", "Club", "--start", "2026-05-02", "--rounds", "3"},
			tourney.ErrInvalidInput},
		{"pair too few players", []string{"pair", "--tournament", "Swiss"},
			tourney.ErrInvalidInput},
		{"bad time control", []string{"create", "--name", "X", "--location",
			"Club", "--start", "2026-05-02", "--tc", "bullet"}, tourney.ErrInvalidInput},
		{"bracket of swiss", []string{"bracket", "--tournament", "Swiss"},
			tourney.ErrInvalidInput},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			handler := commands[c.args[0]]
			err := handler(context.Background(), env, c.args[1:])
			if !errors.Is(err, c.want) {
				t.Errorf("expected %v, got %v", c.want, err)
			}
		})
	}

	if err := handleInfo(context.Background(), env, nil); err == nil {
		t.Errorf("info without --tournament should fail")
	}
}

func TestImport(t *testing.T) {
	page := `<table><thead><tr><th>Name</th><th>Born</th><th>Rating</th></tr></thead>
<tbody>
<tr><td>Anna</td><td>2001-02-03</td><td>1500</td></tr>
<tr><td>Ben</td><td>2002-03-04</td><td>1400</td></tr>
</tbody></table>`
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {

		hits.Add(1)
		fmt.Fprint(w, page)
	}))
	defer ts.Close()

	env, out := newTestEnv()
	run(t, env, out, "create", "--name", "Open", "--location", "Club",
		"--start", "2026-05-02", "--rounds", "3")

	got := run(t, env, out, "import", "--tournament", "Open", "--url", ts.URL)
	if !strings.Contains(got, "Open now has 2 players") {
		t.Errorf("import output = %q", got)
	}
	got = run(t, env, out, "import", "--tournament", "Open", "--url", ts.URL)
	if !strings.Contains(got, "No new entries") {
		t.Errorf("second import output = %q", got)
	}
	if hits.Load() != 1 {
		t.Errorf("registration page fetched %d times; want 1", hits.Load())
	}

	path := filepath.Join(t.TempDir(), "entries.html")
	if err := os.WriteFile(path, []byte(strings.ReplaceAll(page, "Ben",
		"Cleo")), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got = run(t, env, out, "import", "--tournament", "Open", "--file", path)
	if !strings.Contains(got, "Enrolled Cleo") {
		t.Errorf("file import output = %q", got)
	}

	got = run(t, env, out, "player-list")
	if !strings.Contains(got, "Anna (2001-02-03, other) classic:1500") {
		t.Errorf("player-list output = %q", got)
	}
}
