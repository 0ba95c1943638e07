/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mikeb26/chesstourney/blobstore"
	"github.com/mikeb26/chesstourney/internal"
	"github.com/mikeb26/chesstourney/store"
)

//go:embed help.txt
var helpText string

// cmdEnv is what every command handler runs against.
type cmdEnv struct {
	cfg     internal.Config
	backend blobstore.Backend
	store   *store.Store
	out     io.Writer
	errOut  io.Writer
}

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, env *cmdEnv, args []string) error

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":        handleHelp,
	"player-add":  handlePlayerAdd,
	"player-list": handlePlayerList,
	"create":      handleCreate,
	"list":        handleList,
	"info":        handleInfo,
	"update":      handleUpdate,
	"delete":      handleDelete,
	"enroll":      handleEnroll,
	"withdraw":    handleWithdraw,
	"import":      handleImport,
	"pair":        handlePair,
	"result":      handleResult,
	"pairings":    handlePairings,
	"standings":   handleStandings,
	"stats":       handleStats,
	"bracket":     handleBracket,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage(os.Stdout)
		os.Exit(1)
	}
	cmd := os.Args[1]
	handler, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage(os.Stdout)
		os.Exit(1)
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatalf("tourneytd: %v", err)
	}
	backend, err := blobstore.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("tourneytd: unable to open %v store: %v", cfg.Store, err)
	}
	env := &cmdEnv{
		cfg:     cfg,
		backend: backend,
		store:   store.New(backend),
		out:     os.Stdout,
		errOut:  os.Stderr,
	}

	err = handler(ctx, env, os.Args[2:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("tourneytd.%v: %v", cmd, err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "%v", helpText)
}

func handleHelp(ctx context.Context, env *cmdEnv, args []string) error {
	usage(env.out)
	return nil
}

func newFlagSet(env *cmdEnv, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.errOut)
	return fs
}

// requireFlag reports a missing mandatory flag the way flag.Parse reports
// malformed ones.
func requireFlag(fs *flag.FlagSet, name string, value string) error {
	if value != "" {
		return nil
	}
	fmt.Fprintf(fs.Output(), "Please provide a valid --%v.\n", name)
	fs.Usage()
	return fmt.Errorf("missing --%v", name)
}
