/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package store persists the player registry and tournaments as JSON blobs.
 * A tournament is three blobs under tournaments/<name>/: meta.json,
 * roster.json and rounds.json. Every mutation rewrites exactly one blob
 * except for creation, deletion and renames.
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/mikeb26/chesstourney/blobstore"
	"github.com/mikeb26/chesstourney/tourney"
	"golang.org/x/sync/errgroup"
)

const (
	tournamentsPrefix = "tournaments/"
	playersPrefix     = "players/"

	metaBlob   = "meta.json"
	rosterBlob = "roster.json"
	roundsBlob = "rounds.json"

	maxConcurrentLoads = 8
)

type Store struct {
	backend blobstore.Backend

	// mu serializes read-modify-write cycles within this process
	mu sync.Mutex
}

func New(backend blobstore.Backend) *Store {
	return &Store{backend: backend}
}

func tournamentKey(id string, blob string) string {
	return tournamentsPrefix + url.PathEscape(id) + "/" + blob
}

func playerKey(name string) string {
	return playersPrefix + url.PathEscape(name) + ".json"
}

func (s *Store) get(ctx context.Context, key string, what string) ([]byte, error) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", tourney.ErrNotFound, what)
	}
	if err != nil {
		return nil, fmt.Errorf("store.get: %v: %w", key, err)
	}

	return data, nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store.put: encode %v: %w", key, err)
	}
	if err := s.backend.Put(ctx, key, data); err != nil {
		return fmt.Errorf("store.put: %w", err)
	}

	return nil
}

func (s *Store) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.backend.Get(ctx, key)
	if errors.Is(err, blobstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store.exists: %v: %w", key, err)
	}

	return true, nil
}

func (s *Store) loadInfo(ctx context.Context, id string) (tourney.Info, error) {
	key := tournamentKey(id, metaBlob)
	data, err := s.get(ctx, key, "tournament "+id)
	if err != nil {
		return tourney.Info{}, err
	}
	var rec metaRecord
	if err := decode(key, data, &rec); err != nil {
		return tourney.Info{}, err
	}

	return recordToInfo(rec)
}

func decodeRoster(key string, data []byte) ([]tourney.Player, error) {
	var recs []playerRecord
	if err := decode(key, data, &recs); err != nil {
		return nil, err
	}
	players := make([]tourney.Player, 0, len(recs))
	for _, rec := range recs {
		p, err := recordToPlayer(rec)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", key, err)
		}
		players = append(players, p)
	}

	return players, nil
}

// LoadRoster returns the players enrolled in tournament id.
func (s *Store) LoadRoster(ctx context.Context, id string) ([]tourney.Player, error) {
	key := tournamentKey(id, rosterBlob)
	data, err := s.get(ctx, key, "tournament "+id)
	if err != nil {
		return nil, err
	}

	return decodeRoster(key, data)
}

// LoadRounds returns the recorded rounds of tournament id.
func (s *Store) LoadRounds(ctx context.Context, id string) ([]tourney.Round, error) {
	t, err := s.LoadTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	return t.Rounds(), nil
}

// LoadTournament reads the three tournament blobs concurrently and replays
// them through the validating tourney API.
func (s *Store) LoadTournament(ctx context.Context,
	id string) (*tourney.Tournament, error) {

	keys := []string{
		tournamentKey(id, metaBlob),
		tournamentKey(id, rosterBlob),
		tournamentKey(id, roundsBlob),
	}
	blobs := make([][]byte, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for idx, key := range keys {
		idx, key := idx, key
		g.Go(func() error {
			data, err := s.get(gctx, key, "tournament "+id)
			if err != nil {
				return err
			}
			blobs[idx] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var meta metaRecord
	if err := decode(keys[0], blobs[0], &meta); err != nil {
		return nil, err
	}
	info, err := recordToInfo(meta)
	if err != nil {
		return nil, err
	}
	players, err := decodeRoster(keys[1], blobs[1])
	if err != nil {
		return nil, err
	}
	var roundRecs []roundRecord
	if err := decode(keys[2], blobs[2], &roundRecs); err != nil {
		return nil, err
	}

	t, err := tourney.NewTournament(info)
	if err != nil {
		return nil, dataFormatf("%v: %v", keys[0], err)
	}
	byName := make(map[string]tourney.Player, len(players))
	for _, p := range players {
		if err := t.AddPlayer(p); err != nil {
			return nil, dataFormatf("%v: %v", keys[1], err)
		}
		byName[p.Name] = p
	}
	for _, rec := range roundRecs {
		r, err := recordToRound(rec, byName)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", keys[2], err)
		}
		if err := t.AddRound(r); err != nil {
			return nil, dataFormatf("%v: %v", keys[2], err)
		}
	}

	return t, nil
}

func (s *Store) saveRoster(ctx context.Context, t *tourney.Tournament) error {
	recs := make([]playerRecord, 0)
	for _, p := range t.Players() {
		recs = append(recs, playerToRecord(p))
	}
	return s.put(ctx, tournamentKey(t.Name(), rosterBlob), recs)
}

func (s *Store) saveRounds(ctx context.Context, t *tourney.Tournament) error {
	return s.put(ctx, tournamentKey(t.Name(), roundsBlob),
		roundsToRecords(t.Rounds()))
}

// SaveTournament writes every blob of t. meta.json goes last so a tournament
// only becomes visible once its roster and rounds exist.
func (s *Store) SaveTournament(ctx context.Context, t *tourney.Tournament) error {
	if err := s.saveRoster(ctx, t); err != nil {
		return err
	}
	if err := s.saveRounds(ctx, t); err != nil {
		return err
	}

	return s.put(ctx, tournamentKey(t.Name(), metaBlob),
		infoToRecord(t.Info()))
}

// CreateTournament validates info and persists an empty tournament.
// Tournament names are unique.
func (s *Store) CreateTournament(ctx context.Context,
	info tourney.Info) (*tourney.Tournament, error) {

	t, err := tourney.NewTournament(info)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.exists(ctx, tournamentKey(t.Name(), metaBlob))
	if err != nil {
		return nil, err
	}
	if found {
		return nil, fmt.Errorf("%w: tournament %v already exists",
			tourney.ErrInvalidInput, t.Name())
	}
	if err := s.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// DeleteTournament removes every blob of tournament id.
func (s *Store) DeleteTournament(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteTournament(ctx, id)
}

func (s *Store) deleteTournament(ctx context.Context, id string) error {
	metaKey := tournamentKey(id, metaBlob)
	found, err := s.exists(ctx, metaKey)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: tournament %v", tourney.ErrNotFound, id)
	}
	// meta first so a partially deleted tournament is no longer listed
	if err := s.backend.Delete(ctx, metaKey); err != nil {
		return fmt.Errorf("store.delete: %w", err)
	}
	keys, err := s.backend.List(ctx, tournamentsPrefix+url.PathEscape(id)+"/")
	if err != nil {
		return fmt.Errorf("store.delete: %w", err)
	}
	for _, key := range keys {
		if err := s.backend.Delete(ctx, key); err != nil {
			return fmt.Errorf("store.delete: %w", err)
		}
	}

	return nil
}

// ListTournaments returns every tournament ordered by start date and name.
// Tournaments whose metadata cannot be read are logged and skipped.
func (s *Store) ListTournaments(ctx context.Context) ([]tourney.Info, error) {
	keys, err := s.backend.List(ctx, tournamentsPrefix)
	if err != nil {
		return nil, fmt.Errorf("store.list: %w", err)
	}
	var ids []string
	for _, key := range keys {
		rest := strings.TrimPrefix(key, tournamentsPrefix)
		escaped, blob, ok := strings.Cut(rest, "/")
		if !ok || blob != metaBlob {
			continue
		}
		id, err := url.PathUnescape(escaped)
		if err != nil {
			log.Printf("store.list: skipping %v: %v", key, err)
			continue
		}
		ids = append(ids, id)
	}

	infos := make([]*tourney.Info, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for idx, id := range ids {
		idx, id := idx, id
		g.Go(func() error {
			info, err := s.loadInfo(gctx, id)
			if errors.Is(err, tourney.ErrDataFormat) ||
				errors.Is(err, tourney.ErrNotFound) {
				log.Printf("store.list: skipping %v: %v", id, err)
				return nil
			}
			if err != nil {
				return err
			}
			infos[idx] = &info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]tourney.Info, 0, len(infos))
	for _, info := range infos {
		if info != nil {
			out = append(out, *info)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (s *Store) ListByVariant(ctx context.Context,
	variant tourney.Variant) ([]tourney.Info, error) {

	all, err := s.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	var out []tourney.Info
	for _, info := range all {
		if info.Variant == variant {
			out = append(out, info)
		}
	}

	return out, nil
}

// UpdateInfo replaces the metadata of tournament id. A changed name moves
// the tournament to its new key; the new name must be unused.
func (s *Store) UpdateInfo(ctx context.Context, id string,
	info tourney.Info) (*tourney.Tournament, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.LoadTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.UpdateInfo(info); err != nil {
		return nil, err
	}
	if t.Name() == id {
		if err := s.put(ctx, tournamentKey(id, metaBlob),
			infoToRecord(t.Info())); err != nil {
			return nil, err
		}
		return t, nil
	}

	found, err := s.exists(ctx, tournamentKey(t.Name(), metaBlob))
	if err != nil {
		return nil, err
	}
	if found {
		return nil, fmt.Errorf("%w: tournament %v already exists",
			tourney.ErrInvalidInput, t.Name())
	}
	if err := s.SaveTournament(ctx, t); err != nil {
		return nil, err
	}
	if err := s.deleteTournament(ctx, id); err != nil {
		return nil, err
	}

	return t, nil
}

// mutate loads tournament id, applies fn and lets fn's caller decide which
// blob to write back.
func (s *Store) mutate(ctx context.Context, id string,
	fn func(t *tourney.Tournament) error,
	save func(ctx context.Context, t *tourney.Tournament) error) (*tourney.Tournament, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.LoadTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	if err := save(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Enroll adds registered players to the roster of tournament id.
func (s *Store) Enroll(ctx context.Context, id string,
	names ...string) (*tourney.Tournament, error) {

	players := make([]tourney.Player, 0, len(names))
	for _, name := range names {
		p, err := s.GetPlayer(ctx, name)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	return s.mutate(ctx, id, func(t *tourney.Tournament) error {
		for _, p := range players {
			if err := t.AddPlayer(p); err != nil {
				return err
			}
		}
		return nil
	}, s.saveRoster)
}

func (s *Store) Withdraw(ctx context.Context, id string,
	name string) (*tourney.Tournament, error) {

	return s.mutate(ctx, id, func(t *tourney.Tournament) error {
		return t.RemovePlayer(name)
	}, s.saveRoster)
}

// SaveRound appends r to tournament id.
func (s *Store) SaveRound(ctx context.Context, id string,
	r tourney.Round) (*tourney.Tournament, error) {

	return s.mutate(ctx, id, func(t *tourney.Tournament) error {
		return t.AddRound(r)
	}, s.saveRounds)
}

// PairNextRound generates and persists the next round of tournament id.
func (s *Store) PairNextRound(ctx context.Context,
	id string) (*tourney.Tournament, tourney.Round, error) {

	var r tourney.Round
	t, err := s.mutate(ctx, id, func(t *tourney.Tournament) error {
		var err error
		r, err = tourney.PairNextRound(t)
		return err
	}, s.saveRounds)
	if err != nil {
		return nil, tourney.Round{}, err
	}

	return t, r, nil
}

// SaveMatchResult records the result of one table of the latest round.
func (s *Store) SaveMatchResult(ctx context.Context, id string,
	roundNumber int, matchIndex int,
	result tourney.Result) (*tourney.Tournament, error) {

	return s.mutate(ctx, id, func(t *tourney.Tournament) error {
		return t.SetResult(roundNumber, matchIndex, result)
	}, s.saveRounds)
}

// RegisterPlayer adds p to the system wide player registry. Names are
// unique.
func (s *Store) RegisterPlayer(ctx context.Context, p tourney.Player) error {
	valid, err := tourney.NewPlayer(p.Name, p.Birthdate, string(p.Gender),
		p.Rating)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := playerKey(valid.Name)
	found, err := s.exists(ctx, key)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("%w: player %v is already registered",
			tourney.ErrInvalidInput, valid.Name)
	}

	return s.put(ctx, key, playerToRecord(valid))
}

func (s *Store) GetPlayer(ctx context.Context, name string) (tourney.Player, error) {
	name = strings.TrimSpace(name)
	key := playerKey(name)
	data, err := s.get(ctx, key, "player "+name)
	if err != nil {
		return tourney.Player{}, err
	}
	var rec playerRecord
	if err := decode(key, data, &rec); err != nil {
		return tourney.Player{}, err
	}

	return recordToPlayer(rec)
}

// ListPlayers returns the registry ordered by name.
func (s *Store) ListPlayers(ctx context.Context) ([]tourney.Player, error) {
	keys, err := s.backend.List(ctx, playersPrefix)
	if err != nil {
		return nil, fmt.Errorf("store.players: %w", err)
	}

	players := make([]tourney.Player, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for idx, key := range keys {
		idx, key := idx, key
		g.Go(func() error {
			data, err := s.get(gctx, key, key)
			if err != nil {
				return err
			}
			var rec playerRecord
			if err := decode(key, data, &rec); err != nil {
				return err
			}
			players[idx], err = recordToPlayer(rec)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})

	return players, nil
}
