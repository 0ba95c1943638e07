/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/chesstourney/blobstore"
	"github.com/mikeb26/chesstourney/store"
	"github.com/mikeb26/chesstourney/tourney"
)

// setupTestStore seeds a memory store with a 4 player swiss whose first
// round has been played.
func setupTestStore(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	backend = blobstore.NewMemoryStore()
	tourneyStore = store.New(backend)

	var names []string
	for idx, r := range []int{2000, 1900, 1800, 1700} {
		rating, err := tourney.NewRating(r, r, r)
		if err != nil {
			t.Fatalf("NewRating: %v", err)
		}
		name := fmt.Sprintf("P%d", idx+1)
		p, err := tourney.NewPlayer(name, "1990-01-01", "other", rating)
		if err != nil {
			t.Fatalf("NewPlayer: %v", err)
		}
		if err := tourneyStore.RegisterPlayer(ctx, p); err != nil {
			t.Fatalf("RegisterPlayer: %v", err)
		}
		names = append(names, name)
	}

	info := tourney.Info{
		Name:        "Spring Swiss",
		Location:    "Club",
		StartDate:   "2026-04-04",
		EndDate:     "2026-04-04",
		TimeControl: tourney.Classic,
		Variant:     tourney.VariantSwiss,
		NumRounds:   3,
	}
	if _, err := tourneyStore.CreateTournament(ctx, info); err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}
	if _, err := tourneyStore.Enroll(ctx, info.Name, names...); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if _, _, err := tourneyStore.PairNextRound(ctx, info.Name); err != nil {
		t.Fatalf("PairNextRound: %v", err)
	}
	for idx := 0; idx < 2; idx++ {
		if _, err := tourneyStore.SaveMatchResult(ctx, info.Name, 1, idx,
			tourney.ResultWhiteWins); err != nil {
			t.Fatalf("SaveMatchResult: %v", err)
		}
	}
}

func newTdInteraction(sub string,
	opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(TdCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    sub,
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func TestTdSubCommands(t *testing.T) {
	setupTestStore(t)
	ctx := context.Background()
	tournament := stringOpt("tournament", "Spring Swiss")

	tests := []struct {
		name  string
		inter *discordgo.Interaction
		want  []string
	}{
		{"list", newTdInteraction("list"), []string{"Spring Swiss"}},
		{"pairings latest", newTdInteraction("pairings", tournament),
			[]string{"```", "P1(2000)", "1-0"}},
		{"pairings round 1", newTdInteraction("pairings", tournament,
			&discordgo.ApplicationCommandInteractionDataOption{
				Name:  "round",
				Type:  discordgo.ApplicationCommandOptionInteger,
				Value: 1.0,
			}), []string{"P4(1700)"}},
		{"pairings bad round", newTdInteraction("pairings", tournament,
			&discordgo.ApplicationCommandInteractionDataOption{
				Name:  "round",
				Type:  discordgo.ApplicationCommandOptionInteger,
				Value: 7.0,
			}), []string{"Error fetching round 7"}},
		{"standings", newTdInteraction("standings", tournament),
			[]string{"Spring Swiss - Standings after Round 1"}},
		{"player", newTdInteraction("player", tournament,
			stringOpt("name", "P1")), []string{"Score: 1/1"}},
		{"player missing name", newTdInteraction("player", tournament),
			[]string{"Please provide a player name."}},
		{"player unknown", newTdInteraction("player", tournament,
			stringOpt("name", "Nobody")), []string{"Error fetching Nobody's results"}},
		{"bracket of swiss", newTdInteraction("bracket", tournament),
			[]string{"Error fetching the bracket"}},
		{"unknown tournament", newTdInteraction("standings",
			stringOpt("tournament", "Nope")), []string{`No tournament named "Nope".`}},
		{"missing tournament", newTdInteraction("pairings"),
			[]string{"Please provide a tournament name."}},
		{"help", newTdInteraction("help"), []string{"/td pairings"}},
		{"about", newTdInteraction("about"), []string{"tourneytd"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := tdCmdHandler(ctx, tc.inter)
			if resp == nil || resp.Data == nil {
				t.Fatal("Expected non-nil response data")
			}
			if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
				t.Errorf("Expected response type %v, got %v",
					discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
			}
			if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
				t.Errorf("Expected an ephemeral reply, got flags %v", resp.Data.Flags)
			}
			for _, w := range tc.want {
				if !strings.Contains(resp.Data.Content, w) {
					t.Errorf("Expected content to contain %q, got %q", w,
						resp.Data.Content)
				}
			}
		})
	}
}

func TestTdBroadcast(t *testing.T) {
	setupTestStore(t)

	inter := newTdInteraction("standings", stringOpt("tournament", "Spring Swiss"),
		&discordgo.ApplicationCommandInteractionDataOption{
			Name:  "broadcast",
			Type:  discordgo.ApplicationCommandOptionBoolean,
			Value: true,
		})
	resp := tdCmdHandler(context.Background(), inter)
	if resp.Data.Flags != 0 {
		t.Errorf("Expected a broadcast reply, got flags %v", resp.Data.Flags)
	}
}

func TestTruncateContent(t *testing.T) {
	short := "hello"
	if got := truncateContent(short); got != short {
		t.Errorf("truncateContent(%q) = %q", short, got)
	}
	long := strings.Repeat("½", 3000)
	got := truncateContent(long)
	if n := len([]rune(got)); n != 1991 {
		t.Errorf("truncated length = %d runes; want 1991", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated content should end with ...")
	}
}

func TestInteractionHandler(t *testing.T) {
	setupTestStore(t)
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	botPubKey = pub

	send := func(body string, sign bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/DiscordBot/Interaction",
			strings.NewReader(body))
		if sign {
			ts := "1767225600"
			sig := ed25519.Sign(priv, []byte(ts+body))
			req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
			req.Header.Set("X-Signature-Timestamp", ts)
		}
		rec := httptest.NewRecorder()
		interactionHandler(rec, req)
		return rec
	}

	rec := send(`{"type":1}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unsigned request: status %v; want %v", rec.Code,
			http.StatusUnauthorized)
	}

	rec = send(`{"type":1}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("ping: status %v; want %v", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"type":1`) {
		t.Errorf("ping: expected a pong, got %v", rec.Body.String())
	}

	rec = send(`{"type":2,"data":{"name":"td","options":[{"name":"list","type":1}]}}`,
		true)
	if rec.Code != http.StatusOK {
		t.Fatalf("command: status %v; want %v", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Spring Swiss") {
		t.Errorf("command: expected the tournament list, got %v",
			rec.Body.String())
	}
}

func TestCmdHash(t *testing.T) {
	setupTestStore(t)
	ctx := context.Background()

	hash, err := cmdHash(tdCommandDefinition())
	if err != nil {
		t.Fatalf("cmdHash: %v", err)
	}
	if !shouldUpdateCmdRegistration(ctx, hash) {
		t.Errorf("expected an update before any registration was recorded")
	}
	if err := backend.Put(ctx, cmdHashKey, []byte(hash)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if shouldUpdateCmdRegistration(ctx, hash) {
		t.Errorf("expected no update for an unchanged definition")
	}
}
