/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/chesstourney/tourney"
)

type TdSubCommand string

const (
	TdAboutCmd     TdSubCommand = "about"
	TdHelpCmd      TdSubCommand = "help"
	TdListCmd      TdSubCommand = "list"
	TdPairingsCmd  TdSubCommand = "pairings"
	TdStandingsCmd TdSubCommand = "standings"
	TdPlayerCmd    TdSubCommand = "player"
	TdBracketCmd   TdSubCommand = "bracket"
)

var tdSubCmdHdlrs = map[TdSubCommand]CmdHandler{
	TdAboutCmd:     tdAboutCmdHandler,
	TdHelpCmd:      tdHelpCmdHandler,
	TdListCmd:      tdListCmdHandler,
	TdPairingsCmd:  tdPairingsCmdHandler,
	TdStandingsCmd: tdStandingsCmdHandler,
	TdPlayerCmd:    tdPlayerCmdHandler,
	TdBracketCmd:   tdBracketCmdHandler,
}

func tournamentOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "tournament",
		Description: "Tournament name",
		Required:    required,
	}
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Show the reply to the whole channel",
		Required:    false,
	}
}

func roundOption(desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "round",
		Description: desc,
		Required:    false,
	}
}

func tdCommandDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(TdCmd),
		Description: "Chess tournament director",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdHelpCmd),
				Description: "Show help",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdAboutCmd),
				Description: "About this bot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdListCmd),
				Description: "List tournaments",
				Options: []*discordgo.ApplicationCommandOption{
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdPairingsCmd),
				Description: "Show the pairings of a round",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOption(true),
					roundOption("Round number (defaults to the latest)"),
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdStandingsCmd),
				Description: "Show the standings",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOption(true),
					roundOption("Standings after this round (defaults to all)"),
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdPlayerCmd),
				Description: "Show a player's results in a tournament",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOption(true),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Player name",
						Required:    true,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdBracketCmd),
				Description: "Show an elimination bracket",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOption(true),
					broadcastOption(),
				},
			},
		},
	}
}

func tdCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := tdHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := tdSubCmdHdlrs[TdSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// tdOptions holds the subcommand options any /td handler may read.
type tdOptions struct {
	tournament string
	round      int
	name       string
	broadcast  bool
}

func parseTdOptions(inter *discordgo.Interaction) tdOptions {
	var opts tdOptions
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Name {
		case "tournament":
			opts.tournament = opt.StringValue()
		case "round":
			opts.round = int(opt.IntValue())
		case "name":
			opts.name = opt.StringValue()
		case "broadcast":
			opts.broadcast = opt.BoolValue()
		}
	}

	return opts
}

// setCodeBlock wraps content in a code block for monospace formatting.
func setCodeBlock(resp *discordgo.InteractionResponse, content string,
	broadcast bool) {

	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(content))
	if broadcast {
		resp.Data.Flags = 0
	}
}

// loadTournament fills in resp's content when the tournament cannot be
// loaded.
func loadTournament(ctx context.Context, resp *discordgo.InteractionResponse,
	area string, opts tdOptions) (*tourney.Tournament, bool) {

	if opts.tournament == "" {
		resp.Data.Content = "Please provide a tournament name."
		log.Printf("discordbot.%v: %v", area, resp.Data.Content)
		return nil, false
	}
	t, err := tourneyStore.LoadTournament(ctx, opts.tournament)
	if errors.Is(err, tourney.ErrNotFound) {
		resp.Data.Content = fmt.Sprintf("No tournament named %q.", opts.tournament)
		log.Printf("discordbot.%v: %v", area, resp.Data.Content)
		return nil, false
	} else if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading %v: %v", opts.tournament,
			err)
		log.Printf("discordbot.%v: %v", area, resp.Data.Content)
		return nil, false
	}

	return t, true
}

//go:embed about.txt
var aboutText string

func tdAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func tdHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func tdListCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := parseTdOptions(inter)

	infos, err := tourneyStore.ListTournaments(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error listing tournaments: %v", err)
		log.Printf("discordbot.list: %v", resp.Data.Content)
		return resp
	}
	if len(infos) == 0 {
		resp.Data.Content = "No tournaments found."
		return resp
	}

	setCodeBlock(resp, tourney.BuildTournamentListOutput(infos), opts.broadcast)
	return resp
}

// tdPairingsCmdHandler handles the /td pairings command to display the
// pairings of a round
func tdPairingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := parseTdOptions(inter)
	t, ok := loadTournament(ctx, resp, "pairings", opts)
	if !ok {
		return resp
	}

	round := opts.round
	if round == 0 {
		round = len(t.Rounds())
	}
	if round == 0 {
		resp.Data.Content = fmt.Sprintf("No pairings found for %v.", t.Name())
		log.Printf("discordbot.pairings: %v", resp.Data.Content)
		return resp
	}
	r, err := t.Round(round)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching round %d of %v: %v",
			round, t.Name(), err)
		log.Printf("discordbot.pairings: %v", resp.Data.Content)
		return resp
	}

	setCodeBlock(resp, tourney.BuildPairingsOutput(t, r), opts.broadcast)
	return resp
}

// tdStandingsCmdHandler handles the /td standings command
func tdStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := parseTdOptions(inter)
	t, ok := loadTournament(ctx, resp, "standings", opts)
	if !ok {
		return resp
	}

	standings, err := tourney.GetStandings(t, opts.round)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error computing standings for %v: %v",
			t.Name(), err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}

	setCodeBlock(resp, tourney.BuildStandingsOutput(t, standings, opts.round),
		opts.broadcast)
	return resp
}

// tdPlayerCmdHandler handles the /td player command to display a player's
// results within one tournament
func tdPlayerCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := parseTdOptions(inter)
	if opts.name == "" {
		resp.Data.Content = "Please provide a player name."
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}
	t, ok := loadTournament(ctx, resp, "player", opts)
	if !ok {
		return resp
	}

	stats, err := tourney.GetPlayerStatistics(t, opts.name)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching %v's results in %v: %v",
			opts.name, t.Name(), err)
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}

	setCodeBlock(resp, tourney.BuildPlayerStatsOutput(stats), opts.broadcast)
	return resp
}

func tdBracketCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := parseTdOptions(inter)
	t, ok := loadTournament(ctx, resp, "bracket", opts)
	if !ok {
		return resp
	}

	info, err := t.BracketInfo()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching the bracket of %v: %v",
			t.Name(), err)
		log.Printf("discordbot.bracket: %v", resp.Data.Content)
		return resp
	}

	setCodeBlock(resp, tourney.BuildBracketOutput(t, info), opts.broadcast)
	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
