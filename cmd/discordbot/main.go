/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/chesstourney/blobstore"
	"github.com/mikeb26/chesstourney/internal"
	"github.com/mikeb26/chesstourney/store"
)

// cmdHashKey holds the hash of the last registered command definition so
// registration only happens when the definition changes.
const cmdHashKey = "discord/td-command.sha256"

var (
	cfg          internal.Config
	backend      blobstore.Backend
	tourneyStore *store.Store
	botPubKey    ed25519.PublicKey
	client       *discordgo.Session
)

type TopLevelCommand string

const (
	TdCmd TopLevelCommand = "td"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	TdCmd: tdCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

func setup(ctx context.Context) error {
	var err error
	cfg, err = internal.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.DiscordToken == "" || cfg.DiscordPubKey == "" || cfg.DiscordAppID == "" {
		return fmt.Errorf("DISCORD_TOKEN, DISCORD_PUBKEY and DISCORD_APPID must be set")
	}

	pubKeyBytes, err := hex.DecodeString(strings.TrimSpace(cfg.DiscordPubKey))
	if err != nil {
		return fmt.Errorf("failed to parse public key: %w", err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	client, err = discordgo.New("Bot " + strings.TrimSpace(cfg.DiscordToken))
	if err != nil {
		return fmt.Errorf("failed to initialize discord client: %w", err)
	}

	backend, err = blobstore.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %v store: %w", cfg.Store, err)
	}
	tourneyStore = store.New(backend)

	return nil
}

func cmdHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)

	return hex.EncodeToString(hash[:]), nil
}

func shouldUpdateCmdRegistration(ctx context.Context, hexString string) bool {
	last, err := backend.Get(ctx, cmdHashKey)
	if err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		log.Printf("discordbot.reg: unable to read last registration: %v", err)
	}

	return strings.TrimSpace(string(last)) != hexString
}

func registerSlashCommands(ctx context.Context) {
	tdCmd := tdCommandDefinition()
	hexString, err := cmdHash(tdCmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to marshal cmd: %v", err)
		return
	}

	if cfg.DiscordCmdID == "" {
		cmd, err := client.ApplicationCommandCreate(cfg.DiscordAppID, "", tdCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", tdCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); set DISCORD_CMDID",
			cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(ctx, hexString) {
		cmd, err := client.ApplicationCommandEdit(cfg.DiscordAppID, "",
			cfg.DiscordCmdID, tdCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", tdCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	} else {
		return
	}

	if err := backend.Put(ctx, cmdHashKey, []byte(hexString)); err != nil {
		log.Printf("discordbot.reg: unable to record registration: %v", err)
	}
}

func main() {
	ctx := context.Background()
	if err := setup(ctx); err != nil {
		log.Fatalf("discordbot.init: %v", err)
	}

	go registerSlashCommands(ctx)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname,
		cfg.DiscordListen)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(cfg.DiscordListen, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
