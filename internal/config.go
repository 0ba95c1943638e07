/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StoreKind string

const (
	StoreFile     StoreKind = "file"
	StoreMemory   StoreKind = "memory"
	StoreS3       StoreKind = "s3"
	StorePostgres StoreKind = "postgres"
)

// Config is the runtime configuration shared by the command line tool and
// the discord bot.
type Config struct {
	Store    StoreKind
	DataDir  string
	S3Bucket string
	S3Prefix string
	S3Gzip   bool
	PgDSN    string
	PgTable  string

	// WebCacheMaxAge is how long fetched registration pages are reused.
	WebCacheMaxAge time.Duration

	DiscordToken  string
	DiscordPubKey string
	DiscordAppID  string
	DiscordCmdID  string
	DiscordListen string
}

// LoadConfig reads an optional .env file from the working directory and
// then the environment. Variables already set in the environment win over
// the file.
func LoadConfig() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: ignoring unreadable .env: %v", err)
	}

	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Store:          StoreKind(strings.ToLower(getenv("TOURNEY_STORE"))),
		DataDir:        getenv("TOURNEY_DATA_DIR"),
		S3Bucket:       getenv("TOURNEY_S3_BUCKET"),
		S3Prefix:       getenv("TOURNEY_S3_PREFIX"),
		PgDSN:          getenv("TOURNEY_PG_DSN"),
		PgTable:        getenv("TOURNEY_PG_TABLE"),
		WebCacheMaxAge: 15 * time.Minute,
		DiscordToken:   getenv("DISCORD_TOKEN"),
		DiscordPubKey:  getenv("DISCORD_PUBKEY"),
		DiscordAppID:   getenv("DISCORD_APPID"),
		DiscordCmdID:   getenv("DISCORD_CMDID"),
		DiscordListen:  getenv("DISCORD_LISTEN"),
	}

	if cfg.Store == "" {
		cfg.Store = StoreFile
	}
	switch cfg.Store {
	case StoreFile, StoreMemory, StoreS3, StorePostgres:
	default:
		return cfg, fmt.Errorf("TOURNEY_STORE %q must be file, memory, s3 or postgres",
			cfg.Store)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("could not find user home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, DefaultDataDir)
	}
	if cfg.S3Bucket == "" {
		cfg.S3Bucket = DefaultBucket
	}
	if cfg.PgTable == "" {
		cfg.PgTable = DefaultPgTable
	}
	if cfg.DiscordListen == "" {
		cfg.DiscordListen = ":8080"
	}
	if v := getenv("TOURNEY_S3_GZIP"); v != "" {
		gz, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("TOURNEY_S3_GZIP %q: %w", v, err)
		}
		cfg.S3Gzip = gz
	}
	if v := getenv("TOURNEY_WEBCACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("TOURNEY_WEBCACHE_TTL %q: %w", v, err)
		}
		cfg.WebCacheMaxAge = ttl
	}
	if cfg.Store == StorePostgres && cfg.PgDSN == "" {
		return cfg, fmt.Errorf("TOURNEY_PG_DSN must be set for the postgres store")
	}

	return cfg, nil
}
