/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package blobstore provides small key/value blob backends for tournament
 * data: a local directory, process memory, an Amazon S3 bucket or a
 * PostgreSQL table. Keys are slash separated relative paths such as
 * "tournaments/Spring%20Open/meta.json".
 */
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mikeb26/chesstourney/internal"
)

// ErrNotFound is returned by Get when no blob is stored under the key.
var ErrNotFound = errors.New("blob not found")

// Backend stores opaque blobs by key. Put replaces any existing blob
// atomically; Delete of a missing key is not an error; List returns the keys
// under prefix in lexical order.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid blob key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("invalid blob key %q", key)
		}
	}

	return nil
}

// Open returns the backend selected by cfg.Store.
func Open(ctx context.Context, cfg internal.Config) (Backend, error) {
	switch cfg.Store {
	case internal.StoreFile:
		return NewFileStore(cfg.DataDir)
	case internal.StoreMemory:
		return NewMemoryStore(), nil
	case internal.StoreS3:
		s3Store := NewS3Store(cfg.S3Bucket, cfg.S3Prefix, cfg.S3Gzip)
		if err := s3Store.Init(ctx); err != nil {
			return nil, err
		}
		return s3Store, nil
	case internal.StorePostgres:
		return OpenPostgresStore(ctx, cfg.PgDSN, cfg.PgTable)
	}

	return nil, fmt.Errorf("blobstore.open: unknown store %q", cfg.Store)
}
