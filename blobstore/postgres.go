/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore keeps blobs in a single key/value table.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// OpenPostgresStore connects to dsn and creates table if it does not exist.
func OpenPostgresStore(ctx context.Context, dsn string,
	table string) (*PostgresStore, error) {

	if dsn == "" {
		return nil, fmt.Errorf("blobstore.pg.open: connection string must be set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("blobstore.pg.open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("blobstore.pg.open: database not reachable: %w",
			err)
	}

	p := &PostgresStore{db: db, table: pq.QuoteIdentifier(table)}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key TEXT PRIMARY KEY,
		data BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, p.table))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("blobstore.pg.open: create table %v: %w", table,
			err)
	}

	return p, nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	var data []byte
	err := p.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT data FROM %s WHERE key = $1`, p.table),
		key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("blobstore.pg.get: %v: %w", key, err)
	}

	return data, nil
}

func (p *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := p.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (key, data)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		p.table), key, data)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("blobstore.pg.put: %v: %v (%v)", key,
				pqErr.Message, pqErr.Code)
		}
		return fmt.Errorf("blobstore.pg.put: %v: %w", key, err)
	}

	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := p.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, p.table), key)
	if err != nil {
		return fmt.Errorf("blobstore.pg.delete: %v: %w", key, err)
	}

	return nil
}

func (p *PostgresStore) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, fmt.Sprintf(`SELECT key FROM %s
		WHERE left(key, length($1::text)) = $1::text ORDER BY key COLLATE "C"`, p.table), prefix)
	if err != nil {
		return nil, fmt.Errorf("blobstore.pg.list: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("blobstore.pg.list: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("blobstore.pg.list: %w", err)
	}

	return keys, nil
}
