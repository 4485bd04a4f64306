package geocode

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // sqlite driver
)

// cache stores geocode results in a local sqlite file so re-runs skip
// addresses that have already been settled, matched or not.
type cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	address_hash TEXT PRIMARY KEY,
	county       TEXT NOT NULL,
	matched      INTEGER NOT NULL,
	cached_at    TEXT NOT NULL DEFAULT (datetime('now'))
)`

// openCache opens (creating if needed) the sqlite cache at path.
func openCache(path string) (*cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: open cache")
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "geocode: init cache schema")
	}
	return &cache{db: db}, nil
}

// cacheKey returns SHA-256 hex of the normalized address for cache lookup.
func cacheKey(addr AddressInput) string {
	normalized := fmt.Sprintf("%s|%s|%s|%s",
		strings.ToLower(strings.TrimSpace(addr.Street)),
		strings.ToLower(strings.TrimSpace(addr.City)),
		strings.ToLower(strings.TrimSpace(addr.State)),
		strings.TrimSpace(addr.ZipCode),
	)
	h := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", h)
}

// get looks up a cached result. Non-matches are returned too, so the caller
// can skip the network round trip either way.
func (c *cache) get(ctx context.Context, addr AddressInput) (*Result, bool) {
	key := cacheKey(addr)

	var county string
	var matched bool
	row := c.db.QueryRowContext(ctx,
		"SELECT county, matched FROM geocode_cache WHERE address_hash = ?", key)
	if err := row.Scan(&county, &matched); err != nil {
		return nil, false // no row or scan error — treat as a miss
	}

	zap.L().Debug("geocode cache hit",
		zap.String("key", key[:12]),
		zap.Bool("matched", matched),
	)
	return &Result{County: county, Matched: matched}, true
}

// put stores a result (match or non-match). Cache write failures are logged
// and swallowed — the lookup already succeeded.
func (c *cache) put(ctx context.Context, addr AddressInput, result *Result) {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (address_hash, county, matched)
		VALUES (?, ?, ?)
		ON CONFLICT (address_hash) DO UPDATE SET
			county = excluded.county,
			matched = excluded.matched,
			cached_at = datetime('now')`,
		cacheKey(addr), result.County, result.Matched,
	)
	if err != nil {
		zap.L().Warn("geocode: cache write failed", zap.Error(err))
	}
}
