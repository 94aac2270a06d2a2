// Package store is the boundary to the Postgres grid store: the bulk sink
// the simulator flushes into and the read queries the dashboard API serves.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to the store and verifies the connection. A store that is
// unreachable or rejects the credentials fails here, before any generation
// work begins.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to store: %w", err)
	}
	return db, nil
}
