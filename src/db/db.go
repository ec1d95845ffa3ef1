package db

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectRetryDelay = 5 * time.Second

// Connect opens a pgx pool and verifies it with a ping. The initial connection
// retries indefinitely on a fixed delay so the server can start before the
// database is reachable.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	for {
		pool, err := pgxpool.New(ctx, url)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Println("INFO: Database connected successfully")
				return pool, nil
			}
			pool.Close()
		}

		log.Printf("ERROR: Database connection failed, retrying in %s: %v", connectRetryDelay, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectRetryDelay):
		}
	}
}
