// Package testutil connects integration tests to the Postgres and Redis
// instances described by config.LoadTestConfig.
package testutil

import (
	"context"
	"fmt"
	"log"

	"github.com/7Pranavv/Evenoo/config"
	"github.com/7Pranavv/Evenoo/internal/database"
	"github.com/7Pranavv/Evenoo/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const truncateAll = `TRUNCATE vendor_bookings, vendor_inventory, vendors, notifications,
	wallet_transactions, tickets, registrations, events, users RESTART IDENTITY CASCADE`

// Setup connects to the test stores and applies the schema.
func Setup() (*pgxpool.Pool, *redis.Client, func(), error) {
	cfg := config.LoadTestConfig()

	testDB, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize test database: %v", err)
	}
	if err := database.MigrateUp(context.Background(), testDB, migrations.FS); err != nil {
		testDB.Close()
		return nil, nil, nil, fmt.Errorf("failed to migrate test database: %v", err)
	}
	log.Println("Test database connected successfully")

	testRdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		testDB.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize redis: %v", err)
	}
	log.Println("Test redis connected successfully")

	cleanup := func() {
		testDB.Close()
		log.Println("Test database closed")

		testRdb.Close()
		log.Println("Test redis closed")
	}

	return testDB, testRdb, cleanup, nil
}

// Reset empties every table and the test Redis database.
func Reset(ctx context.Context, db *pgxpool.Pool, rdb *redis.Client) error {
	if _, err := db.Exec(ctx, truncateAll); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	if err := rdb.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("flush redis: %w", err)
	}
	return nil
}
