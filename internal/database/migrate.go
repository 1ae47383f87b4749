package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/7Pranavv/Evenoo/pkg/logger"

	"go.uber.org/zap"
)

// MigrateUp applies every *.up.sql file of migrations in name order.
// Scripts must be idempotent (CREATE ... IF NOT EXISTS).
func MigrateUp(ctx context.Context, db DBTX, migrations fs.FS) error {
	files, err := fs.Glob(migrations, "*.up.sql")
	if err != nil {
		return fmt.Errorf("read migration files: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := fs.ReadFile(migrations, file)
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", file, err)
		}
		if _, err := db.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		logger.WithComponent("database").Info("migration applied", zap.String("file", file))
	}
	return nil
}
