package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"github.com/pressly/goose/v3"
)

const schemaVersionQuery = `SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version WHERE is_applied`

// HealthCheck reports PostgreSQL as unhealthy when it is unreachable or when
// the applied schema is older than the migrations compiled into the binary.
type HealthCheck struct {
	pool Pool
	want int64
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool, want: embeddedSchemaVersion(migrationsFS)}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := h.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	var got int64
	if err := h.pool.QueryRow(ctx, schemaVersionQuery).Scan(&got); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if got < h.want {
		return fmt.Errorf("schema version %d is behind %d, run migrations", got, h.want)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}

// embeddedSchemaVersion is the highest goose version among the embedded
// migration files.
func embeddedSchemaVersion(fsys fs.FS) int64 {
	names, _ := fs.Glob(fsys, path.Join(MigrationsDir, "*.sql"))
	var max int64
	for _, name := range names {
		v, err := goose.NumericComponent(path.Base(name))
		if err == nil && v > max {
			max = v
		}
	}
	return max
}
