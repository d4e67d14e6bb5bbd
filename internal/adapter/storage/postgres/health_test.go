package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		wantErr string
	}{
		{
			name: "up to date",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectPing()
				m.ExpectQuery(regexp.QuoteMeta(schemaVersionQuery)).
					WillReturnRows(pgxmock.NewRows([]string{"max"}).AddRow(int64(2)))
			},
		},
		{
			name: "unreachable",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectPing().WillReturnError(errors.New("connection refused"))
			},
			wantErr: "ping: connection refused",
		},
		{
			name: "schema behind",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectPing()
				m.ExpectQuery(regexp.QuoteMeta(schemaVersionQuery)).
					WillReturnRows(pgxmock.NewRows([]string{"max"}).AddRow(int64(1)))
			},
			wantErr: "schema version 1 is behind 2",
		},
		{
			name: "goose table missing",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectPing()
				m.ExpectQuery(regexp.QuoteMeta(schemaVersionQuery)).
					WillReturnError(errors.New(`relation "goose_db_version" does not exist`))
			},
			wantErr: "read schema version",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setup(mock)

			hc := NewHealthCheck(mock)
			assert.Equal(t, "postgresql", hc.Name())
			err = hc.Ping(context.Background())
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEmbeddedSchemaVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/00001_init.sql":    {},
		"migrations/00007_indexes.sql": {},
		"migrations/README.md":         {},
		"migrations/notes.sql":         {},
	}
	assert.Equal(t, int64(7), embeddedSchemaVersion(fsys))
	assert.Equal(t, int64(2), embeddedSchemaVersion(migrationsFS))
}

func TestTransactor_BeginsReadCommitted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	mock.ExpectRollback()

	tx, err := NewTransactor(mock).Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
