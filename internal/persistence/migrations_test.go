package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationNamesAreEmbeddedAndOrdered(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_account_toggle_audit.sql", names[0])
}

func TestRunMigrationsWithoutPoolIsNoop(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestClosersTolerateNil(t *testing.T) {
	var pg *Postgres
	var rd *Redis
	assert.NotPanics(t, func() {
		pg.Close()
		rd.Close()
	})
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	assert.Error(t, rd.Ping(context.Background()))
}
