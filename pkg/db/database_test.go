package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, err := Open(context.Background(), "mysql://root@localhost/shop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestOpen_SQLiteMemory(t *testing.T) {
	dsn := "sqlite:file:" + uuid.NewString() + "?mode=memory"
	gdb, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, gdb.Exec("CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)").Error)
	require.NoError(t, gdb.Exec("INSERT INTO things (name) VALUES (?)", "mug").Error)

	var n int64
	require.NoError(t, gdb.Table("things").Count(&n).Error)
	assert.EqualValues(t, 1, n)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
