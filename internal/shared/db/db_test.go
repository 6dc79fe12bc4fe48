package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&widget{}))
	return gdb
}

func TestRunInTransaction_CommitAndRollback(t *testing.T) {
	gdb := setupDB(t)
	tm := NewTransactionManager(gdb)
	ctx := context.Background()

	err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		return GetTxFromContext(txCtx, gdb).Create(&widget{Name: "kept"}).Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := GetTxFromContext(txCtx, gdb).Create(&widget{Name: "dropped"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var names []string
	require.NoError(t, gdb.Model(&widget{}).Pluck("name", &names).Error)
	assert.Equal(t, []string{"kept"}, names)
}

func TestGetTxFromContext_WithoutTransaction(t *testing.T) {
	gdb := setupDB(t)
	got := GetTxFromContext(context.Background(), gdb)
	assert.NotNil(t, got)
	assert.NoError(t, got.Create(&widget{Name: "plain"}).Error)
}

func TestPaginateAndOrderBy(t *testing.T) {
	gdb := setupDB(t)
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, gdb.Create(&widget{Name: n}).Error)
	}

	var page []widget
	allowed := map[string]bool{"name": true}
	require.NoError(t, gdb.Scopes(OrderBy("name", "asc", allowed, "id desc"), Paginate(2, 2)).Find(&page).Error)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Name)
	assert.Equal(t, "d", page[1].Name)

	var fallback []widget
	require.NoError(t, gdb.Scopes(OrderBy("name; drop table widgets", "asc", allowed, "id desc"), Paginate(0, 0)).Find(&fallback).Error)
	require.Len(t, fallback, 5)
	assert.Equal(t, "e", fallback[0].Name)
}
