package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection("mysql", "whatever", false)
	assert.Error(t, err)
}

func TestNewConnection_SQLite(t *testing.T) {
	db, err := NewConnection("sqlite", filepath.Join(t.TempDir(), "test.db"), false)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer db.Close()

	require.NoError(t, db.Migrate(&probe{}))
	require.NoError(t, db.Create(&probe{Name: "x"}).Error)

	var got probe
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, "x", got.Name)
}
