package services

import (
	"path/filepath"
	"testing"

	"github.com/mozhnovpn/portal/internal/db"
)

func testDB(t *testing.T) {
	t.Helper()
	if err := db.Init(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("db init: %v", err)
	}
}
