package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rentdesk/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- test"), 0o644))
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add late fee index", "add_late_fee_index"},
		{"Add-Payment-Notes", "add_payment_notes"},
		{"ADD_WAIVER_FLAG", "add_waiver_flag"},
		{"add__rent__periods", "add_rent_periods"},
		{"Add Leases 123", "add_leases_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	t.Run("first migration is version 1", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add payment notes", "Free text on payments")
		require.NoError(t, err)
		assert.Equal(t, uint(1), mf.Version)
		assert.Equal(t, "000001_add_payment_notes.up.sql", filepath.Base(mf.UpPath))
		assert.Equal(t, "000001_add_payment_notes.down.sql", filepath.Base(mf.DownPath))

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "add_payment_notes")
		assert.Contains(t, string(up), "Free text on payments")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "Rollback")
	})

	t.Run("continues after the latest version", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "000001_init.up.sql", "000001_init.down.sql", "000007_late.up.sql", "000007_late.down.sql")

		mf, err := CreateMigration(dir, "next", "")
		require.NoError(t, err)
		assert.Equal(t, uint(8), mf.Version)
		assert.True(t, strings.HasPrefix(filepath.Base(mf.UpPath), "000008_next"))
	})

	t.Run("creates nested directory", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "nested", "migrations")

		_, err := CreateMigration(nested, "test", "")
		require.NoError(t, err)

		info, err := os.Stat(nested)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := CreateMigration(t.TempDir(), "!!!", "")
		assert.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("returns sorted base names", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir,
			"000003_create_payments.up.sql", "000003_create_payments.down.sql",
			"000001_create_leases.up.sql", "000001_create_leases.down.sql",
			"000002_create_rent_periods.up.sql", "000002_create_rent_periods.down.sql",
		)

		got, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_create_leases", "000002_create_rent_periods", "000003_create_payments"}, got)
	})

	t.Run("ignores other files and directories", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "000001_init.up.sql", "000001_init.down.sql", "README.md", ".gitkeep")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0o755))

		got, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init"}, got)
	})

	t.Run("missing directory is empty", func(t *testing.T) {
		got, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestEmbeddedMigrations(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrations.FS, down)
		assert.NoError(t, err, "missing rollback for %s", up)
	}

	body, err := fs.ReadFile(migrations.FS, "000002_create_rent_periods.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "idx_rent_periods_lease_due")
}
