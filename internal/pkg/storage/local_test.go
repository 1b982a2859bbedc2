package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndURL(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	content := "hello payroll"
	key, err := s.Upload(ctx, strings.NewReader(content), int64(len(content)), "exports/payroll/march.xlsx", ContentTypeXLSX)
	require.NoError(t, err)
	assert.Equal(t, "exports/payroll/march.xlsx", key)

	data, err := os.ReadFile(filepath.Join(dir, "exports", "payroll", "march.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	url, err := s.GetURL(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/exports/payroll/march.xlsx", url)
}

func TestLocalStorage_TraversalStaysInsideBase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "base"), "http://localhost/uploads")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("x"), 1, "../../escape.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", key)

	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = s.Upload(ctx, strings.NewReader("x"), 1, "/", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("x"), 1, "a/b.txt", "text/plain")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(s.basePath, "a", "b.txt"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, key), "deleting a missing file is not an error")
}

func TestLocalStorage_PurgeOlderThan(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost/uploads")
	require.NoError(t, err)

	for _, name := range []string{"exports/payroll/old.xlsx", "exports/payroll/new.xlsx", "other/keep.txt"} {
		_, err := s.Upload(ctx, strings.NewReader("x"), 1, name, ContentTypeXLSX)
		require.NoError(t, err)
	}

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "exports", "payroll", "old.xlsx"), old, old))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "other", "keep.txt"), old, old))

	removed, err := s.PurgeOlderThan(ctx, "exports/payroll", time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, filepath.Join(dir, "exports", "payroll", "old.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "exports", "payroll", "new.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "other", "keep.txt"))
}

func TestLocalStorage_PurgeMissingPrefix(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	removed, err := s.PurgeOlderThan(context.Background(), "exports/payroll", time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestLocalStorage_Open(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/api/v1/payroll")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("SALARIES"), 8, "exports/march.xlsx", ContentTypeXLSX)
	require.NoError(t, err)

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "SALARIES", string(data))

	_, err = s.Open(ctx, "exports/missing.xlsx")
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = s.Open(ctx, "exports")
	assert.ErrorIs(t, err, ErrFileNotFound, "directories are never served")
}
