package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommaSeparatedList(t *testing.T) {
	assert.Nil(t, ParseCommaSeparatedList(""))
	assert.Equal(t, []string{"Ana", "Ben"}, ParseCommaSeparatedList(" Ana , ,Ben,"))
	assert.Nil(t, ParseCommaSeparatedList(" , "))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatFileSize(tc.size))
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	size, err := ValidateFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = ValidateFile(dir)
	assert.ErrorContains(t, err, "directory")

	_, err = ValidateFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorContains(t, err, "does not exist")

	_, err = ValidateFile("")
	assert.Error(t, err)
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "/tmp/my notes.txt", CleanPath(`'/tmp/my notes.txt'`))
	assert.Equal(t, "/tmp/my notes.txt", CleanPath(`/tmp/my\ notes.txt`))
	assert.Equal(t, "/tmp/a.vtt", CleanPath("file:///tmp/a.vtt\n"))
}

func TestDatedFilename(t *testing.T) {
	day := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "meeting-analysis-2025-01-10.json", DatedFilename("meeting-analysis", day, "json"))
	assert.Equal(t, "meeting-analysis-2025-01-10.pdf", DatedFilename("meeting-analysis", day, ".pdf"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcdefg...", TruncateString("abcdefghijklmnop", 10))
}

func TestEnsureDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDirectory(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Error(t, EnsureDirectory(""))
}
