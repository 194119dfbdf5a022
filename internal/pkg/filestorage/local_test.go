package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndDelete(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "", zerolog.Nop())
	require.NoError(t, err)

	url, err := ls.Save([]byte("%PDF-1.4"), ".PDF", ManuscriptDir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/papers/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	full := ls.GetFullPath(url)
	assert.Equal(t, filepath.Join(base, "papers", filepath.Base(url)), full)

	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, ls.DeleteFile(url))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is fine
	assert.NoError(t, ls.DeleteFile(url))
}

func TestGetFullPathStaysInsideBase(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "/uploads", zerolog.Nop())
	require.NoError(t, err)

	p := ls.GetFullPath("/uploads/../../etc/passwd")
	assert.True(t, strings.HasPrefix(p, base))
	assert.Equal(t, "", ls.GetFullPath("/uploads"))
	assert.Error(t, ls.DeleteFile("/uploads/"))
}

func TestAbsoluteBaseURL(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "https://cdn.sempozyum.org/files/", zerolog.Nop())
	require.NoError(t, err)

	url, err := ls.Save([]byte("png"), ".png", LogoDir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.sempozyum.org/files/logos/"))
	assert.NotEmpty(t, ls.GetFullPath(url))
}
