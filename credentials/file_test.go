package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProviderRoundTrip(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "credentials.json")
	content := `{"mainframe": {"username": "USER1", "password": "secret"}}`
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0600))

	p := NewFileProvider(fileName)

	got, err := p.Get("mainframe")
	require.NoError(t, err)
	assert.Equal(t, &Credential{ID: "mainframe", Username: "USER1", Password: "secret"}, got)

	missing, err := p.Get("unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)

	added, err := p.Add(&Credential{ID: "backup", Username: "USER2", Password: "secret2"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = p.Add(&Credential{ID: "backup", Username: "USER3", Password: "secret3"})
	require.NoError(t, err)
	assert.False(t, added, "duplicate id must not be added")

	all, err := p.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "backup", all[0].ID)
	assert.Equal(t, "mainframe", all[1].ID)

	require.NoError(t, p.Delete("backup"))
	all, err = p.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "mainframe", all[0].ID)
}

func TestFileProviderRejectsIncompleteCredential(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "credentials.json")
	content := `{"mainframe": {"username": "USER1", "password": ""}}`
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0600))

	_, err := NewFileProvider(fileName).GetAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestFileProviderMissingFileIsEmpty(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "credentials.json")
	p := NewFileProvider(fileName)

	got, err := p.Get("mainframe")
	require.NoError(t, err)
	assert.Nil(t, got)

	added, err := p.Add(&Credential{ID: "mainframe", Username: "USER1", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, added)

	got, err = p.Get("mainframe")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "USER1", got.Username)
}
