package tokenstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetClear(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nested", "storage.json"))

	_, ok := s.Get()
	assert.False(t, ok)

	require.NoError(t, s.Set("first"))
	require.NoError(t, s.Set("second"))
	token, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "second", token)

	require.NoError(t, s.Clear())
	_, ok = s.Get()
	assert.False(t, ok)
	require.NoError(t, s.Clear())
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, Open(path).Set("persisted"))

	token, ok := Open(path).Get()
	require.True(t, ok)
	assert.Equal(t, "persisted", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestPreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark","auth_token":"old"}`), 0o600))

	s := Open(path)
	require.NoError(t, s.Set("new"))
	require.NoError(t, s.Clear())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(b))
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	s := Open(path)
	_, ok := s.Get()
	assert.False(t, ok)
	assert.Error(t, s.Set("x"))
}

func TestConcurrentSet(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "storage.json"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Set("token"))
		}()
	}
	wg.Wait()

	token, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "token", token)
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_STORAGE", "/tmp/custom.json")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", p)

	t.Setenv("PORTFOLIO_STORAGE", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "portfolio", "storage.json"), p)
}
