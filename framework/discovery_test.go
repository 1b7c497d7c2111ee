package framework

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFixtures(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_fixture.go", "a_fixture.go", "helpers.go", "c_fixture.go.txt", "notes.md"} {
		writeSource(t, dir, name, "package widgets\n")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir_fixture.go"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeSource(t, filepath.Join(dir, "nested"), "deep_fixture.go", "package nested\n")

	files, err := DiscoverFixtures(dir, DefaultFixtureSuffix)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a_fixture.go"),
		filepath.Join(dir, "b_fixture.go"),
	}, files)
}

func TestDiscoverFixturesCustomSuffix(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a_fixture.go", "package widgets\n")
	writeSource(t, dir, "a_case.go", "package widgets\n")

	files, err := DiscoverFixtures(dir, "_case.go")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a_case.go")}, files)
}

func TestDiscoverFixturesEmptySuffixUsesDefault(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a_fixture.go", "package widgets\n")
	writeSource(t, dir, "other.go", "package widgets\n")

	files, err := DiscoverFixtures(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a_fixture.go")}, files)
}

func TestDiscoverFixturesEmptyDirectory(t *testing.T) {
	files, err := DiscoverFixtures(t.TempDir(), DefaultFixtureSuffix)
	require.NoError(t, err)
	assert.Len(t, files, 0)
}

func TestDiscoverFixturesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := DiscoverFixtures(dir, DefaultFixtureSuffix)
	var de *DiscoveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, dir, de.Dir)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
