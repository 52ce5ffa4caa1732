package mosaic

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileDB(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tiles.db")

	db, err := NewTileDB(file)
	require.NoError(t, err)

	_, found, err := db.FindColorBySHA1("ABCD")
	require.NoError(t, err)
	assert.False(t, found)

	c := Color{1.0 / 3, 0.1, 2.0 / 255, 1}
	require.NoError(t, db.AddColor("ABCD", c))

	got, found, err := db.FindColorBySHA1("ABCD")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, c, got)

	c2 := Color{0, 0, 0, 0.5}
	require.NoError(t, db.AddColor("ABCD", c2))

	n, err := db.Length()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, db.Close())

	// Values persist across connections
	db, err = NewTileDB(file)
	require.NoError(t, err)
	defer db.Close()

	got, found, err = db.FindColorBySHA1("ABCD")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, c2, got)
}
