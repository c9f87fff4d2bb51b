package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesAdd_Idempotent(t *testing.T) {
	var f Favorites

	f, changed := f.Add(27205, Movie)
	assert.True(t, changed)

	f, changed = f.Add(27205, Movie)
	assert.False(t, changed)

	require.Len(t, f, 1)
	assert.Equal(t, Favorite{MediaID: 27205, MediaType: Movie}, f[0])
}

func TestFavoritesAdd_SameIDDifferentType(t *testing.T) {
	f := Favorites{{MediaID: 1399, MediaType: TV}}

	f, changed := f.Add(1399, Movie)
	assert.True(t, changed)
	assert.Len(t, f, 2)
}

func TestFavoritesRemove(t *testing.T) {
	f := Favorites{
		{MediaID: 27205, MediaType: Movie},
		{MediaID: 1399, MediaType: TV},
	}

	f, changed := f.Remove(27205, Movie)
	assert.True(t, changed)
	assert.Equal(t, Favorites{{MediaID: 1399, MediaType: TV}}, f)

	f, changed = f.Remove(27205, Movie)
	assert.False(t, changed)
	assert.Len(t, f, 1)
}

func TestFavoritesValueScan(t *testing.T) {
	in := Favorites{{MediaID: 27205, MediaType: Movie}}

	v, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, `[{"mediaId":27205,"mediaType":"movie"}]`, v)

	var out Favorites
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.Equal(t, in, out)
}

func TestFavoritesScan_Empty(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"empty array", "[]"},
		{"json null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Favorites{{MediaID: 1, MediaType: Movie}}
			require.NoError(t, f.Scan(tt.value))
			assert.NotNil(t, f)
			assert.Empty(t, f)
		})
	}
}

func TestFavoritesScan_BadInput(t *testing.T) {
	var f Favorites
	assert.Error(t, f.Scan(42))
	assert.Error(t, f.Scan("not json"))
}

func TestEmptyFavoritesValue(t *testing.T) {
	v, err := Favorites(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
