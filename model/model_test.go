package model

import (
	"github.com/stretchr/testify/require"
	"testing"
)

type disposable struct{ disposed int }

func (d *disposable) Dispose() { d.disposed++ }

// TestUint64Key_FixedWidth encodes 8 bytes per part.
func TestUint64Key_FixedWidth(t *testing.T) {
	require.Len(t, Uint64Key(1, 2, 3), 24)
	require.Equal(t, Uint64Key(1, 2), Uint64Key(1, 2))
	require.NotEqual(t, Uint64Key(1, 2), Uint64Key(2, 1))
	require.Empty(t, Uint64Key())
}

// TestCoordsKey_DistinguishesAxes keeps axis order significant.
func TestCoordsKey_DistinguishesAxes(t *testing.T) {
	require.Len(t, CoordsKey(0, 0, 0), 12)
	require.Equal(t, CoordsKey(-16, 0, 16), CoordsKey(-16, 0, 16))
	require.NotEqual(t, CoordsKey(16, 0, 0), CoordsKey(0, 16, 0))
}

// TestAppendCoords_ComposesWithPrefix matches CoordsKey after the prefix.
func TestAppendCoords_ComposesWithPrefix(t *testing.T) {
	key := AppendCoords(Uint64Key(42), 1, 2, 3)
	require.Len(t, key, 20)
	require.Equal(t, Uint64Key(42), key[:8])
	require.Equal(t, CoordsKey(1, 2, 3), key[8:])
}

// TestDestructorFor_PrefersExplicit uses the given destructor over Dispose.
func TestDestructorFor_PrefersExplicit(t *testing.T) {
	var called int
	d := &disposable{}
	destroy := DestructorFor[*disposable](d, func(*disposable) { called++ })
	destroy(d)

	require.Equal(t, 1, called)
	require.Equal(t, 0, d.disposed)
}

// TestDestructorFor_FallsBackToDisposer calls Dispose when no destructor is given.
func TestDestructorFor_FallsBackToDisposer(t *testing.T) {
	d := &disposable{}
	destroy := DestructorFor[*disposable](d, nil)
	require.NotNil(t, destroy)
	destroy(d)
	require.Equal(t, 1, d.disposed)
}

// TestDestructorFor_PlainValue returns nil for values owning nothing.
func TestDestructorFor_PlainValue(t *testing.T) {
	require.Nil(t, DestructorFor[[]byte]([]byte("data"), nil))
}
