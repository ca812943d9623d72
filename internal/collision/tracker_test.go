package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/internal/hash"
)

func TestTrack(t *testing.T) {
	tr := NewTracker()

	id, err := tr.Track(2, "table2d")
	require.NoError(t, err)
	require.Equal(t, hash.ID("table2d"), id)

	_, err = tr.Track(3, "table3d")
	require.NoError(t, err)

	// The same name under another dimension count is a different table.
	_, err = tr.Track(3, "table2d")
	require.NoError(t, err)

	require.Equal(t, 3, tr.Count())
	require.Equal(t, []string{"table2d", "table3d", "table2d"}, tr.Names())
	require.Equal(t, []uint64{hash.ID("table2d"), hash.ID("table3d"), hash.ID("table2d")}, tr.IDs())
}

func TestTrackErrors(t *testing.T) {
	tr := NewTracker()

	_, err := tr.Track(1, "")
	require.ErrorIs(t, err, errs.ErrInvalidTableName)

	_, err = tr.Track(1, "a")
	require.NoError(t, err)
	_, err = tr.Track(1, "a")
	require.ErrorIs(t, err, errs.ErrMalformedInput)
	require.Equal(t, 1, tr.Count())
}

func TestTrackCollision(t *testing.T) {
	tr := NewTracker()

	// Plant a fake entry under the real ID of "b" to simulate a collision.
	tr.names[key{dims: 2, id: hash.ID("b")}] = "a"

	_, err := tr.Track(2, "b")
	require.ErrorIs(t, err, errs.ErrHashCollision)

	_, err = tr.Track(1, "b")
	require.NoError(t, err)
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	_, err := tr.Track(1, "a")
	require.NoError(t, err)

	tr.Reset()
	require.Zero(t, tr.Count())
	require.Empty(t, tr.Names())

	_, err = tr.Track(1, "a")
	require.NoError(t, err)
}
