package nameset

import (
	"testing"

	"github.com/arloliu/chemlab/internal/hash"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Names())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	id, err := tracker.Track("vinegar_ml")
	require.NoError(t, err)
	require.Equal(t, hash.ID("vinegar_ml"), id)

	_, err = tracker.Track("bicarb_g")
	require.NoError(t, err)

	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []string{"vinegar_ml", "bicarb_g"}, tracker.Names())
	require.True(t, tracker.Contains("bicarb_g"))
	require.False(t, tracker.Contains("time_s"))
	require.False(t, tracker.HasCollision())
}

func TestTracker_EmptyName(t *testing.T) {
	tracker := NewTracker()

	for _, name := range []string{"", "   ", "\t"} {
		_, err := tracker.Track(name)
		require.ErrorIs(t, err, ErrEmptyName)
	}
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Duplicate(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("time_s")
	require.NoError(t, err)

	_, err = tracker.Track("time_s")
	require.ErrorIs(t, err, ErrDuplicateName)
	require.Equal(t, 1, tracker.Count())
	require.False(t, tracker.HasCollision())
}

func TestTracker_Collision(t *testing.T) {
	tracker := NewTracker()

	// pretend "ocv_V" already occupies the slot of "current_A"
	tracker.ids[hash.ID("current_A")] = "ocv_V"
	tracker.names = append(tracker.names, "ocv_V")

	_, err := tracker.Track("current_A")
	require.NoError(t, err)
	require.True(t, tracker.HasCollision())
	require.Equal(t, []string{"ocv_V", "current_A"}, tracker.Names())
	require.True(t, tracker.Contains("current_A"))

	_, err = tracker.Track("current_A")
	require.ErrorIs(t, err, ErrDuplicateName)
	require.Equal(t, 2, tracker.Count())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	_, _ = tracker.Track("a")
	_, _ = tracker.Track("b")
	tracker.hasCollision = true

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.False(t, tracker.Contains("a"))

	_, err := tracker.Track("a")
	require.NoError(t, err)
}
