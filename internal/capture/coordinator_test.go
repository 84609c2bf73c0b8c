package capture

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestCoordinatorLifecycle(t *testing.T) {
	sink := &MemorySink{}
	c := NewCoordinator(sink, nil)

	require.NoError(t, c.Begin(320, 240, 30))
	assert.True(t, c.Active())

	for i := 0; i < 60; i++ {
		require.NoError(t, c.Frame(frame(320, 240)))
	}

	c.Finish()
	assert.False(t, c.Active())

	art, err := c.Result()
	require.NoError(t, err)
	assert.Equal(t, 60, art.Frames)
	assert.Equal(t, int64(2000), art.DurationMS)
}

func TestCoordinatorRefusesDoubleBegin(t *testing.T) {
	c := NewCoordinator(&MemorySink{}, nil)

	require.NoError(t, c.Begin(100, 100, 30))
	assert.ErrorIs(t, c.Begin(100, 100, 30), ErrCaptureActive)
}

func TestCoordinatorFinishIsIdempotent(t *testing.T) {
	sink := &MemorySink{}
	c := NewCoordinator(sink, nil)

	require.NoError(t, c.Begin(100, 100, 30))
	require.NoError(t, c.Frame(frame(100, 100)))

	c.Finish()
	art, err := c.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, art.Frames)

	// A defensive second Finish must not touch the finished artifact.
	c.Finish()
	art2, err := c.Result()
	require.NoError(t, err)
	assert.Equal(t, art, art2)
}

func TestCoordinatorDropsFramesOutsideSession(t *testing.T) {
	sink := &MemorySink{}
	c := NewCoordinator(sink, nil)

	assert.NoError(t, c.Frame(frame(10, 10)))
	assert.Zero(t, sink.FrameCount())
}

func TestFramesFromPreviousSessionAreExcluded(t *testing.T) {
	sink := &MemorySink{}
	c := NewCoordinator(sink, nil)

	require.NoError(t, c.Begin(100, 100, 30))
	require.NoError(t, c.Frame(frame(100, 100)))
	require.NoError(t, c.Frame(frame(100, 100)))
	c.Finish()

	require.NoError(t, c.Begin(100, 100, 30))
	require.NoError(t, c.Frame(frame(100, 100)))
	c.Finish()

	art, err := c.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, art.Frames, "second session must not include earlier frames")
}

func TestMemorySinkGuards(t *testing.T) {
	sink := &MemorySink{}

	assert.ErrorIs(t, sink.PushFrame(frame(10, 10)), ErrNoCapture)
	_, err := sink.Finalize()
	assert.ErrorIs(t, err, ErrNoCapture)
}
