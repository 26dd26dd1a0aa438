package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefresher_InvalidSpec(t *testing.T) {
	_, err := NewRefresher(NewProvider(&stubLoader{}, quietLogger()), "every tuesday", quietLogger())
	assert.Error(t, err)
}

func TestRefresher_RunNow(t *testing.T) {
	loader := &stubLoader{}
	p := NewProvider(loader, quietLogger())
	r, err := NewRefresher(p, "30 18 * * 1-5", quietLogger())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = p.Get(ctx)
	require.NoError(t, err)

	require.NoError(t, r.RunNow(ctx))
	assert.Equal(t, int32(2), loader.calls.Load())

	loader.err = errors.New("upstream unavailable")
	assert.Error(t, r.RunNow(ctx))
}

func TestRefresher_StartStop(t *testing.T) {
	r, err := NewRefresher(NewProvider(&stubLoader{}, quietLogger()), "@every 1h", quietLogger())
	require.NoError(t, err)

	r.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NotPanics(t, func() { r.Stop(ctx) })
}
