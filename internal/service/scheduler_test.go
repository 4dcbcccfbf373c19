package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobScheduler_After(t *testing.T) {
	s, err := NewJobScheduler(zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Shutdown() }()

	done := make(chan struct{})
	require.NoError(t, s.After("once", 20*time.Millisecond, func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("one-shot job did not run")
	}
}

func TestJobScheduler_AfterImmediately(t *testing.T) {
	s, err := NewJobScheduler(zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Shutdown() }()

	done := make(chan struct{})
	require.NoError(t, s.After("now", 0, func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("immediate job did not run")
	}
}

func TestJobScheduler_Every(t *testing.T) {
	s, err := NewJobScheduler(zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Shutdown() }()

	var runs atomic.Int32
	require.NoError(t, s.Every("tick", 20*time.Millisecond, func() { runs.Add(1) }))

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestJobScheduler_InvalidInterval(t *testing.T) {
	s, err := NewJobScheduler(zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Shutdown() }()

	assert.Error(t, s.Every("bad", 0, func() {}))
}
