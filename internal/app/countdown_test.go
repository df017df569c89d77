package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-party-service/internal/app"
)

func TestCountdownRevealsAnswer(t *testing.T) {
	s, _ := newTestSession(t, 3)
	hostWithGuest(t, s)
	s.StartGame()
	s.SetTimeRemaining(3)

	expired := make(chan struct{})
	c := app.StartCountdown(context.Background(), s, time.Millisecond, func() { close(expired) })
	defer c.Stop()

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown never expired")
	}
	<-c.Done()

	snap := s.Snapshot()
	assert.Zero(t, snap.TimeRemaining)
	assert.True(t, snap.ShowingAnswer)
}

func TestCountdownStopHaltsTicks(t *testing.T) {
	s, _ := newTestSession(t, 3)
	hostWithGuest(t, s)
	s.StartGame()

	c := app.StartCountdown(context.Background(), s, time.Hour, nil)
	c.Stop()
	c.Stop()

	require.Equal(t, 10, s.Snapshot().TimeRemaining)
	assert.False(t, s.Snapshot().ShowingAnswer)

	var nilCountdown *app.Countdown
	nilCountdown.Stop()
}
