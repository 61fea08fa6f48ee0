package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitialStatus(t *testing.T) {
	require.Equal(t, StatusPending, InitialStatus(0))
	require.Equal(t, StatusInactive, InitialStatus(1))
	require.Equal(t, StatusInactive, InitialStatus(3))
}

func TestTransition(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    Status
		action  Action
		want    Status
		wantErr bool
	}{
		{name: "activate from inactive", from: StatusInactive, action: ActionActivate, want: StatusInProgress},
		{name: "activate from paused", from: StatusPaused, action: ActionActivate, want: StatusInProgress},
		{name: "activate from pending", from: StatusPending, action: ActionActivate, wantErr: true},
		{name: "activate from in_progress", from: StatusInProgress, action: ActionActivate, wantErr: true},
		{name: "activate from completed", from: StatusCompleted, action: ActionActivate, wantErr: true},
		{name: "pause from in_progress", from: StatusInProgress, action: ActionPause, want: StatusPaused},
		{name: "pause from inactive", from: StatusInactive, action: ActionPause, wantErr: true},
		{name: "pause from paused", from: StatusPaused, action: ActionPause, wantErr: true},
		{name: "complete from in_progress", from: StatusInProgress, action: ActionComplete, want: StatusCompleted},
		{name: "complete from paused", from: StatusPaused, action: ActionComplete, wantErr: true},
		{name: "complete from completed", from: StatusCompleted, action: ActionComplete, wantErr: true},
		{name: "unknown action", from: StatusInactive, action: Action("archive"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upd, err := Transition(tt.from, tt.action, now)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, upd.Status)
		})
	}
}

func TestTransitionTimestamps(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	upd, err := Transition(StatusInactive, ActionActivate, now)
	require.NoError(t, err)
	require.NotNil(t, upd.ActivatedAt)
	require.Equal(t, now, *upd.ActivatedAt)
	require.Nil(t, upd.PausedAt)
	require.Nil(t, upd.CompletedAt)

	upd, err = Transition(StatusInProgress, ActionPause, now)
	require.NoError(t, err)
	require.NotNil(t, upd.PausedAt)
	require.Nil(t, upd.ActivatedAt)

	upd, err = Transition(StatusInProgress, ActionComplete, now)
	require.NoError(t, err)
	require.NotNil(t, upd.CompletedAt)
	require.Nil(t, upd.ActivatedAt)
}

// Resuming a paused activity stamps a fresh activation time; the projector
// relies on activated_at always reflecting the most recent start.
func TestTransitionReactivationRefreshesActivatedAt(t *testing.T) {
	first := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)

	upd, err := Transition(StatusInactive, ActionActivate, first)
	require.NoError(t, err)
	require.Equal(t, first, *upd.ActivatedAt)

	upd, err = Transition(StatusPaused, ActionActivate, second)
	require.NoError(t, err)
	require.Equal(t, second, *upd.ActivatedAt)
}
