package monitoring

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/thounda/employee-polls-be/internal/state"
	"github.com/thounda/employee-polls-be/internal/views"
	"github.com/thounda/employee-polls-be/internal/websocket"
)

// LeaderboardBroadcaster pushes leaderboard snapshots to websocket clients
// on a cron schedule, so the ranking page stays fresh without polling.
type LeaderboardBroadcaster struct {
	state *state.State
	hub   *websocket.Hub
	cron  *cron.Cron
	spec  string
}

// NewLeaderboardBroadcaster creates a broadcaster with a cron spec such as
// "@every 30s".
func NewLeaderboardBroadcaster(st *state.State, hub *websocket.Hub, spec string) *LeaderboardBroadcaster {
	return &LeaderboardBroadcaster{
		state: st,
		hub:   hub,
		cron:  cron.New(),
		spec:  spec,
	}
}

// Start schedules and begins the broadcasts.
func (b *LeaderboardBroadcaster) Start() error {
	if _, err := b.cron.AddFunc(b.spec, b.broadcast); err != nil {
		return err
	}
	b.cron.Start()
	log.Info().Str("spec", b.spec).Msg("Leaderboard broadcaster started")
	return nil
}

// Stop halts the scheduled broadcasts.
func (b *LeaderboardBroadcaster) Stop() {
	b.cron.Stop()
}

func (b *LeaderboardBroadcaster) broadcast() {
	ranked := views.NewLeaderboard(b.state.Users())
	b.hub.NotifyLeaderboard(ranked)
}
