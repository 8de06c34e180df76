// Package monitoring runs the background workers: a periodic engagement
// monitor that logs store growth and host pressure, and a cron-driven
// leaderboard broadcaster for connected clients.
package monitoring

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/thounda/employee-polls-be/internal/state"
)

// EngagementMonitor periodically logs a snapshot of the domain state
// alongside process-level memory pressure.
type EngagementMonitor struct {
	state    *state.State
	interval time.Duration
	ticker   *time.Ticker
	done     chan bool
}

// NewEngagementMonitor creates a new EngagementMonitor.
func NewEngagementMonitor(st *state.State, interval time.Duration) *EngagementMonitor {
	return &EngagementMonitor{
		state:    st,
		interval: interval,
		done:     make(chan bool),
	}
}

// Run starts the periodic snapshots.
func (m *EngagementMonitor) Run() {
	log.Info().Dur("interval", m.interval).Msg("Starting engagement monitor...")
	m.ticker = time.NewTicker(m.interval)
	defer m.ticker.Stop()

	// Run once immediately on start
	m.snapshot()

	for {
		select {
		case <-m.done:
			log.Info().Msg("Stopping engagement monitor.")
			return
		case <-m.ticker.C:
			m.snapshot()
		}
	}
}

// Stop halts the periodic snapshots.
func (m *EngagementMonitor) Stop() {
	m.done <- true
}

func (m *EngagementMonitor) snapshot() {
	users := m.state.Users()
	questions := m.state.Questions()

	totalVotes := 0
	for _, q := range questions {
		totalVotes += len(q.OptionOne.Votes) + len(q.OptionTwo.Votes)
	}

	evt := log.Info().
		Int("users", len(users)).
		Int("questions", len(questions)).
		Int("votes", totalVotes)

	if vm, err := mem.VirtualMemory(); err == nil {
		evt = evt.Float64("memory_used_percent", vm.UsedPercent)
	}

	evt.Msg("Engagement snapshot")
}
