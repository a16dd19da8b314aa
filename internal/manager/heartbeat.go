package manager

import (
	"context"
	"time"

	"github.com/dreamware/kvstore/internal/wire"
)

// RunHeartbeat wakes every interval, takes a snapshot of the
// registered servers, and probes each with Live. A transport error
// evicts that server from the registry (spec.md §4.4, P10). It runs
// until ctx is cancelled.
func (m *Manager) RunHeartbeat(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkOnce(ctx)
		}
	}
}

func (m *Manager) checkOnce(ctx context.Context) {
	for sid, ep := range m.snapshotServers() {
		client, err := m.client(ep.String())
		if err != nil {
			m.evict(sid)
			continue
		}
		if _, err := client.Live(ctx, &wire.LiveRequest{}); err != nil {
			m.log.Info().Int32("server_id", sid).Err(err).Msg("heartbeat failed, evicting")
			m.evict(sid)
		}
	}
}

func (m *Manager) evict(serverID int32) {
	m.registryMu.Lock()
	defer m.registryMu.Unlock()
	m.removeServerLocked(serverID)
}
