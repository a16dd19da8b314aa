package manager

import (
	"context"

	"github.com/dreamware/kvstore/internal/wire"
)

// Put runs the two-phase write coordination described in spec.md
// §4.4, serialized cluster-wide by coordinationMu: every registered
// server (including the caller) is sent MaPut; if all of them that
// answered report success, every one of them is told to Commit,
// otherwise every one of them is told to Abort.
func (m *Manager) Put(ctx context.Context, key string, value []byte, callerID int32) error {
	if !m.authorized(callerID) {
		return ErrUnauthorized
	}

	m.coordinationMu.Lock()
	defer m.coordinationMu.Unlock()

	prepared := make(map[int32]endpoint)
	prepareOK := true
	for sid, ep := range m.snapshotServers() {
		client, err := m.client(ep.String())
		if err != nil {
			continue
		}
		resp, err := client.MaPut(ctx, &wire.MaPutRequest{Key: key, Value: value})
		if err != nil {
			continue
		}
		prepared[sid] = ep
		if !resp.Errno {
			prepareOK = false
		}
	}

	if prepareOK {
		m.finish(ctx, prepared, key, false)
		return nil
	}
	m.abortAll(ctx, prepared, key)
	return ErrCommitFailed
}

// Del is symmetric to Put, preparing with MaDel and committing with
// Commit(key, delete=true).
func (m *Manager) Del(ctx context.Context, key string, callerID int32) error {
	if !m.authorized(callerID) {
		return ErrUnauthorized
	}

	m.coordinationMu.Lock()
	defer m.coordinationMu.Unlock()

	prepared := make(map[int32]endpoint)
	prepareOK := true
	for sid, ep := range m.snapshotServers() {
		client, err := m.client(ep.String())
		if err != nil {
			continue
		}
		resp, err := client.MaDel(ctx, &wire.MaDelRequest{Key: key})
		if err != nil {
			continue
		}
		prepared[sid] = ep
		if !resp.Errno {
			prepareOK = false
		}
	}

	if prepareOK {
		m.finish(ctx, prepared, key, true)
		return nil
	}
	m.abortAll(ctx, prepared, key)
	return ErrCommitFailed
}

func (m *Manager) finish(ctx context.Context, prepared map[int32]endpoint, key string, del bool) {
	for _, ep := range prepared {
		client, err := m.client(ep.String())
		if err != nil {
			continue
		}
		if _, err := client.Commit(ctx, &wire.CommitRequest{Key: key, Delete: del}); err != nil {
			m.log.Warn().Err(err).Str("endpoint", ep.String()).Str("key", key).Msg("commit delivery failed")
		}
	}
}

func (m *Manager) abortAll(ctx context.Context, prepared map[int32]endpoint, key string) {
	for _, ep := range prepared {
		client, err := m.client(ep.String())
		if err != nil {
			continue
		}
		if _, err := client.Abort(ctx, &wire.AbortRequest{Key: key}); err != nil {
			m.log.Warn().Err(err).Str("endpoint", ep.String()).Str("key", key).Msg("abort delivery failed")
		}
	}
}
