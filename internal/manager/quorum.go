package manager

import (
	"context"
	"fmt"

	"github.com/dreamware/kvstore/internal/wire"
)

// ErrNotFound is returned when no reachable replica (other than the
// caller) holds key.
type ErrNotFound struct{ Key string }

func (e ErrNotFound) Error() string { return fmt.Sprintf("暂时缺少键值%s", e.Key) }

// ErrNoAgreement is returned when replicas answered but no value held
// a strict majority.
type ErrNoAgreement struct{ Key string }

func (e ErrNoAgreement) Error() string { return fmt.Sprintf("其他服务器对键值%s 无法达成一致", e.Key) }

// Get runs the majority-quorum read described in spec.md §4.4: every
// registered server other than callerID is asked for key via MaGet;
// the most common value wins if it holds a strict majority of the
// responses that succeeded.
func (m *Manager) Get(ctx context.Context, key string, callerID int32) ([]byte, error) {
	if !m.authorized(callerID) {
		return nil, ErrUnauthorized
	}

	servers := m.snapshotServers()
	var values [][]byte
	for sid, ep := range servers {
		if sid == callerID {
			continue
		}
		client, err := m.client(ep.String())
		if err != nil {
			continue
		}
		resp, err := client.MaGet(ctx, &wire.MaGetRequest{Key: key})
		if err != nil {
			continue
		}
		if resp.Errno {
			values = append(values, resp.Value)
		}
	}

	type tally struct {
		value []byte
		count int
	}
	var order [][]byte
	counts := make(map[string]*tally)
	for _, v := range values {
		k := string(v)
		if t, ok := counts[k]; ok {
			t.count++
		} else {
			counts[k] = &tally{value: v, count: 1}
			order = append(order, v)
		}
	}

	m2 := len(values)
	if m2 == 0 {
		return nil, ErrNotFound{Key: key}
	}

	var best *tally
	for _, v := range order {
		t := counts[string(v)]
		if best == nil || t.count > best.count {
			best = t
		}
	}
	if best.count*2 > m2 {
		return best.value, nil
	}
	return nil, ErrNoAgreement{Key: key}
}
