package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"

	"github.com/dreamware/kvstore/internal/cache"
	"github.com/dreamware/kvstore/internal/lock"
	"github.com/dreamware/kvstore/internal/wire"
)

// Node is a single Storage replica: one file per key under dataDir,
// a cache in front of it, a per-key reader/writer lock table, and the
// single tentativePrev rollback buffer used while a two-phase write is
// in flight. See invariants I1-I3 on the buffer and known keys.
type Node struct {
	id      int32
	dataDir string
	manager wire.ManagerClient
	log     zerolog.Logger

	mu        sync.Mutex
	knownKeys map[string]struct{}
	hasPrev   bool
	prevValue []byte

	locks *lock.Table
	cache *cache.Cache
}

// New creates a Node rooted at dataDir, creating it if necessary.
// manager may be nil in tests that never exercise the GetData
// Manager-fallback path.
func New(id int32, dataDir string, cacheCapacity int, manager wire.ManagerClient, log zerolog.Logger) (*Node, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return &Node{
		id:        id,
		dataDir:   dataDir,
		manager:   manager,
		log:       log,
		knownKeys: make(map[string]struct{}),
		locks:     lock.NewTable(),
		cache:     cache.New(cacheCapacity),
	}, nil
}

func (n *Node) keyPath(key string) string {
	return filepath.Join(n.dataDir, key)
}

func (n *Node) isKnown(key string) bool {
	n.mu.Lock()
	_, ok := n.knownKeys[key]
	n.mu.Unlock()
	return ok
}

func (n *Node) markKnown(key string) {
	n.mu.Lock()
	n.knownKeys[key] = struct{}{}
	n.mu.Unlock()
}

func (n *Node) forgetKnown(key string) {
	n.mu.Lock()
	delete(n.knownKeys, key)
	n.mu.Unlock()
}

// lookupLocal is the shared body of GetData steps 1-2 and MaGet: cache
// hit wins outright; otherwise a known key is read from disk under a
// try-read, and an unknown key reports errNotFoundLocal so callers can
// decide whether to fall back to the Manager.
func (n *Node) lookupLocal(key string) ([]byte, error) {
	if v, ok := n.cache.Get(key); ok {
		return v, nil
	}
	if !n.isKnown(key) {
		return nil, errNotFoundLocal
	}
	l := n.locks.GetOrCreate(key)
	if !l.TryAcquireRead() {
		n.log.Debug().Str("key", key).Msg("try_acquire_read busy")
		return nil, ErrBusy
	}
	n.log.Debug().Str("key", key).Msg("read lock acquired")
	defer func() {
		l.ReleaseRead()
		n.log.Debug().Str("key", key).Msg("read lock released")
	}()

	data, err := os.ReadFile(n.keyPath(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	n.cache.Add(key, data)
	return data, nil
}

// MaGet is the Manager-facing read: like lookupLocal, but with no
// fallback to the Manager (that would be circular).
func (n *Node) MaGet(key string) ([]byte, error) {
	v, err := n.lookupLocal(key)
	if err == errNotFoundLocal {
		return nil, ErrNotFound
	}
	return v, err
}

// GetData is the client-facing read: try the cache and local store
// first, and only defer to the Manager's quorum read when the key is
// not known on this node at all.
func (n *Node) GetData(ctx context.Context, key string) ([]byte, error) {
	v, err := n.lookupLocal(key)
	if err == nil {
		return v, nil
	}
	if err != errNotFoundLocal {
		return nil, err
	}

	if n.manager == nil {
		return nil, ErrNotFound
	}
	resp, rpcErr := n.manager.Get(ctx, &wire.GetRequest{ServerID: n.id, Key: key})
	if rpcErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, rpcErr)
	}
	if !resp.Errno {
		return nil, ErrNotFound
	}

	value := resp.Value
	n.markKnown(key)
	l := n.locks.GetOrCreate(key)
	l.AcquireWrite()
	n.log.Debug().Str("key", key).Msg("write lock acquired (manager fallback)")
	defer func() {
		l.ReleaseWrite()
		n.log.Debug().Str("key", key).Msg("write lock released (manager fallback)")
	}()

	if err := atomic.WriteFile(n.keyPath(key), bytes.NewReader(value)); err != nil {
		n.log.Error().Err(err).Str("key", key).Msg("writing manager-fetched value")
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	n.cache.Add(key, value)
	return value, nil
}

// PutData forwards a client write to the Manager's two-phase
// coordination; this node does not mutate local state directly.
func (n *Node) PutData(ctx context.Context, key string, value []byte) error {
	resp, err := n.manager.Put(ctx, &wire.PutRequest{ServerID: n.id, Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if !resp.Errno {
		return errors.New(resp.Errmes)
	}
	return nil
}

// DelData forwards a client delete to the Manager's two-phase
// coordination.
func (n *Node) DelData(ctx context.Context, key string) error {
	resp, err := n.manager.Del(ctx, &wire.DelRequest{ServerID: n.id, Key: key})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if !resp.Errno {
		return errors.New(resp.Errmes)
	}
	return nil
}

// MaPut is the prepare phase for a write: invalidate the cache,
// snapshot the current on-disk value into the tentative buffer, write
// the new value, and hold the writer lock until Commit or Abort.
func (n *Node) MaPut(key string, value []byte) error {
	n.cache.Invalidate(key)

	l := n.locks.GetOrCreate(key)
	l.AcquireWrite()
	n.log.Debug().Str("key", key).Msg("write lock acquired (MaPut prepare)")

	n.mu.Lock()
	if _, known := n.knownKeys[key]; !known {
		n.knownKeys[key] = struct{}{}
		n.hasPrev, n.prevValue = false, nil
	} else if prev, err := os.ReadFile(n.keyPath(key)); err != nil {
		// Open question (spec.md §9): a read failure here is treated
		// as a prepare failure rather than silently losing the
		// rollback snapshot.
		n.mu.Unlock()
		l.ReleaseWrite()
		return fmt.Errorf("%w: %v", ErrIO, err)
	} else {
		n.hasPrev, n.prevValue = true, prev
	}
	n.mu.Unlock()

	if err := atomic.WriteFile(n.keyPath(key), bytes.NewReader(value)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// MaDel is the prepare phase for a delete: the file is left in place
// until Commit; only known_keys is updated eagerly.
func (n *Node) MaDel(key string) error {
	n.cache.Invalidate(key)

	l := n.locks.GetOrCreate(key)
	l.AcquireWrite()
	n.log.Debug().Str("key", key).Msg("write lock acquired (MaDel prepare)")

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, known := n.knownKeys[key]; !known {
		n.hasPrev, n.prevValue = false, nil
		return nil
	}
	prev, err := os.ReadFile(n.keyPath(key))
	if err != nil {
		n.hasPrev, n.prevValue = false, nil
	} else {
		n.hasPrev, n.prevValue = true, prev
	}
	delete(n.knownKeys, key)
	return nil
}

// Commit finalizes a prepared mutation. del distinguishes a prepared
// MaDel (remove the file and the lock entry) from a prepared MaPut
// (the new value already landed in MaPut).
func (n *Node) Commit(key string, del bool) error {
	var ioErr error
	if del {
		if err := os.Remove(n.keyPath(key)); err != nil && !os.IsNotExist(err) {
			ioErr = fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	n.mu.Lock()
	n.hasPrev, n.prevValue = false, nil
	n.mu.Unlock()

	if del {
		n.locks.Get(key).ReleaseWrite()
		n.locks.Remove(key)
	} else {
		n.locks.Get(key).ReleaseWrite()
	}
	n.log.Debug().Str("key", key).Bool("delete", del).Msg("write lock released (commit)")
	return ioErr
}

// Abort rolls a prepared mutation back using the tentative snapshot,
// or drops the key entirely if there was nothing to roll back to.
func (n *Node) Abort(key string) error {
	n.mu.Lock()
	hasPrev, prev := n.hasPrev, n.prevValue
	n.hasPrev, n.prevValue = false, nil
	n.mu.Unlock()

	var err error
	if hasPrev {
		if werr := atomic.WriteFile(n.keyPath(key), bytes.NewReader(prev)); werr != nil {
			err = fmt.Errorf("%w: %v", ErrIO, werr)
		}
		n.markKnown(key)
		n.locks.Get(key).ReleaseWrite()
		n.log.Debug().Str("key", key).Msg("write lock released (abort, rolled back)")
		return err
	}

	n.forgetKnown(key)
	if rerr := os.Remove(n.keyPath(key)); rerr != nil && !os.IsNotExist(rerr) {
		err = fmt.Errorf("%w: %v", ErrIO, rerr)
	}
	n.locks.Get(key).ReleaseWrite()
	n.locks.Remove(key)
	n.log.Debug().Str("key", key).Msg("write lock released (abort, dropped)")
	return err
}

// Live answers the Manager's heartbeat probe.
func (n *Node) Live() error { return nil }
