package lock

import "sync"

// RWLock is a reader/writer lock with a non-blocking read probe.
//
// Multiple readers may hold RWLock concurrently. A writer excludes all
// readers and any other writer. TryAcquireRead never blocks: it succeeds
// immediately if no writer currently holds the lock (whether or not
// other readers hold it), and fails immediately if a writer holds it.
type RWLock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	readers int
	writer  bool
}

// NewRWLock returns a ready-to-use, unlocked RWLock.
func NewRWLock() *RWLock {
	l := &RWLock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// AcquireRead blocks until no writer holds the lock, then registers the
// calling goroutine as a reader.
func (l *RWLock) AcquireRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.writer {
		l.cond.Wait()
	}
	l.readers++
}

// ReleaseRead releases a reader previously acquired with AcquireRead or
// TryAcquireRead.
func (l *RWLock) ReleaseRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.readers--
	if l.readers == 0 {
		l.cond.Broadcast()
	}
}

// TryAcquireRead attempts to acquire a read lock without blocking. It
// succeeds, registering the caller as a reader, unless a writer
// currently holds the lock, in which case it returns false immediately.
func (l *RWLock) TryAcquireRead() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer {
		return false
	}
	l.readers++
	return true
}

// AcquireWrite blocks until there are no readers and no other writer,
// then takes the lock exclusively.
func (l *RWLock) AcquireWrite() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.writer || l.readers > 0 {
		l.cond.Wait()
	}
	l.writer = true
}

// ReleaseWrite releases a previously acquired write lock.
func (l *RWLock) ReleaseWrite() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = false
	l.cond.Broadcast()
}

// Table is a lazily-populated, lock-protected map of key to *RWLock. It
// is the per-key lock table a Storage node keeps alongside known_keys.
type Table struct {
	mu    sync.Mutex
	locks map[string]*RWLock
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{locks: make(map[string]*RWLock)}
}

// GetOrCreate returns the RWLock for key, creating one if this is the
// first time key has been seen.
func (t *Table) GetOrCreate(key string) *RWLock {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[key]
	if !ok {
		l = NewRWLock()
		t.locks[key] = l
	}
	return l
}

// Get returns the RWLock for key, or nil if key has no entry.
func (t *Table) Get(key string) *RWLock {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locks[key]
}

// Remove drops key's entry from the table. Callers must not hold key's
// lock when calling Remove and must ensure no further callers will try
// to acquire it (i.e. call this only after the key has also been
// removed from known_keys).
func (t *Table) Remove(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.locks, key)
}
