package lock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRWLockMultipleReaders(t *testing.T) {
	l := NewRWLock()
	l.AcquireRead()
	ok := l.TryAcquireRead()
	assert.True(t, ok, "a second reader should be able to join")
	l.ReleaseRead()
	l.ReleaseRead()
}

func TestRWLockTryAcquireReadFailsUnderWriter(t *testing.T) {
	l := NewRWLock()
	l.AcquireWrite()
	defer l.ReleaseWrite()

	ok := l.TryAcquireRead()
	assert.False(t, ok, "try-read must fail while a writer holds the lock")
}

func TestRWLockTryAcquireReadSucceedsWithNoWriter(t *testing.T) {
	l := NewRWLock()
	ok := l.TryAcquireRead()
	require.True(t, ok)
	l.ReleaseRead()
}

func TestRWLockWriteExcludesReaders(t *testing.T) {
	l := NewRWLock()
	l.AcquireWrite()

	done := make(chan struct{})
	go func() {
		l.AcquireRead()
		close(done)
		l.ReleaseRead()
	}()

	select {
	case <-done:
		t.Fatal("reader should not have acquired while writer holds the lock")
	case <-time.After(50 * time.Millisecond):
	}

	l.ReleaseWrite()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader never acquired after writer released")
	}
}

func TestRWLockWriteIsExclusive(t *testing.T) {
	l := NewRWLock()
	l.AcquireWrite()

	acquired := make(chan struct{})
	go func() {
		l.AcquireWrite()
		close(acquired)
		l.ReleaseWrite()
	}()

	select {
	case <-acquired:
		t.Fatal("second writer should not have acquired concurrently")
	case <-time.After(50 * time.Millisecond):
	}

	l.ReleaseWrite()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second writer never acquired after first released")
	}
}

func TestTableGetOrCreateIsStable(t *testing.T) {
	tbl := NewTable()
	a := tbl.GetOrCreate("k")
	b := tbl.GetOrCreate("k")
	assert.Same(t, a, b)
}

func TestTableRemove(t *testing.T) {
	tbl := NewTable()
	tbl.GetOrCreate("k")
	tbl.Remove("k")
	assert.Nil(t, tbl.Get("k"))
}
