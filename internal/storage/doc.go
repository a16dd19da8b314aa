// Package storage implements a single Storage node: a local key-value
// store backed by one file per key, a small age-counter cache in front
// of it, and the per-key reader/writer locking and tentative-value
// rollback buffer that make it a two-phase commit participant.
//
// Node exposes the client-facing GetData/PutData/DelData RPCs and the
// Manager-facing MaGet/MaPut/MaDel/Commit/Abort/Live RPCs over
// internal/wire.
package storage
