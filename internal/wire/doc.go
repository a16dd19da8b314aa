// Package wire defines the RPC surface described in spec.md §6 — the
// Manager service (Online/Offline/Connect/Disconnect/ChangeServer/
// ChangeServerRandom/Get/Put/Del) and the Storage service (GetData/
// PutData/DelData plus the Manager-facing MaGet/MaPut/MaDel/Commit/
// Abort/Live) — and the gRPC transport that carries them.
//
// Every response embeds Status, giving the {errno, errmes} contract
// spec.md requires: errno=true means success.
//
// The service/client boilerplate here (ServiceDesc, per-method handler
// functions, Invoke call sites) is written in the same shape
// protoc-gen-go-grpc emits, but the messages are plain Go structs
// carried over a Gob codec (codec.go) rather than generated protobuf
// types — see DESIGN.md for why.
package wire
