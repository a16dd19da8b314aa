package manager

import "errors"

// ErrUnauthorized is returned verbatim as errmes by every coordination
// RPC when the caller's server_id is not currently registered
// (spec.md §4.4, test-visible string).
var ErrUnauthorized = errors.New("节点未注册, 无权操作!")

// ErrNoSuchServer is returned by ChangeServer when the requested
// endpoint is not currently registered.
var ErrNoSuchServer = errors.New("不存在此存储服务器")

// ErrEmptyCluster is returned by Connect/ChangeServerRandom when no
// Storage node is registered.
var ErrEmptyCluster = errors.New("当前没有可用的存储服务器")

// ErrCommitFailed is returned by Put/Del when any prepared participant
// reported failure and the coordination aborted.
var ErrCommitFailed = errors.New("提交失败")
