package client

import "errors"

// ErrTransport wraps a failure to reach the Manager or the currently
// assigned Storage node.
var ErrTransport = errors.New("connection failed")

// ErrReconnectExhausted is returned when the reconnect routine gives
// up after its fixed attempt budget.
var ErrReconnectExhausted = errors.New("无法连接到任何存储服务器")
