// Package client implements the interactive store client: it tracks a
// client_id and an RPC stub to its currently assigned Storage node,
// retries each operation once after a transparent reconnect on
// transport failure, and drives the interactive shell.
package client
