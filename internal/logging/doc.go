// Package logging holds the process-wide zerolog.Logger and the
// field helpers used to tag it per component (manager/storage/client)
// and per entity (server_id/client_id).
package logging
