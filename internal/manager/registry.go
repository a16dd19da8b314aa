package manager

import (
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dreamware/kvstore/internal/idgen"
	"github.com/dreamware/kvstore/internal/wire"
)

// Dialer opens a Storage client for endpoint and returns a closer to
// release the underlying connection. Production wiring dials a real
// grpc.ClientConn (see cmd/manager); tests supply an in-memory stub.
type Dialer func(endpoint string) (wire.StorageClient, func() error, error)

type endpoint struct {
	host string
	port string
}

func (e endpoint) String() string { return e.host + ":" + e.port }

// Manager holds the registry described in spec.md §3 (servers,
// clients, endpoints) plus the connections used to reach Storage
// nodes. registryMu guards the registry itself; coordinationMu
// additionally serializes Put/Del coordinations cluster-wide, per
// spec.md §5.
type Manager struct {
	registryMu sync.Mutex
	servers    map[int32]endpoint
	clients    map[int32]string
	endpoints  map[string]struct{}

	coordinationMu sync.Mutex

	dial    Dialer
	connsMu sync.Mutex
	conns   map[string]wire.StorageClient

	log zerolog.Logger
}

// New creates an empty Manager. dial is used to reach Storage nodes
// for MaGet/MaPut/MaDel/Commit/Abort/Live.
func New(dial Dialer, log zerolog.Logger) *Manager {
	return &Manager{
		servers:   make(map[int32]endpoint),
		clients:   make(map[int32]string),
		endpoints: make(map[string]struct{}),
		dial:      dial,
		conns:     make(map[string]wire.StorageClient),
		log:       log,
	}
}

// client returns a cached Storage client for ep, dialing lazily.
func (m *Manager) client(ep string) (wire.StorageClient, error) {
	m.connsMu.Lock()
	defer m.connsMu.Unlock()
	if c, ok := m.conns[ep]; ok {
		return c, nil
	}
	c, _, err := m.dial(ep)
	if err != nil {
		return nil, err
	}
	m.conns[ep] = c
	return c, nil
}

// dropClient evicts a cached connection, forcing a fresh dial on next use.
func (m *Manager) dropClient(ep string) {
	m.connsMu.Lock()
	delete(m.conns, ep)
	m.connsMu.Unlock()
}

// Online registers a new Storage node and returns its fresh server_id.
func (m *Manager) Online(host, port string) int32 {
	m.registryMu.Lock()
	defer m.registryMu.Unlock()

	id := idgen.New(func(id int32) bool {
		_, taken := m.servers[id]
		return taken
	})
	m.servers[id] = endpoint{host: host, port: port}
	m.endpoints[endpoint{host: host, port: port}.String()] = struct{}{}
	m.log.Info().Int32("server_id", id).Str("host", host).Str("port", port).Msg("storage node online")
	return id
}

// Offline deregisters a Storage node; a no-op if serverID is unknown.
func (m *Manager) Offline(serverID int32) {
	m.registryMu.Lock()
	defer m.registryMu.Unlock()
	m.removeServerLocked(serverID)
}

func (m *Manager) removeServerLocked(serverID int32) {
	ep, ok := m.servers[serverID]
	if !ok {
		return
	}
	delete(m.servers, serverID)
	delete(m.endpoints, ep.String())
	m.dropClient(ep.String())
	m.log.Info().Int32("server_id", serverID).Msg("storage node offline")
}

// Connect allocates a fresh client_id and routes it to a uniformly
// random registered Storage node.
func (m *Manager) Connect() (clientID int32, host, port string, err error) {
	m.registryMu.Lock()
	defer m.registryMu.Unlock()

	if len(m.servers) == 0 {
		return 0, "", "", ErrEmptyCluster
	}
	ep := m.randomEndpointLocked()
	clientID = idgen.New(func(id int32) bool {
		_, taken := m.clients[id]
		return taken
	})
	m.clients[clientID] = ep.String()
	return clientID, ep.host, ep.port, nil
}

// Disconnect drops clientID's routing entry.
func (m *Manager) Disconnect(clientID int32) {
	m.registryMu.Lock()
	defer m.registryMu.Unlock()
	delete(m.clients, clientID)
}

// ChangeServer routes clientID to endpoint if it is currently
// registered, else returns ErrNoSuchServer leaving routing unchanged.
func (m *Manager) ChangeServer(clientID int32, host, port string) error {
	m.registryMu.Lock()
	defer m.registryMu.Unlock()

	ep := endpoint{host: host, port: port}.String()
	if _, ok := m.endpoints[ep]; !ok {
		return ErrNoSuchServer
	}
	m.clients[clientID] = ep
	return nil
}

// ChangeServerRandom routes clientID to a uniformly random registered node.
func (m *Manager) ChangeServerRandom(clientID int32) (host, port string, err error) {
	m.registryMu.Lock()
	defer m.registryMu.Unlock()

	if len(m.servers) == 0 {
		return "", "", ErrEmptyCluster
	}
	ep := m.randomEndpointLocked()
	m.clients[clientID] = ep.String()
	return ep.host, ep.port, nil
}

// randomEndpointLocked must be called with registryMu held.
func (m *Manager) randomEndpointLocked() endpoint {
	// map iteration order is randomized by the runtime, so the first
	// entry reached after a random skip is a uniform pick.
	skip := rand.IntN(len(m.servers))
	i := 0
	for _, ep := range m.servers {
		if i == skip {
			return ep
		}
		i++
	}
	panic("unreachable: servers non-empty")
}

// authorized reports whether serverID is currently registered.
func (m *Manager) authorized(serverID int32) bool {
	m.registryMu.Lock()
	defer m.registryMu.Unlock()
	_, ok := m.servers[serverID]
	return ok
}

// snapshotServers returns a copy of the current server_id -> endpoint
// mapping, safe to iterate without holding registryMu (spec.md §9:
// heartbeat/coordination iteration must not race registry mutation).
func (m *Manager) snapshotServers() map[int32]endpoint {
	m.registryMu.Lock()
	defer m.registryMu.Unlock()
	out := make(map[int32]endpoint, len(m.servers))
	for id, ep := range m.servers {
		out[id] = ep
	}
	return out
}
