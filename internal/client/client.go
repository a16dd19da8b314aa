package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/dreamware/kvstore/internal/wire"
)

// reconnectAttempts and reconnectDelay implement spec.md §4.5's
// reconnect policy exactly: up to 10 attempts, 200ms apart.
const (
	reconnectAttempts = 10
	reconnectDelay    = 200 * time.Millisecond
)

// Dialer opens a Storage client for endpoint.
type Dialer func(endpoint string) (wire.StorageClient, func() error, error)

// Client is a connected store client: a client_id plus a live stub to
// its currently assigned Storage node.
type Client struct {
	id      int32
	manager wire.ManagerClient
	dial    Dialer
	log     zerolog.Logger

	mu       sync.Mutex
	storage  wire.StorageClient
	endpoint string
}

// Connect registers a new client against manager and dials its
// assigned Storage node.
func Connect(ctx context.Context, manager wire.ManagerClient, dial Dialer, log zerolog.Logger) (*Client, error) {
	resp, err := manager.Connect(ctx, &wire.ConnectRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if !resp.Errno {
		return nil, errors.New(resp.Errmes)
	}

	ep := resp.Host + ":" + resp.Port
	sc, _, err := dial(ep)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return &Client{
		id:       resp.ClientID,
		manager:  manager,
		dial:     dial,
		log:      log,
		storage:  sc,
		endpoint: ep,
	}, nil
}

// ID is this client's client_id.
func (c *Client) ID() int32 { return c.id }

// Endpoint is the host:port of the Storage node this client currently
// talks to.
func (c *Client) Endpoint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoint
}

func (c *Client) current() wire.StorageClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage
}

// Get issues GetData, retrying once after a reconnect on transport failure.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := c.withReconnect(ctx, func(sc wire.StorageClient) error {
		resp, rpcErr := sc.GetData(ctx, &wire.GetDataRequest{ClientID: c.id, Key: key})
		if rpcErr != nil {
			return fmt.Errorf("%w: %v", ErrTransport, rpcErr)
		}
		if !resp.Errno {
			return errors.New(resp.Errmes)
		}
		value = resp.Value
		return nil
	})
	return value, err
}

// Put issues PutData, retrying once after a reconnect on transport failure.
func (c *Client) Put(ctx context.Context, key string, value []byte) error {
	return c.withReconnect(ctx, func(sc wire.StorageClient) error {
		resp, rpcErr := sc.PutData(ctx, &wire.PutDataRequest{ClientID: c.id, Key: key, Value: value})
		if rpcErr != nil {
			return fmt.Errorf("%w: %v", ErrTransport, rpcErr)
		}
		if !resp.Errno {
			return errors.New(resp.Errmes)
		}
		return nil
	})
}

// Del issues DelData, retrying once after a reconnect on transport failure.
func (c *Client) Del(ctx context.Context, key string) error {
	return c.withReconnect(ctx, func(sc wire.StorageClient) error {
		resp, rpcErr := sc.DelData(ctx, &wire.DelDataRequest{ClientID: c.id, Key: key})
		if rpcErr != nil {
			return fmt.Errorf("%w: %v", ErrTransport, rpcErr)
		}
		if !resp.Errno {
			return errors.New(resp.Errmes)
		}
		return nil
	})
}

// ChangeTo explicitly routes this client to endpoint, the "change"
// shell command's non-random form.
func (c *Client) ChangeTo(ctx context.Context, host, port string) error {
	resp, err := c.manager.ChangeServer(ctx, &wire.ChangeServerRequest{ClientID: c.id, Host: host, Port: port})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if !resp.Errno {
		return errors.New(resp.Errmes)
	}
	return c.swap(host + ":" + port)
}

func (c *Client) swap(endpoint string) error {
	sc, _, err := c.dial(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	c.mu.Lock()
	c.storage, c.endpoint = sc, endpoint
	c.mu.Unlock()
	return nil
}

// withReconnect runs call once against the current Storage stub; on a
// transport error it reconnects and retries exactly once more, per
// spec.md §4.5.
func (c *Client) withReconnect(ctx context.Context, call func(wire.StorageClient) error) error {
	err := call(c.current())
	if err == nil || !errors.Is(err, ErrTransport) {
		return err
	}
	if rerr := c.reconnect(ctx); rerr != nil {
		return rerr
	}
	return call(c.current())
}

// reconnect implements spec.md §4.5's reconnect routine: up to 10
// attempts, 200ms apart, asking the Manager for a new random endpoint.
func (c *Client) reconnect(ctx context.Context) error {
	b := retry.WithMaxRetries(reconnectAttempts-1, retry.NewConstant(reconnectDelay))
	var lastErr error

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		resp, rpcErr := c.manager.ChangeServerRandom(ctx, &wire.ChangeServerRandomRequest{ClientID: c.id})
		if rpcErr != nil {
			lastErr = fmt.Errorf("%w: %v", ErrTransport, rpcErr)
			return retry.RetryableError(lastErr)
		}
		if !resp.Errno {
			lastErr = errors.New(resp.Errmes)
			return retry.RetryableError(lastErr)
		}
		if swapErr := c.swap(resp.Host + ":" + resp.Port); swapErr != nil {
			lastErr = swapErr
			return retry.RetryableError(lastErr)
		}
		return nil
	})
	if err != nil {
		c.log.Warn().Err(lastErr).Msg("reconnect attempts exhausted")
		if lastErr != nil {
			return fmt.Errorf("%w: %v", ErrReconnectExhausted, lastErr)
		}
		return ErrReconnectExhausted
	}
	return nil
}
