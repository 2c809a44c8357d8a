package a2s

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

//go:generate moq -out querier_mock.go . Querier

// Querier возвращает текущее состояние игрового сервера
type Querier interface {
	// Info выполняет один запрос A2S_INFO
	Info(ctx context.Context) (*Info, error)
}

const (
	// DefaultTimeout bounds a single request/response round trip
	DefaultTimeout = time.Second

	// maxPacketSize - максимальный размер однопакетного ответа A2S
	maxPacketSize = 1400
)

// Client опрашивает один A2S endpoint по UDP
type Client struct {
	logger  *slog.Logger
	addr    string
	timeout time.Duration
}

// NewClient создает клиент для host:port.
// Неположительный timeout заменяется на DefaultTimeout
func NewClient(addr string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger.Info("A2S client initialized", "endpoint", addr, "timeout", timeout)
	return &Client{
		logger:  logger,
		addr:    addr,
		timeout: timeout,
	}
}

// Addr возвращает адрес endpoint
func (c *Client) Addr() string {
	return c.addr
}

// Info sends an A2S_INFO request and decodes the response.
// Errors wrap ErrTimeout, ErrProtocol or ErrTransport.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	data, err := c.roundTrip(ctx)
	if err != nil {
		return nil, err
	}

	info, err := Decode(data)
	if err != nil {
		c.logger.Error("Failed to parse A2S response", "endpoint", c.addr, "error", err)
		return nil, err
	}

	c.logger.Debug("A2S query successful",
		"endpoint", c.addr,
		"name", info.Name,
		"map", info.Map,
		"players", info.Players,
		"max_players", info.MaxPlayers)

	return info, nil
}

func (c *Client) roundTrip(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "udp", c.addr)
	if err != nil {
		return nil, c.classify(ctx, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	// Отмена контекста прерывает ожидание ответа
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	c.logger.Debug("Sending A2S query", "endpoint", c.addr)
	if _, err := conn.Write(infoRequest); err != nil {
		return nil, c.classify(ctx, err)
	}

	buf := make([]byte, maxPacketSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, c.classify(ctx, err)
	}

	return buf[:n], nil
}

// classify сопоставляет ошибку сокета с ErrTimeout или ErrTransport
func (c *Client) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
	}

	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.logger.Info("A2S request timed out", "endpoint", c.addr, "timeout", c.timeout)
		return fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
	}

	c.logger.Error("A2S request failed", "endpoint", c.addr, "error", err)
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
