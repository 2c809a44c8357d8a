package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http2"

	"github.com/iudanet/gamebeacon/pkg/api"
)

const (
	// KeyHeader carries the listing key on every call after registration
	KeyHeader = "x-chiv2-server-browser-key"

	// RequestIDHeader tags each request for correlation in backend logs
	RequestIDHeader = "x-request-id"

	// DefaultTimeout bounds every backend call
	DefaultTimeout = 4 * time.Second
)

// Client is the HTTP implementation of Browser.
// baseURL is expected to include the API prefix, e.g. https://host/api/v1.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient создает новый клиент бэкенда
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	// HTTP/2 поверх TLS, HTTP/1.1 для остального
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("failed to configure http2 transport: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// Register регистрирует сервер на бэкенде
func (c *Client) Register(ctx context.Context, localIP string, info api.ServerInfo) (*api.RegisterServerResponse, error) {
	req := api.RegisterServerRequest{
		ServerInfo:     info,
		LocalIPAddress: localIP,
	}

	var resp api.RegisterServerResponse
	if err := c.doRequest(ctx, http.MethodPost, "/servers", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	if resp.Key == "" || resp.Server.UniqueID == "" {
		return nil, fmt.Errorf("register request failed: %w: incomplete response", ErrTransport)
	}

	return &resp, nil
}

// Update отправляет изменившиеся живые поля листинга
func (c *Client) Update(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
	req := api.UpdateServerRequest{
		PlayerCount: server.PlayerCount,
		MaxPlayers:  server.MaxPlayers,
		CurrentMap:  server.CurrentMap,
		Name:        server.Name,
	}

	var resp api.UpdateServerResponse
	if err := c.doRequest(ctx, http.MethodPut, serverPath(server), key, req, &resp); err != nil {
		return 0, fmt.Errorf("update request failed: %w", err)
	}

	return resp.RefreshBefore, nil
}

// Heartbeat продлевает аренду листинга
func (c *Client) Heartbeat(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
	var resp api.UpdateServerResponse
	if err := c.doRequest(ctx, http.MethodPost, serverPath(server)+"/heartbeat", key, nil, &resp); err != nil {
		return 0, fmt.Errorf("heartbeat request failed: %w", err)
	}

	return resp.RefreshBefore, nil
}

// Delete удаляет листинг
func (c *Client) Delete(ctx context.Context, server api.ResponseServer, key string) error {
	if err := c.doRequest(ctx, http.MethodDelete, serverPath(server), key, nil, nil); err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	return nil
}

func serverPath(server api.ResponseServer) string {
	return "/servers/" + url.PathEscape(server.UniqueID)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, key string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set(KeyHeader, key)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Backend request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", ErrTransport, err)
	}

	c.logger.Debug("Backend request",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			statusErr.Message = errResp.Message
			if statusErr.Message == "" {
				statusErr.Message = errResp.Error
			}
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrTransport, err)
		}
	}

	return nil
}
