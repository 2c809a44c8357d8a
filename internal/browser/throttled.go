package browser

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/iudanet/gamebeacon/pkg/api"
)

// Throttled ограничивает частоту запросов к другому Browser.
// Вызов ждёт токен; если контекст завершится раньше, возвращается ErrTransport
type Throttled struct {
	next    Browser
	limiter *rate.Limiter
}

// NewThrottled создает ограничитель: perSecond запросов в среднем, burst - пик
func NewThrottled(next Browser, perSecond float64, burst int) *Throttled {
	if burst < 1 {
		burst = 1
	}
	return &Throttled{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (t *Throttled) wait(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: throttled: %v", ErrTransport, err)
	}
	return nil
}

// Register ждёт токен и регистрирует листинг
func (t *Throttled) Register(ctx context.Context, localIP string, info api.ServerInfo) (*api.RegisterServerResponse, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	return t.next.Register(ctx, localIP, info)
}

// Update ждёт токен и обновляет листинг
func (t *Throttled) Update(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
	if err := t.wait(ctx); err != nil {
		return 0, err
	}
	return t.next.Update(ctx, server, key)
}

// Heartbeat ждёт токен и отправляет heartbeat
func (t *Throttled) Heartbeat(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
	if err := t.wait(ctx); err != nil {
		return 0, err
	}
	return t.next.Heartbeat(ctx, server, key)
}

// Delete ждёт токен и удаляет листинг
func (t *Throttled) Delete(ctx context.Context, server api.ResponseServer, key string) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	return t.next.Delete(ctx, server, key)
}
