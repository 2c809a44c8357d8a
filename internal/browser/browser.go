// Package browser talks to the server browser backend that hosts public
// listings. A listing is kept alive by a lease: register once, then heartbeat
// before the refresh deadline, and delete it on shutdown.
package browser

import (
	"context"

	"github.com/iudanet/gamebeacon/pkg/api"
)

//go:generate moq -out browser_mock.go . Browser

// Browser определяет контракт бэкенда для одного листинга
type Browser interface {
	// Register создает листинг и возвращает ключ, срок аренды и запись сервера
	Register(ctx context.Context, localIP string, info api.ServerInfo) (*api.RegisterServerResponse, error)

	// Update отправляет живые поля и возвращает новый срок аренды
	Update(ctx context.Context, server api.ResponseServer, key string) (float64, error)

	// Heartbeat продлевает аренду и возвращает новый срок
	Heartbeat(ctx context.Context, server api.ResponseServer, key string) (float64, error)

	// Delete удаляет листинг
	Delete(ctx context.Context, server api.ResponseServer, key string) error
}
