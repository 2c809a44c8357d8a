package browser

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gamebeacon/pkg/api"
)

// NullBrowser используется, когда бэкенд не настроен.
// Никогда не возвращает ошибку, следующий heartbeat через RefreshSeconds
type NullBrowser struct {
	now            func() time.Time
	RefreshSeconds float64
}

// NewNullBrowser создает NullBrowser
func NewNullBrowser(refreshSeconds float64) *NullBrowser {
	return &NullBrowser{RefreshSeconds: refreshSeconds, now: time.Now}
}

func (b *NullBrowser) refreshBefore() float64 {
	return float64(b.now().Unix()) + b.RefreshSeconds
}

// Register возвращает локально созданный листинг
func (b *NullBrowser) Register(ctx context.Context, localIP string, info api.ServerInfo) (*api.RegisterServerResponse, error) {
	return &api.RegisterServerResponse{
		Key:           uuid.NewString(),
		RefreshBefore: b.refreshBefore(),
		Server: api.ResponseServer{
			UniqueServerInfo: api.UniqueServerInfo{
				ServerInfo:    info,
				UniqueID:      uuid.NewString(),
				LastHeartbeat: float64(b.now().Unix()),
			},
			LocalIPAddress: localIP,
			IPAddress:      "127.0.0.1",
		},
	}, nil
}

// Update всегда успешен
func (b *NullBrowser) Update(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
	return b.refreshBefore(), nil
}

// Heartbeat всегда успешен
func (b *NullBrowser) Heartbeat(ctx context.Context, server api.ResponseServer, key string) (float64, error) {
	return b.refreshBefore(), nil
}

// Delete всегда успешен
func (b *NullBrowser) Delete(ctx context.Context, server api.ResponseServer, key string) error {
	return nil
}
