package registration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/gamebeacon/internal/a2s"
	"github.com/iudanet/gamebeacon/internal/browser"
	"github.com/iudanet/gamebeacon/pkg/api"
)

// Factory создает регистрации для одного игрового сервера
type Factory struct {
	browser browser.Browser
	logger  *slog.Logger
	now     func() time.Time
	static  api.StaticServerInfo
	localIP string
	margin  time.Duration
}

// NewFactory создает фабрику. static - метаданные, отправляемые при каждой
// регистрации; непустое static.Name важнее имени из A2S
func NewFactory(b browser.Browser, static api.StaticServerInfo, localIP string, margin time.Duration, logger *slog.Logger) *Factory {
	if margin < 0 {
		margin = 0
	}
	return &Factory{
		browser: b,
		logger:  logger,
		now:     time.Now,
		static:  static,
		localIP: localIP,
		margin:  margin,
	}
}

// ServerInfo собирает листинг для снимка
func (f *Factory) ServerInfo(info *a2s.Info) api.ServerInfo {
	static := f.static
	if static.Name == "" {
		static.Name = info.Name
	}
	return api.ServerInfo{
		StaticServerInfo: static,
		CurrentMap:       info.Map,
		PlayerCount:      int(info.Players),
		MaxPlayers:       int(info.MaxPlayers),
	}
}

// Make регистрирует сервер и запускает heartbeat.
// onDeath вызывается, если heartbeat позже не удастся
func (f *Factory) Make(ctx context.Context, info *a2s.Info, onDeath DeathFunc) (*Registration, error) {
	resp, err := f.browser.Register(ctx, f.localIP, f.ServerInfo(info))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	f.logger.Info("Server registered",
		"server_id", resp.Server.UniqueID,
		"refresh_before", resp.RefreshBefore)

	return newRegistration(f.browser, resp, info, f.static.Name, f.margin, f.now, onDeath, f.logger), nil
}
