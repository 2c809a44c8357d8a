package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gamebeacon/pkg/api"
)

func TestNullBrowser(t *testing.T) {
	b := NewNullBrowser(60)
	b.now = func() time.Time { return time.Unix(1000, 0) }
	ctx := context.Background()

	info := api.ServerInfo{StaticServerInfo: api.StaticServerInfo{Name: "local"}}
	resp, err := b.Register(ctx, "10.0.0.2", info)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Key)
	assert.NotEmpty(t, resp.Server.UniqueID)
	assert.Equal(t, float64(1060), resp.RefreshBefore)
	assert.Equal(t, "10.0.0.2", resp.Server.LocalIPAddress)
	assert.Equal(t, "local", resp.Server.Name)

	other, err := b.Register(ctx, "10.0.0.2", info)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Server.UniqueID, other.Server.UniqueID)

	refresh, err := b.Heartbeat(ctx, resp.Server, resp.Key)
	require.NoError(t, err)
	assert.Equal(t, float64(1060), refresh)

	refresh, err = b.Update(ctx, resp.Server, resp.Key)
	require.NoError(t, err)
	assert.Equal(t, float64(1060), refresh)

	assert.NoError(t, b.Delete(ctx, resp.Server, resp.Key))
}
