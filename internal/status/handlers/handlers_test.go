package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gamebeacon/internal/a2s"
	"github.com/iudanet/gamebeacon/internal/history"
	"github.com/iudanet/gamebeacon/internal/reconciler"
	"github.com/iudanet/gamebeacon/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticSource reconciler.Status

func (s staticSource) Status() reconciler.Status {
	return reconciler.Status(s)
}

func TestHealthHandler_Health(t *testing.T) {
	handler := NewHealthHandler("1.2.3", setupTestLogger())

	w := httptest.NewRecorder()
	handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	resp := w.Result()
	defer func() {
		assert.NoError(t, resp.Body.Close())
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var healthResp HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&healthResp))
	assert.Equal(t, "ok", healthResp.Status)
	assert.Equal(t, "1.2.3", healthResp.Version)
}

func TestStatusHandler_Status(t *testing.T) {
	source := staticSource{
		Healthy:       true,
		Registered:    true,
		RefreshBefore: 1700000065,
		LastInfo:      &a2s.Info{Name: "srv", Map: "FFA_Courtyard", Players: 3, MaxPlayers: 64},
		Server: &api.ResponseServer{
			UniqueServerInfo: api.UniqueServerInfo{UniqueID: "srv-1"},
		},
	}
	handler := NewStatusHandler(source, nil, setupTestLogger())

	w := httptest.NewRecorder()
	handler.Status(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["healthy"])
	assert.Equal(t, true, raw["registered"])
	assert.Equal(t, "srv-1", raw["server"].(map[string]any)["unique_id"])
	assert.Equal(t, "FFA_Courtyard", raw["last_info"].(map[string]any)["map"])
}

func TestStatusHandler_Events(t *testing.T) {
	events := []*history.Event{
		{ID: 2, Kind: history.EventUpdated, ServerID: "srv-1", Players: 4},
		{ID: 1, Kind: history.EventRegistered, ServerID: "srv-1"},
	}

	tests := []struct {
		recorder       *history.RecorderMock
		name           string
		query          string
		expectedLimit  int
		expectedStatus int
		expectedCount  int
	}{
		{
			name:           "Default limit",
			query:          "",
			expectedLimit:  defaultEventsLimit,
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Explicit limit",
			query:          "?limit=1",
			expectedLimit:  1,
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Limit is capped",
			query:          "?limit=100000",
			expectedLimit:  maxEventsLimit,
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Invalid limit",
			query:          "?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Zero limit",
			query:          "?limit=0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Storage failure",
			query: "",
			recorder: &history.RecorderMock{
				RecentFunc: func(ctx context.Context, limit int) ([]*history.Event, error) {
					return nil, errors.New("disk I/O error")
				},
			},
			expectedLimit:  defaultEventsLimit,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tt.recorder
			if recorder == nil {
				recorder = &history.RecorderMock{
					RecentFunc: func(ctx context.Context, limit int) ([]*history.Event, error) {
						return events, nil
					},
				}
			}
			handler := NewStatusHandler(staticSource{}, recorder, setupTestLogger())

			w := httptest.NewRecorder()
			handler.Events(w, httptest.NewRequest(http.MethodGet, "/api/v1/events"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusOK {
				var errResp api.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				assert.NotEmpty(t, errResp.Error)
				// строка из хранилища не попадает в ответ
				assert.NotContains(t, w.Body.String(), "disk")
				return
			}

			require.Len(t, recorder.RecentCalls(), 1)
			assert.Equal(t, tt.expectedLimit, recorder.RecentCalls()[0].Limit)

			var got []*history.Event
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Len(t, got, tt.expectedCount)
		})
	}
}

func TestStatusHandler_EventsWithoutRecorder(t *testing.T) {
	handler := NewStatusHandler(staticSource{}, nil, setupTestLogger())

	w := httptest.NewRecorder()
	handler.Events(w, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
