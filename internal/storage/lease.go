// Package storage defines local persistence of the active listing lease.
package storage

import (
	"context"

	"github.com/iudanet/gamebeacon/pkg/api"
)

//go:generate moq -out lease_mock.go . LeaseStorage

// LeaseStorage keeps at most one lease: the listing this process currently
// owns. A lease left behind by a crash is deleted from the backend on the
// next start.
type LeaseStorage interface {
	// SaveLease сохраняет аренду, заменяя предыдущую
	SaveLease(ctx context.Context, lease *Lease) error

	// GetLease получает сохранённую аренду
	// Returns ErrLeaseNotFound if none is stored
	GetLease(ctx context.Context) (*Lease, error)

	// DeleteLease удаляет сохранённую аренду
	// Returns ErrLeaseNotFound if none is stored
	DeleteLease(ctx context.Context) error
}

// Lease - сохранённая регистрация листинга
type Lease struct {
	Server        api.ResponseServer `json:"server"`
	Key           string             `json:"key"`
	BackendURL    string             `json:"backend_url"`
	RefreshBefore float64            `json:"refresh_before"`
	SavedAt       int64              `json:"saved_at"`
}
