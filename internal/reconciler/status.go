package reconciler

import (
	"github.com/iudanet/gamebeacon/internal/a2s"
	"github.com/iudanet/gamebeacon/pkg/api"
)

// Status is a point-in-time view of the poller and the listing. Fields are
// read independently and may be momentarily inconsistent with each other.
type Status struct {
	LastInfo       *a2s.Info           `json:"last_info,omitempty"`
	Server         *api.ResponseServer `json:"server,omitempty"`
	LastProbeError string              `json:"last_probe_error,omitempty"`
	RefreshBefore  float64             `json:"refresh_before,omitempty"`
	Healthy        bool                `json:"healthy"`
	Registered     bool                `json:"registered"`
}

// Status возвращает текущий статус, не дожидаясь запросов к бэкенду
func (r *Reconciler) Status() Status {
	status := Status{
		LastInfo: r.watcher.LastInfo(),
		Healthy:  r.watcher.Healthy(),
	}
	if err := r.watcher.LastError(); err != nil && !status.Healthy {
		status.LastProbeError = err.Error()
	}

	if reg := r.active.Load(); reg != nil && !reg.IsDead() {
		server := reg.Server()
		status.Server = &server
		status.Registered = true
		status.RefreshBefore = reg.RefreshBefore()
	}

	return status
}
