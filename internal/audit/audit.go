// Package audit records security-relevant events. Recording is fire and
// forget: a sink failure is counted and logged but never changes the outcome
// of the operation being audited.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"pritapia/internal/domain"
	"pritapia/internal/observability/metrics"
	"pritapia/internal/store"
)

type Entry struct {
	Module   string
	Actor    string
	Details  string
	IP       string
	Metadata map[string]any
}

type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// StoreRecorder persists entries as audit_logs rows, one per event, in the
// legacy row shape (action is "<module> operation").
type StoreRecorder struct {
	Store *store.Store
}

func NewStoreRecorder(st *store.Store) *StoreRecorder {
	return &StoreRecorder{Store: st}
}

func (r *StoreRecorder) Record(ctx context.Context, e Entry) {
	row := &domain.AuditLog{
		ID:        domain.NewID(),
		Action:    e.Module + " operation",
		Actor:     e.Actor,
		Timestamp: time.Now().UTC(),
		Details:   e.Details,
		Module:    e.Module,
		IPAddress: e.IP,
	}
	if len(e.Metadata) > 0 {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			row.Metadata = domain.JSON(raw)
		}
	}
	if err := r.Store.AuditLogs().Create(ctx, row); err != nil {
		metrics.AuditWriteFailuresTotal.WithLabelValues(e.Module).Inc()
		slog.Warn("audit write failed", "module", e.Module, "actor", e.Actor, "error", err)
	}
}
