package api

import (
	"time"

	"go.uber.org/zap"

	"manufacturing-backend/internal/device"
	"manufacturing-backend/internal/integrity"
	"manufacturing-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	guard    *integrity.Guard
	device   *device.Facade
	log      *zap.Logger
	basePath string
	version  string
	now      func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, guard *integrity.Guard, facade *device.Facade, log *zap.Logger, opts Options) *Handler {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		store:    s,
		guard:    guard,
		device:   facade,
		log:      log,
		basePath: opts.BasePath,
		version:  opts.Version,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}
