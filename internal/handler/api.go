package handler

import (
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/identity"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	activities *service.ActivityService
	analytics  *service.AnalyticsService
	identity   *identity.Client
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, identityClient *identity.Client) *API {
	return &API{
		db:         gdb,
		activities: service.NewActivityService(gdb),
		analytics:  service.NewAnalyticsService(gdb),
		identity:   identityClient,
	}
}
