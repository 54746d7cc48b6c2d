package handler

import (
	"net/http"

	"github.com/adaudit/campaign-audit-api/infrastructure/database/postgres"
	"github.com/adaudit/campaign-audit-api/internal/api/handler/router"
	"github.com/adaudit/campaign-audit-api/internal/scheduler"
)

func Healthcheck(db *postgres.Connection) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

// SyncJobs expõe a superfície de status e disparo manual dos jobs de
// sincronização.
func SyncJobs(jobs *scheduler.Service) []router.Route {
	return []router.Route{
		{
			Path:    "/sync/jobs",
			Method:  http.MethodGet,
			Handler: ListSyncJobs(jobs),
		},
		{
			Path:    "/sync/jobs/:name/run",
			Method:  http.MethodPost,
			Handler: RunSyncJob(jobs),
		},
		{
			Path:    "/sync/jobs/:name/enable",
			Method:  http.MethodPost,
			Handler: EnableSyncJob(jobs),
		},
		{
			Path:    "/sync/jobs/:name/disable",
			Method:  http.MethodPost,
			Handler: DisableSyncJob(jobs),
		},
	}
}
