package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adaudit/campaign-audit-api/infrastructure/database/postgres"
)

type healthcheckResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

func HealthcheckHandler(db *postgres.Connection) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := healthcheckResponse{
			Status:   "ok",
			Database: "ok",
			Time:     time.Now().Format(time.RFC3339),
		}

		status := http.StatusOK
		if err := db.Ping(r.Context()); err != nil {
			logrus.WithError(err).Warn("Healthcheck: banco de dados inacessível")
			response.Status = "degraded"
			response.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.WithError(err).Warn("Erro ao responder o healthcheck")
		}
	})
}
