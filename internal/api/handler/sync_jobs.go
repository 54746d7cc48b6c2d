package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/adaudit/campaign-audit-api/internal/scheduler"
	"github.com/adaudit/campaign-audit-api/pkg/apiErrors"
)

// ListSyncJobs devolve a configuração e o estado de todos os jobs registrados.
func ListSyncJobs(jobs *scheduler.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, jobs.Status())
	}
}

// RunSyncJob dispara uma execução manual síncrona. O corpo da resposta é
// sempre o resultado da execução; o status HTTP reflete o desfecho: 200 para
// sucesso total, 207 para sucesso parcial, 500 para falha e 409 quando o job
// já está em execução.
func RunSyncJob(jobs *scheduler.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do job não informado", nil)
			return
		}

		logrus.WithField("job", name).Info("Execução manual de job solicitada")

		result, err := jobs.RunJobNow(name)

		switch {
		case errors.Is(err, scheduler.ErrJobNotFound):
			apiErrors.WriteError(w, apiErrors.ErrJobNotFound, "Job não encontrado", map[string]string{"job": name})
			return
		case errors.Is(err, scheduler.ErrJobAlreadyRunning):
			apiErrors.WriteError(w, apiErrors.ErrJobAlreadyRunning, "Job já em execução", map[string]string{"job": name})
			return
		}

		if result == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Execução não produziu resultado", nil)
			return
		}

		writeJSON(w, statusForResult(result), result)
	}
}

// EnableSyncJob habilita o agendamento do job.
func EnableSyncJob(jobs *scheduler.Service) http.HandlerFunc {
	return toggleSyncJob(jobs.EnableJob)
}

// DisableSyncJob desabilita o agendamento do job sem removê-lo do registro.
func DisableSyncJob(jobs *scheduler.Service) http.HandlerFunc {
	return toggleSyncJob(jobs.DisableJob)
}

func toggleSyncJob(toggle func(name string) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do job não informado", nil)
			return
		}

		if !toggle(name) {
			apiErrors.WriteError(w, apiErrors.ErrJobNotFound, "Job não encontrado", map[string]string{"job": name})
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func statusForResult(result *domain.SyncResult) int {
	switch result.Status {
	case domain.SyncSucceeded:
		return http.StatusOK
	case domain.SyncPartiallySucceeded:
		return http.StatusMultiStatus
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Warn("Erro ao serializar resposta")
	}
}
