package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform"
	"github.com/adaudit/campaign-audit-api/infrastructure/repository"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/adaudit/campaign-audit-api/internal/usecases/ingesting"
)

// Nomes dos jobs registrados pelo processo.
const (
	JobPlatformSync  = "platform-sync"
	JobFeedIngestion = "feed-ingestion"
	JobHealthCheck   = "health-check"
)

// PlatformSyncJob sincroniza todas as contas ativas na plataforma e agrega
// os resultados individuais em um único resultado de execução.
func PlatformSyncJob(
	accountRepo repository.AccountRepository,
	syncer adsplatform.AccountSyncer,
) JobHandler {
	return func(ctx context.Context) (*domain.SyncResult, error) {
		aggregate := &domain.SyncResult{
			StartedAt: time.Now(),
			Status:    domain.SyncSucceeded,
		}

		accounts, err := accountRepo.ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive})
		if err != nil {
			aggregate.Status = domain.SyncFailed
			aggregate.AddError(fmt.Sprintf("erro ao listar contas ativas: %v", err))
			aggregate.FinishedAt = time.Now()
			return aggregate, err
		}

		if len(accounts) == 0 {
			logrus.Info("Nenhuma conta ativa para sincronizar na plataforma")
			aggregate.FinishedAt = time.Now()
			return aggregate, nil
		}

		failed := 0
		for _, account := range accounts {
			result, err := syncer.SyncAccount(ctx, account)
			if result != nil {
				mergeResults(aggregate, result, account.Name)
			}
			if err != nil {
				failed++
				logrus.WithFields(logrus.Fields{
					"account_id": account.ID,
					"error":      err,
				}).Error("Erro na sincronização da conta")
			}
		}

		aggregate.FinishedAt = time.Now()
		aggregate.ComputeCompletion()

		switch {
		case failed == 0 && len(aggregate.Errors) == 0:
			aggregate.Status = domain.SyncSucceeded
		case failed < len(accounts):
			aggregate.Status = domain.SyncPartiallySucceeded
		default:
			aggregate.Status = domain.SyncFailed
		}

		return aggregate, nil
	}
}

// FeedIngestionJob executa uma rodada da pipeline de ingestão do feed.
func FeedIngestionJob(ingester ingesting.Ingester) JobHandler {
	return func(ctx context.Context) (*domain.SyncResult, error) {
		return ingester.Run(ctx)
	}
}

// HealthCheckJob verifica a idade da linha mais recente do feed. É apenas
// consultivo: dado velho gera aviso em log e no resultado, nunca erro.
func HealthCheckJob(cfg *config.Config, metricRepo repository.MetricRowRepository) JobHandler {
	return func(ctx context.Context) (*domain.SyncResult, error) {
		result := &domain.SyncResult{
			StartedAt: time.Now(),
			Status:    domain.SyncSucceeded,
		}

		latest, err := metricRepo.LatestIngestedAt(domain.MetricSourceFeed)
		if err != nil {
			result.AddWarning(fmt.Sprintf("erro ao consultar a última ingestão: %v", err))
			result.FinishedAt = time.Now()
			return result, nil
		}

		staleness := time.Duration(cfg.HealthCheck.StalenessHours) * time.Hour

		switch {
		case latest == nil:
			result.AddWarning("nenhuma linha do feed encontrada no banco")
			logrus.Warn("Saúde da ingestão: nenhuma linha do feed no banco")
		case time.Since(*latest) > staleness:
			msg := fmt.Sprintf(
				"última ingestão do feed em %s, acima do limite de %dh",
				latest.Format(time.RFC3339), cfg.HealthCheck.StalenessHours,
			)
			result.AddWarning(msg)
			logrus.WithFields(logrus.Fields{
				"latest":    latest.Format(time.RFC3339),
				"limit_hrs": cfg.HealthCheck.StalenessHours,
			}).Warn("Saúde da ingestão: dados do feed estagnados")
		default:
			logrus.WithField("latest", latest.Format(time.RFC3339)).Debug("Saúde da ingestão: dados do feed recentes")
		}

		result.FinishedAt = time.Now()
		return result, nil
	}
}

// mergeResults soma o resultado de uma conta no agregado da execução.
func mergeResults(aggregate, result *domain.SyncResult, accountName string) {
	aggregate.TotalDownloaded += result.TotalDownloaded
	aggregate.TotalProcessed += result.TotalProcessed
	aggregate.TotalInserted += result.TotalInserted
	aggregate.TotalSkipped += result.TotalSkipped
	aggregate.TotalFailed += result.TotalFailed

	for _, msg := range result.Errors {
		aggregate.AddError(fmt.Sprintf("%s: %s", accountName, msg))
	}
	for _, msg := range result.Warnings {
		aggregate.AddWarning(fmt.Sprintf("%s: %s", accountName, msg))
	}
}
