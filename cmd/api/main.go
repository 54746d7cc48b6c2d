package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/adaudit/campaign-audit-api/infrastructure/database/postgres"
	"github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform"
	"github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/adsclient"
	"github.com/adaudit/campaign-audit-api/infrastructure/integrator/assetstore"
	"github.com/adaudit/campaign-audit-api/infrastructure/repository"
	"github.com/adaudit/campaign-audit-api/internal/api"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/adaudit/campaign-audit-api/internal/scheduler"
	"github.com/adaudit/campaign-audit-api/internal/usecases/ingesting"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	metricRepo := repository.NewMetricRowRepository(pgConn)

	tokenManager := adsclient.NewTokenManager(cfg)
	go tokenManager.StartAutoRefresh()
	defer tokenManager.StopAutoRefresh()

	adsClient := adsclient.NewClient(cfg, tokenManager)
	assetClient := assetstore.NewClient(cfg)

	platformSyncer := adsplatform.New(cfg, adsClient, campaignRepo, assetClient)
	feedIngester := ingesting.NewService(cfg, pgConn, metricRepo)

	jobs := scheduler.NewService(schedulerLocation(cfg.App.TimeZone))

	registerJob(jobs, domain.JobConfig{
		Name:         scheduler.JobPlatformSync,
		CronSchedule: cfg.PlatformSync.CronSchedule,
		Enabled:      cfg.PlatformSync.Enabled,
		Description:  "Sincroniza campanhas, grupos e anúncios da plataforma",
	}, scheduler.PlatformSyncJob(accountRepo, platformSyncer))

	registerJob(jobs, domain.JobConfig{
		Name:         scheduler.JobFeedIngestion,
		CronSchedule: cfg.FeedSync.CronSchedule,
		Enabled:      cfg.FeedSync.Enabled,
		Description:  "Baixa e ingere o feed tabular de métricas",
	}, scheduler.FeedIngestionJob(feedIngester))

	registerJob(jobs, domain.JobConfig{
		Name:         scheduler.JobHealthCheck,
		CronSchedule: cfg.HealthCheck.CronSchedule,
		Enabled:      cfg.HealthCheck.Enabled,
		Description:  "Verifica a atualidade dos dados ingeridos",
	}, scheduler.HealthCheckJob(cfg, metricRepo))

	jobs.StartAll()
	defer jobs.StopAll()

	server, err := api.New(cfg, pgConn, jobs)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

func registerJob(jobs *scheduler.Service, cfg domain.JobConfig, handler scheduler.JobHandler) {
	if err := jobs.RegisterJob(cfg, handler); err != nil {
		logrus.WithError(err).Fatalf("Erro ao registrar o job %s", cfg.Name)
	}
}

func schedulerLocation(tz string) *time.Location {
	if tz == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		logrus.WithError(err).Warnf("Fuso horário inválido: %s, usando o local", tz)
		return time.Local
	}

	return loc
}
