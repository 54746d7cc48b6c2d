package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/adaudit/campaign-audit-api/infrastructure/repository/mocks"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_RunJobNow(t *testing.T) {
	t.Run("execução manual devolve o resultado do handler", func(t *testing.T) {
		service := NewService(time.UTC)

		err := service.RegisterJob(domain.JobConfig{
			Name:         "job-teste",
			CronSchedule: "0 3 * * *",
			Enabled:      false,
		}, func(context.Context) (*domain.SyncResult, error) {
			return &domain.SyncResult{Status: domain.SyncSucceeded, TotalInserted: 10}, nil
		})
		require.NoError(t, err)

		result, err := service.RunJobNow("job-teste")
		require.NoError(t, err)
		assert.Equal(t, 10, result.TotalInserted)

		status := service.Status()
		require.Len(t, status, 1)
		assert.Equal(t, domain.JobIdle, status[0].Status)
		assert.NotNil(t, status[0].LastRun)
	})

	t.Run("segunda execução simultânea é rejeitada", func(t *testing.T) {
		service := NewService(time.UTC)

		started := make(chan struct{})
		release := make(chan struct{})

		err := service.RegisterJob(domain.JobConfig{
			Name:         "job-lento",
			CronSchedule: "0 3 * * *",
			Enabled:      false,
		}, func(context.Context) (*domain.SyncResult, error) {
			close(started)
			<-release
			return &domain.SyncResult{Status: domain.SyncSucceeded}, nil
		})
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = service.RunJobNow("job-lento")
		}()

		<-started
		_, err = service.RunJobNow("job-lento")
		assert.ErrorIs(t, err, ErrJobAlreadyRunning)

		close(release)
		wg.Wait()
	})

	t.Run("nome desconhecido retorna ErrJobNotFound", func(t *testing.T) {
		service := NewService(time.UTC)

		_, err := service.RunJobNow("inexistente")
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("handler com erro deixa o job em estado de erro", func(t *testing.T) {
		service := NewService(time.UTC)

		err := service.RegisterJob(domain.JobConfig{
			Name:         "job-falho",
			CronSchedule: "0 3 * * *",
			Enabled:      false,
		}, func(context.Context) (*domain.SyncResult, error) {
			return nil, errors.New("banco indisponível")
		})
		require.NoError(t, err)

		_, err = service.RunJobNow("job-falho")
		require.Error(t, err)

		status := service.Status()
		require.Len(t, status, 1)
		assert.Equal(t, domain.JobError, status[0].Status)

		// Estado de erro não impede a próxima execução
		_, err = service.RunJobNow("job-falho")
		require.Error(t, err)
	})
}

func TestService_EnableDisable(t *testing.T) {
	service := NewService(time.UTC)

	err := service.RegisterJob(domain.JobConfig{
		Name:         "job-teste",
		CronSchedule: "0 3 * * *",
		Enabled:      true,
	}, func(context.Context) (*domain.SyncResult, error) {
		return &domain.SyncResult{Status: domain.SyncSucceeded}, nil
	})
	require.NoError(t, err)

	assert.True(t, service.DisableJob("job-teste"))

	status := service.Status()
	require.Len(t, status, 1)
	assert.False(t, status[0].Enabled)
	assert.Nil(t, status[0].NextRun)

	assert.True(t, service.EnableJob("job-teste"))

	status = service.Status()
	assert.True(t, status[0].Enabled)

	assert.False(t, service.EnableJob("inexistente"))
	assert.False(t, service.DisableJob("inexistente"))
}

func TestHealthCheckJob(t *testing.T) {
	cfg := &config.Config{HealthCheck: config.HealthCheck{StalenessHours: 25}}

	t.Run("dado recente passa sem avisos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockMetricRowRepository(ctrl)

		recent := time.Now().Add(-2 * time.Hour)
		mockRepo.EXPECT().LatestIngestedAt(domain.MetricSourceFeed).Return(&recent, nil)

		result, err := HealthCheckJob(cfg, mockRepo)(context.Background())
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, domain.SyncSucceeded, result.Status)
	})

	t.Run("dado estagnado gera aviso mas não erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockMetricRowRepository(ctrl)

		stale := time.Now().Add(-30 * time.Hour)
		mockRepo.EXPECT().LatestIngestedAt(domain.MetricSourceFeed).Return(&stale, nil)

		result, err := HealthCheckJob(cfg, mockRepo)(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "25h")
		assert.Equal(t, domain.SyncSucceeded, result.Status)
	})

	t.Run("banco vazio gera aviso", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockMetricRowRepository(ctrl)

		mockRepo.EXPECT().LatestIngestedAt(domain.MetricSourceFeed).Return(nil, nil)

		result, err := HealthCheckJob(cfg, mockRepo)(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, result.Warnings)
	})
}
