package ingesting

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adaudit/campaign-audit-api/infrastructure/repository/mocks"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubConnection executa a função transacional diretamente, sem banco.
type stubConnection struct{}

func (stubConnection) RunInTransaction(_ context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

const feedHeader = "dia,conta,campanha,grupo_de_anuncios,anuncio,impressoes,cliques,cpm,cpc,conversas_iniciadas,custo_por_conversa,valor_gasto,url_anuncio\n"

func newTestPipeline(t *testing.T, exportURL string, chunkSize int) (*Service, *mocks.MockMetricRowRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockMetricRowRepository(ctrl)

	cfg := &config.Config{
		Feed: config.Feed{
			ExportURL:              exportURL,
			Source:                 domain.MetricSourceFeed,
			ChunkSize:              chunkSize,
			DownloadTimeoutSeconds: 5,
			MaxRetries:             1,
		},
	}

	service := NewService(cfg, stubConnection{}, mockRepo)
	service.retryBase = time.Millisecond

	return service, mockRepo
}

func serveCSV(t *testing.T, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestService_Run(t *testing.T) {
	t.Run("linha sem campanha é rejeitada sem rebaixar o status", func(t *testing.T) {
		body := feedHeader +
			"01/03/2026,Loja A,Campanha A,Grupo A,Anúncio A,\"1.234\",56,\"R$ 12,34\",\"R$ 1,10\",7,\"R$ 3,21\",\"R$ 456,78\",https://exemplo.test/a\n" +
			"01/03/2026,Loja A,Campanha A,Grupo A,Anúncio B,500,10,\"R$ 8,00\",\"R$ 0,80\",2,\"R$ 4,00\",abc,\n" +
			"02/03/2026,Loja A,,Grupo B,Anúncio C,100,5,\"R$ 9,00\",\"R$ 0,90\",1,\"R$ 9,00\",\"R$ 9,00\",\n" +
			"2026-03-02,Loja B,Campanha B,Grupo C,Anúncio D,200,8,\"R$ 7,50\",\"R$ 0,75\",3,\"R$ 2,50\",\"R$ 20,00\",\n"
		server := serveCSV(t, body)

		service, mockRepo := newTestPipeline(t, server.URL, 1000)

		var inserted []*domain.MetricRow
		mockRepo.EXPECT().
			InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, rows []*domain.MetricRow) (int, error) {
				inserted = rows
				return len(rows), nil
			})
		mockRepo.EXPECT().CountBySyncBatch(gomock.Any()).Return(3, nil)
		mockRepo.EXPECT().DeleteOlderBatches(domain.MetricSourceFeed, gomock.Any()).Return(int64(7), nil)

		result, err := service.Run(context.Background())
		require.NoError(t, err)

		require.Len(t, inserted, 3)
		assert.Equal(t, 1234, inserted[0].Impressions)
		assert.Equal(t, "456.78", inserted[0].Spend)
		require.NotNil(t, inserted[0].AdURL)
		assert.Equal(t, "https://exemplo.test/a", *inserted[0].AdURL)
		// Valor monetário ilegível normaliza para zero
		assert.Equal(t, "0", inserted[1].Spend)
		assert.Nil(t, inserted[1].AdURL)
		// Os dois formatos de data são aceitos
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), inserted[0].Date)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), inserted[2].Date)

		assert.Equal(t, 4, result.TotalDownloaded)
		assert.Equal(t, 3, result.TotalProcessed)
		assert.Equal(t, 3, result.TotalInserted)
		assert.Equal(t, 1, result.TotalFailed)
		assert.Equal(t, 75.0, result.CompletionPercentage)
		// Rejeição na transformação é aviso; todos os lotes gravaram, então
		// a execução fecha com sucesso total
		assert.Equal(t, domain.SyncSucceeded, result.Status)
		assert.NotEmpty(t, result.Warnings)
		assert.Empty(t, result.Errors)
	})

	t.Run("feed íntegro gera execução com sucesso total", func(t *testing.T) {
		body := feedHeader +
			"01/03/2026,Loja A,Campanha A,Grupo A,Anúncio A,100,5,\"R$ 9,00\",\"R$ 0,90\",1,\"R$ 9,00\",\"R$ 9,00\",\n" +
			"01/03/2026,Loja A,Campanha A,Grupo A,Anúncio B,200,8,\"R$ 7,50\",\"R$ 0,75\",3,\"R$ 2,50\",\"R$ 20,00\",\n"
		server := serveCSV(t, body)

		service, mockRepo := newTestPipeline(t, server.URL, 1000)

		mockRepo.EXPECT().
			InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, rows []*domain.MetricRow) (int, error) {
				return len(rows), nil
			})
		mockRepo.EXPECT().CountBySyncBatch(gomock.Any()).Return(2, nil)
		mockRepo.EXPECT().DeleteOlderBatches(domain.MetricSourceFeed, gomock.Any()).Return(int64(2), nil)

		result, err := service.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, domain.SyncSucceeded, result.Status)
		assert.Equal(t, 100.0, result.CompletionPercentage)
		assert.Empty(t, result.Errors)
	})

	t.Run("falha persistente em um lote não derruba os demais", func(t *testing.T) {
		body := feedHeader +
			"01/03/2026,Loja A,Campanha A,,Anúncio A,1,1,\"R$ 1,00\",\"R$ 1,00\",0,\"R$ 0,00\",\"R$ 1,00\",\n" +
			"01/03/2026,Loja A,Campanha A,,Anúncio B,2,2,\"R$ 1,00\",\"R$ 1,00\",0,\"R$ 0,00\",\"R$ 2,00\",\n" +
			"01/03/2026,Loja A,Campanha A,,Anúncio C,3,3,\"R$ 1,00\",\"R$ 1,00\",0,\"R$ 0,00\",\"R$ 3,00\",\n" +
			"01/03/2026,Loja A,Campanha A,,Anúncio D,4,4,\"R$ 1,00\",\"R$ 1,00\",0,\"R$ 0,00\",\"R$ 4,00\",\n"
		server := serveCSV(t, body)

		service, mockRepo := newTestPipeline(t, server.URL, 2)

		calls := 0
		mockRepo.EXPECT().
			InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, rows []*domain.MetricRow) (int, error) {
				calls++
				if calls == 1 {
					return len(rows), nil
				}
				return 0, errors.New("deadlock detectado")
			}).
			Times(3) // lote 1 + duas tentativas do lote 2
		mockRepo.EXPECT().CountBySyncBatch(gomock.Any()).Return(2, nil)
		mockRepo.EXPECT().DeleteOlderBatches(domain.MetricSourceFeed, gomock.Any()).Return(int64(0), nil)

		result, err := service.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, domain.SyncPartiallySucceeded, result.Status)
		assert.Equal(t, 2, result.TotalInserted)
		assert.Equal(t, 2, result.TotalFailed)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "lote 2")

		require.Len(t, result.Batches, 2)
		assert.True(t, result.Batches[0].Success)
		assert.False(t, result.Batches[1].Success)
		assert.Equal(t, 1, result.Batches[1].Retries)
	})

	t.Run("todos os lotes falhando não remove dados anteriores", func(t *testing.T) {
		body := feedHeader +
			"01/03/2026,Loja A,Campanha A,,Anúncio A,1,1,\"R$ 1,00\",\"R$ 1,00\",0,\"R$ 0,00\",\"R$ 1,00\",\n"
		server := serveCSV(t, body)

		service, mockRepo := newTestPipeline(t, server.URL, 1000)

		mockRepo.EXPECT().
			InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(0, errors.New("conexão recusada")).
			Times(2)

		result, err := service.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, domain.SyncFailed, result.Status)
		assert.Equal(t, 0, result.TotalInserted)
	})

	t.Run("corpo HTML é falha fatal de download", func(t *testing.T) {
		server := serveCSV(t, "<!DOCTYPE html><html><body>login necessário</body></html>")

		service, _ := newTestPipeline(t, server.URL, 1000)

		result, err := service.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTML")
		assert.Equal(t, domain.SyncFailed, result.Status)
	})
}

func TestTransformRecords(t *testing.T) {
	records := [][]string{
		{"dia", "conta", "campanha", "valor_gasto"},
		{"", "Loja A", "Campanha A", "R$ 1,00"},
		{"01/03/2026", "Loja A", "Campanha A", "R$ 1.234,56"},
	}

	rows, failures := transformRecords(records, domain.MetricSourceFeed, "batch1")

	require.Len(t, rows, 1)
	assert.Equal(t, "1234.56", rows[0].Spend)
	assert.Equal(t, "batch1", rows[0].SyncBatchID)
	assert.Equal(t, domain.MetricSourceFeed, rows[0].Source)

	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "linha 2")
}
