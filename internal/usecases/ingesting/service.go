package ingesting

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adaudit/campaign-audit-api/infrastructure/repository"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/adaudit/campaign-audit-api/pkg/retry"
	"github.com/adaudit/campaign-audit-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Ingester executa uma rodada completa de ingestão do feed exportado.
type Ingester interface {
	Run(ctx context.Context) (*domain.SyncResult, error)
}

// Transactor abre a transação de cada lote de inserção.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

// Service implementa a ingestão em etapas: download, transformação, inserção
// em lotes transacionais, verificação por contagem e, por fim, a troca dos
// lotes antigos. A ordem garante que as linhas novas já estão verificadas no
// banco antes de qualquer remoção.
type Service struct {
	cfg        *config.Config
	db         Transactor
	metricRepo repository.MetricRowRepository
	httpClient *http.Client
	retryBase  time.Duration
}

func NewService(
	cfg *config.Config,
	db Transactor,
	metricRepo repository.MetricRowRepository,
) *Service {
	timeout := time.Duration(cfg.Feed.DownloadTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Service{
		cfg:        cfg,
		db:         db,
		metricRepo: metricRepo,
		httpClient: &http.Client{Timeout: timeout},
		retryBase:  retry.StorageBase,
	}
}

// Run executa a pipeline completa. Erros de download e transformação total
// são fatais; falhas de lote individuais são registradas e a execução segue
// com os lotes restantes.
func (s *Service) Run(ctx context.Context) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		StartedAt: time.Now(),
		Status:    domain.SyncFailed,
	}

	syncBatchID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id do lote de sincronização")
	}
	result.SyncBatchID = syncBatchID

	logrus.WithFields(logrus.Fields{
		"sync_batch": syncBatchID,
		"source":     s.cfg.Feed.Source,
	}).Info("Iniciando ingestão do feed")

	records, err := s.download(ctx)
	if err != nil {
		result.AddError(fmt.Sprintf("erro no download do feed: %v", err))
		result.FinishedAt = time.Now()
		return result, err
	}

	if len(records) > 0 {
		result.TotalDownloaded = len(records) - 1 // desconta o cabeçalho
	}

	rows, failures := transformRecords(records, s.cfg.Feed.Source, syncBatchID)
	for _, failure := range failures {
		result.AddWarning(failure)
		result.TotalFailed++
	}
	result.TotalProcessed = len(rows)

	s.insertChunks(ctx, rows, result)

	s.verify(result)

	s.replaceOlderBatches(result)

	result.FinishedAt = time.Now()
	result.ComputeCompletion()
	s.classify(result)

	logrus.WithFields(logrus.Fields{
		"sync_batch": syncBatchID,
		"downloaded": result.TotalDownloaded,
		"inserted":   result.TotalInserted,
		"failed":     result.TotalFailed,
		"completion": result.CompletionPercentage,
		"status":     result.Status,
		"duration":   result.FinishedAt.Sub(result.StartedAt).String(),
	}).Info("Ingestão do feed concluída")

	return result, nil
}

// download baixa o export e o decodifica como CSV. Alguns provedores
// respondem uma página HTML de erro com status 200; o corpo começando com
// '<' é tratado como falha fatal.
func (s *Service) download(ctx context.Context) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Feed.ExportURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao montar requisição do feed")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao baixar o feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download do feed retornou status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o corpo do feed")
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return nil, fmt.Errorf("o export do feed retornou HTML em vez de CSV")
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar o CSV do feed")
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("o export do feed veio vazio")
	}

	return records, nil
}

// insertChunks grava as linhas em lotes, cada lote em sua própria transação
// com retry. Um lote que esgota as tentativas é registrado como falho e os
// lotes seguintes ainda são tentados.
func (s *Service) insertChunks(ctx context.Context, rows []*domain.MetricRow, result *domain.SyncResult) {
	chunkSize := s.cfg.Feed.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1000
	}

	for start, index := 0, 1; start < len(rows); start, index = start+chunkSize, index+1 {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		batch := domain.BatchResult{Index: index, Processed: len(chunk)}

		attempts := 0
		err := retry.Do(func() error {
			attempts++
			return s.db.RunInTransaction(ctx, func(tx *sql.Tx) error {
				inserted, err := s.metricRepo.InsertBatch(ctx, tx, chunk)
				if err != nil {
					return err
				}

				batch.Inserted = inserted
				return nil
			})
		}, retry.Options{
			MaxRetries: s.cfg.Feed.MaxRetries,
			Base:       s.retryBase,
			Scope:      "ingesting.insert",
		})

		batch.Retries = attempts - 1

		if err != nil {
			batch.Success = false
			batch.Inserted = 0
			batch.Error = err.Error()

			result.AddError(fmt.Sprintf("erro ao inserir o lote %d: %v", index, err))
			result.TotalFailed += len(chunk)
		} else {
			batch.Success = true
			result.TotalInserted += batch.Inserted
		}

		result.Batches = append(result.Batches, batch)
	}
}

// verify confere no banco a contagem de linhas carimbadas com o lote atual.
// Divergência vira aviso; a contagem do banco é a que vale.
func (s *Service) verify(result *domain.SyncResult) {
	if result.TotalInserted == 0 {
		return
	}

	counted, err := s.metricRepo.CountBySyncBatch(result.SyncBatchID)
	if err != nil {
		result.AddWarning(fmt.Sprintf("erro na verificação por contagem: %v", err))
		return
	}

	if counted != result.TotalInserted {
		result.AddWarning(fmt.Sprintf(
			"verificação divergente: %d linhas contadas no banco, %d inseridas",
			counted, result.TotalInserted,
		))
		result.TotalInserted = counted
	}
}

// replaceOlderBatches remove os lotes anteriores da mesma fonte. Só executa
// quando pelo menos um lote desta rodada foi gravado, para nunca trocar
// dados existentes por uma rodada vazia.
func (s *Service) replaceOlderBatches(result *domain.SyncResult) {
	if result.TotalInserted == 0 {
		return
	}

	deleted, err := s.metricRepo.DeleteOlderBatches(s.cfg.Feed.Source, result.SyncBatchID)
	if err != nil {
		result.AddError(fmt.Sprintf("erro ao remover lotes antigos: %v", err))
		return
	}

	logrus.WithFields(logrus.Fields{
		"sync_batch": result.SyncBatchID,
		"deleted":    deleted,
	}).Info("Lotes antigos removidos")
}

// classify fecha o status pelo desfecho dos lotes. Linhas rejeitadas na
// transformação já viraram avisos e contam em TotalFailed, mas não rebaixam o
// status: só falha de lote (ou de remoção dos lotes antigos) faz isso.
func (s *Service) classify(result *domain.SyncResult) {
	chunksOK := true
	for _, batch := range result.Batches {
		if !batch.Success {
			chunksOK = false
			break
		}
	}

	switch {
	case chunksOK && len(result.Errors) == 0 && result.TotalInserted > 0:
		result.Status = domain.SyncSucceeded
	case result.TotalInserted > 0:
		result.Status = domain.SyncPartiallySucceeded
	default:
		result.Status = domain.SyncFailed
	}
}
