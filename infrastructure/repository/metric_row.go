package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/adaudit/campaign-audit-api/infrastructure/database/postgres"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/lib/pq"
)

const (
	metricRowsTable = "metric_rows"
)

type MetricRowRepository interface {
	InsertBatch(ctx context.Context, tx *sql.Tx, rows []*domain.MetricRow) (int, error)
	CountBySyncBatch(syncBatchID string) (int, error)
	DeleteOlderBatches(source, currentSyncBatchID string) (int64, error)
	LatestIngestedAt(source string) (*time.Time, error)
}

type metricRowRepository struct {
	conn *postgres.Connection
}

func NewMetricRowRepository(conn *postgres.Connection) MetricRowRepository {
	return &metricRowRepository{
		conn: conn,
	}
}

// InsertBatch insere um chunk de linhas em uma única instrução, dentro da
// transação fornecida pelo pipeline. Retorna o número de linhas inseridas.
func (r *metricRowRepository) InsertBatch(ctx context.Context, tx *sql.Tx, rows []*domain.MetricRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	builder := squirrel.StatementBuilder.
		Insert(metricRowsTable).
		Columns(
			"id", "date", "account_name", "campaign_name", "ad_group_name", "ad_name",
			"impressions", "clicks", "cpm", "cpc", "conversations",
			"cost_per_conversation", "spend", "ad_url", "source", "status", "sync_batch_id",
			"created_at",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, row := range rows {
		builder = builder.Values(
			row.ID,
			row.Date.Format("2006-01-02"),
			row.AccountName,
			row.CampaignName,
			row.AdGroupName,
			row.AdName,
			row.Impressions,
			row.Clicks,
			row.CPM,
			row.CPC,
			row.Conversations,
			row.CostPerConversation,
			row.Spend,
			row.AdURL,
			row.Source,
			row.Status,
			row.SyncBatchID,
			row.CreatedAt,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return int(inserted), nil
}

// CountBySyncBatch conta as linhas carimbadas com o lote informado. Usado na
// verificação de integridade após a inserção.
func (r *metricRowRepository) CountBySyncBatch(syncBatchID string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(metricRowsTable).
		Where(squirrel.Eq{"sync_batch_id": syncBatchID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar linhas do lote: %w", err)
	}

	return count, nil
}

// DeleteOlderBatches remove as linhas da mesma fonte que pertencem a lotes
// anteriores ao corrente. Só é chamado depois que o lote novo foi confirmado
// presente no banco.
func (r *metricRowRepository) DeleteOlderBatches(source, currentSyncBatchID string) (int64, error) {
	query, args, err := squirrel.
		Delete(metricRowsTable).
		Where(squirrel.Eq{"source": source}).
		Where(squirrel.NotEq{"sync_batch_id": currentSyncBatchID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// LatestIngestedAt retorna o created_at mais recente entre as linhas da
// fonte. Usado pelo health check de frescor dos dados.
func (r *metricRowRepository) LatestIngestedAt(source string) (*time.Time, error) {
	query, args, err := squirrel.
		Select("MAX(created_at)").
		From(metricRowsTable).
		Where(squirrel.Eq{"source": source}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var latest sql.NullTime
	if err := r.conn.QueryRow(query, args...).Scan(&latest); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar última ingestão: %w", err)
	}

	if !latest.Valid {
		return nil, nil
	}

	return &latest.Time, nil
}
