package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/adaudit/campaign-audit-api/infrastructure/database/postgres"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// O created_at precisa ir na própria inserção: o health check consulta
// MAX(created_at) e não pode depender de um default do banco.
func TestMetricRowRepository_InsertBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMetricRowRepository(&postgres.Connection{DB: db})

	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []*domain.MetricRow{
		{
			ID:           "m1",
			Date:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			AccountName:  "Loja A",
			CampaignName: "Campanha A",
			Spend:        "456.78",
			Source:       domain.MetricSourceFeed,
			SyncBatchID:  "batch1",
			CreatedAt:    createdAt,
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metric_rows \(.*created_at\) VALUES`).
		WithArgs(
			"m1", "2026-03-01", "Loja A", "Campanha A", "", "",
			0, 0, "", "", 0, "", "456.78", nil,
			domain.MetricSourceFeed, "", "batch1", createdAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.Begin()
	require.NoError(t, err)

	inserted, err := repo.InsertBatch(context.Background(), tx, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
