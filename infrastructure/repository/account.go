package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/adaudit/campaign-audit-api/infrastructure/database/postgres"
	"github.com/adaudit/campaign-audit-api/internal/domain"
)

const (
	accountsTable = "ad_accounts a"
)

type AccountRepository interface {
	GetAccountByID(accountID string) (*domain.AdAccount, error)
	ListAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByID(accountID string) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("a.id, a.external_id, a.name, a.status").
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := a.conn.QueryRow(query, args...)

	acc := &domain.AdAccount{}
	if err := row.Scan(&acc.ID, &acc.ExternalID, &acc.Name, &acc.Status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	statuses := make([]string, 0, len(availableStatus))
	for _, status := range availableStatus {
		statuses = append(statuses, string(status))
	}

	query, args, err := squirrel.
		Select("a.id, a.external_id, a.name, a.status").
		From(accountsTable).
		Where(squirrel.Eq{"a.status": statuses}).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc := &domain.AdAccount{}
		if err := rows.Scan(&acc.ID, &acc.ExternalID, &acc.Name, &acc.Status); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}
