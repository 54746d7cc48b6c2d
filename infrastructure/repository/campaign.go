package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/adaudit/campaign-audit-api/infrastructure/database/postgres"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/lib/pq"
)

const (
	campaignsTable = "campaigns"
	adGroupsTable  = "ad_groups"
	adsTable       = "ads"
)

// CampaignRepository persiste a hierarquia de entidades sincronizadas da
// plataforma. Upserts por external_id: re-sincronizações atualizam em vez de
// duplicar.
type CampaignRepository interface {
	SaveCampaigns(accountID string, campaigns []*domain.Campaign) error
	SaveAdGroups(adGroups []*domain.AdGroup) error
	SaveAds(ads []*domain.Ad) error
	ListAdImageURLs(accountID string) (map[string]string, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) SaveCampaigns(accountID string, campaigns []*domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	builder := squirrel.StatementBuilder.
		Insert(campaignsTable).
		Columns("id", "external_id", "account_id", "name", "status", "daily_budget").
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				daily_budget = EXCLUDED.daily_budget,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	for _, c := range campaigns {
		builder = builder.Values(c.ID, c.ExternalID, accountID, c.Name, c.Status, c.DailyBudget)
	}

	return r.exec(builder)
}

func (r *campaignRepository) SaveAdGroups(adGroups []*domain.AdGroup) error {
	if len(adGroups) == 0 {
		return nil
	}

	builder := squirrel.StatementBuilder.
		Insert(adGroupsTable).
		Columns("id", "external_id", "campaign_id", "name", "status", "impressions", "clicks", "spend").
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				spend = EXCLUDED.spend,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	for _, g := range adGroups {
		builder = builder.Values(g.ID, g.ExternalID, g.CampaignID, g.Name, g.Status, g.Impressions, g.Clicks, g.Spend)
	}

	return r.exec(builder)
}

func (r *campaignRepository) SaveAds(ads []*domain.Ad) error {
	if len(ads) == 0 {
		return nil
	}

	builder := squirrel.StatementBuilder.
		Insert(adsTable).
		Columns("id", "external_id", "ad_group_id", "name", "status", "image_url", "impressions", "clicks", "spend").
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				image_url = COALESCE(EXCLUDED.image_url, ads.image_url),
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				spend = EXCLUDED.spend,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	for _, ad := range ads {
		builder = builder.Values(ad.ID, ad.ExternalID, ad.AdGroupID, ad.Name, ad.Status, ad.ImageURL, ad.Impressions, ad.Clicks, ad.Spend)
	}

	return r.exec(builder)
}

// ListAdImageURLs retorna external_id -> image_url dos anúncios da conta que
// já têm criativo armazenado. Permite pular o download em re-sincronizações.
func (r *campaignRepository) ListAdImageURLs(accountID string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("ads.external_id", "ads.image_url").
		From(adsTable).
		Join("ad_groups ON ad_groups.id = ads.ad_group_id").
		Join("campaigns ON campaigns.id = ad_groups.campaign_id").
		Where(squirrel.Eq{"campaigns.account_id": accountID}).
		Where(squirrel.NotEq{"ads.image_url": nil}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]string)
	for rows.Next() {
		var externalID, imageURL string
		if err := rows.Scan(&externalID, &imageURL); err != nil {
			return nil, fmt.Errorf("erro ao escanear image_url: %w", err)
		}
		urls[externalID] = imageURL
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return urls, nil
}

func (r *campaignRepository) exec(builder squirrel.InsertBuilder) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
