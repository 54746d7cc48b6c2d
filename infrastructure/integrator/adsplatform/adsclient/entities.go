package adsclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/adaudit/campaign-audit-api/pkg/retry"
	"github.com/sirupsen/logrus"
)

// GetAccountName busca o nome de exibição da conta. Chamado uma vez por
// sincronização.
func (c *AdsClient) GetAccountName(accountID string) (string, error) {
	if err := c.EnsureValidToken(); err != nil {
		return "", fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	requestURL := fmt.Sprintf("%s/act_%s?fields=name", c.Cfg.Platform.URL, accountID)

	var account adsdomain.Account
	err := retry.Do(func() error {
		body, err := c.get(requestURL)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &account)
	}, retry.Options{
		MaxRetries: c.maxRetries(),
		Base:       c.retryBase(),
		Classify:   ClassifyUpstreamError,
		Scope:      "adsclient.account",
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("Erro ao buscar nome da conta")
		return "", err
	}

	return account.Name, nil
}

// GetCampaigns pagina todas as campanhas da conta. updatedSince habilita a
// filtragem incremental no lado do servidor.
func (c *AdsClient) GetCampaigns(accountID string, updatedSince *time.Time, progress ProgressFunc) ([]adsdomain.Campaign, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", "id,name,status,daily_budget,updated_time")
	if updatedSince != nil {
		params.Add("filtering", fmt.Sprintf(
			`[{"field":"updated_time","operator":"GREATER_THAN","value":%d}]`,
			updatedSince.Unix(),
		))
	}

	firstURL := fmt.Sprintf("%s/act_%s/campaigns?%s", c.Cfg.Platform.URL, accountID, params.Encode())

	return FetchAllPages[adsdomain.Campaign](c, firstURL, progress)
}

// GetAdGroups pagina todos os grupos de anúncios da conta inteira em uma
// única chamada paginada, em vez de iterar campanha a campanha.
func (c *AdsClient) GetAdGroups(accountID string, progress ProgressFunc) ([]adsdomain.AdGroup, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", "id,name,status,campaign_id")

	firstURL := fmt.Sprintf("%s/act_%s/adsets?%s", c.Cfg.Platform.URL, accountID, params.Encode())

	return FetchAllPages[adsdomain.AdGroup](c, firstURL, progress)
}

// GetAds pagina todos os anúncios da conta inteira, com o criativo embutido.
func (c *AdsClient) GetAds(accountID string, progress ProgressFunc) ([]adsdomain.Ad, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", "id,name,status,adset_id,creative{id,image_url,thumbnail_url,image_hash,object_story_id}")

	firstURL := fmt.Sprintf("%s/act_%s/ads?%s", c.Cfg.Platform.URL, accountID, params.Encode())

	return FetchAllPages[adsdomain.Ad](c, firstURL, progress)
}
