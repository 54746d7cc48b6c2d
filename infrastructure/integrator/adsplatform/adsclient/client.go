package adsclient

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/adaudit/campaign-audit-api/pkg/retry"
	"github.com/sirupsen/logrus"
)

// ProgressFunc recebe o total acumulado de itens e uma mensagem legível a
// cada página obtida. É o ponto de observação para chamadores que querem
// progresso ao vivo.
type ProgressFunc func(count int, message string)

type Client interface {
	EnsureValidToken() error
	RefreshToken() error
	GetAccountName(accountID string) (string, error)
	GetCampaigns(accountID string, updatedSince *time.Time, progress ProgressFunc) ([]adsdomain.Campaign, error)
	GetAdGroups(accountID string, progress ProgressFunc) ([]adsdomain.AdGroup, error)
	GetAds(accountID string, progress ProgressFunc) ([]adsdomain.Ad, error)
	GetInsightsBatch(externalIDs []string) (map[string]*adsdomain.Insights, error)
	ResolveImageHashes(accountID string, hashes []string) (map[string]string, error)
	GetStoryImageURL(storyID string) (string, error)
	BatchExecute(accessToken string, requests []adsdomain.BatchSubRequest) []*adsdomain.BatchSubResponse
}

type AdsClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	httpClient   *http.Client
	backoffBase  time.Duration
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	return &AdsClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// RefreshToken obtém um novo token de longa duração
func (c *AdsClient) RefreshToken() error {
	return c.TokenManager.RefreshToken()
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *AdsClient) EnsureValidToken() error {
	return c.TokenManager.EnsureValidToken()
}

// get executa um GET autenticado. O access_token da URL é sempre substituído
// pelo token corrente, o que mantém válidos os links de "próxima página"
// mesmo após uma renovação no meio da paginação. Se a resposta indica token
// expirado e renovado, a requisição é refeita uma única vez.
func (c *AdsClient) get(rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		requestURL, err := c.withToken(rawURL)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Get(requestURL)
		if err != nil {
			logrus.WithError(err).Error("Erro ao fazer a requisição")
			return nil, err
		}

		body, err := c.TokenManager.HandleResponse(resp)
		resp.Body.Close()
		if err == nil {
			return body, nil
		}

		lastErr = err
		if !errors.Is(err, ErrTokenReissued) {
			return nil, err
		}
		// Token foi renovado durante o tratamento; refaz com o token novo
	}

	return nil, lastErr
}

// withToken injeta o token de acesso corrente na URL.
func (c *AdsClient) withToken(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("access_token", c.TokenManager.AccessToken())
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *AdsClient) pageDelay() time.Duration {
	return time.Duration(c.Cfg.Platform.PageDelayMs) * time.Millisecond
}

func (c *AdsClient) batchDelay() time.Duration {
	return time.Duration(c.Cfg.Platform.BatchDelayMs) * time.Millisecond
}

func (c *AdsClient) maxRetries() int {
	return c.Cfg.Platform.MaxRetries
}

func (c *AdsClient) retryBase() time.Duration {
	if c.backoffBase > 0 {
		return c.backoffBase
	}
	return retry.UpstreamBase
}
