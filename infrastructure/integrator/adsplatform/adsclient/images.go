package adsclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/adaudit/campaign-audit-api/pkg/retry"
	"github.com/sirupsen/logrus"
)

type imagesEnvelope struct {
	Data []adsdomain.ImageRef `json:"data"`
}

// ResolveImageHashes resolve hashes opacos de imagem para URLs através do
// endpoint de imagens da conta. Criativos compostos dinamicamente armazenam
// o asset como hash em vez de URL; sem esta consulta eles ficariam sem
// criativo.
func (c *AdsClient) ResolveImageHashes(accountID string, hashes []string) (map[string]string, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	if len(hashes) == 0 {
		return map[string]string{}, nil
	}

	hashesJSON, err := json.Marshal(hashes)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar hashes: %w", err)
	}

	params := url.Values{}
	params.Add("fields", "hash,url")
	params.Add("hashes", string(hashesJSON))

	requestURL := fmt.Sprintf("%s/act_%s/adimages?%s", c.Cfg.Platform.URL, accountID, params.Encode())

	var envelope imagesEnvelope
	err = retry.Do(func() error {
		body, err := c.get(requestURL)
		if err != nil {
			return err
		}
		envelope = imagesEnvelope{}
		return json.Unmarshal(body, &envelope)
	}, retry.Options{
		MaxRetries: c.maxRetries(),
		Base:       c.retryBase(),
		Classify:   ClassifyUpstreamError,
		Scope:      "adsclient.images",
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"hashes":     len(hashes),
			"error":      err.Error(),
		}).Warn("Erro ao resolver hashes de imagem")
		return nil, err
	}

	urls := make(map[string]string, len(envelope.Data))
	for _, ref := range envelope.Data {
		if ref.URL != "" {
			urls[ref.Hash] = ref.URL
		}
	}

	return urls, nil
}

// GetStoryImageURL busca a imagem do story vinculado a um criativo, fonte
// secundária quando o criativo não expõe URL direta.
func (c *AdsClient) GetStoryImageURL(storyID string) (string, error) {
	if err := c.EnsureValidToken(); err != nil {
		return "", fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	requestURL := fmt.Sprintf("%s/%s?fields=full_picture,picture", c.Cfg.Platform.URL, storyID)

	var story adsdomain.Story
	err := retry.Do(func() error {
		body, err := c.get(requestURL)
		if err != nil {
			return err
		}
		story = adsdomain.Story{}
		return json.Unmarshal(body, &story)
	}, retry.Options{
		MaxRetries: c.maxRetries(),
		Base:       c.retryBase(),
		Classify:   ClassifyUpstreamError,
		Scope:      "adsclient.story",
	})
	if err != nil {
		return "", err
	}

	if story.FullPicture != "" {
		return story.FullPicture, nil
	}

	return story.PictureURL, nil
}
