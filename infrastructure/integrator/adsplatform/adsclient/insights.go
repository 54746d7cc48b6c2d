package adsclient

import (
	"fmt"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/sirupsen/logrus"
)

type insightsEnvelope struct {
	Data []adsdomain.Insights `json:"data"`
}

// GetInsightsBatch busca métricas de todas as entidades informadas em uma
// única passada pelo executor de batch, uma sub-requisição por id. Entidades
// cujas sub-requisições falharam (cota estourada, por exemplo) simplesmente
// não aparecem no mapa retornado.
func (c *AdsClient) GetInsightsBatch(externalIDs []string) (map[string]*adsdomain.Insights, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	requests := make([]adsdomain.BatchSubRequest, 0, len(externalIDs))
	for _, id := range externalIDs {
		requests = append(requests, adsdomain.BatchSubRequest{
			Method:      "GET",
			RelativeURL: fmt.Sprintf("%s/insights?fields=impressions,clicks,spend", id),
		})
	}

	responses := c.BatchExecute(c.TokenManager.AccessToken(), requests)

	insights := make(map[string]*adsdomain.Insights, len(externalIDs))
	for i, resp := range responses {
		if resp == nil {
			continue
		}

		var envelope insightsEnvelope
		if err := resp.DecodeBody(&envelope); err != nil {
			logrus.WithFields(logrus.Fields{
				"external_id": externalIDs[i],
				"error":       err.Error(),
			}).Warn("Erro ao decodificar insights da entidade")
			continue
		}

		if len(envelope.Data) == 0 {
			continue
		}

		insights[externalIDs[i]] = &envelope.Data[0]
	}

	logrus.WithFields(logrus.Fields{
		"requested": len(externalIDs),
		"resolved":  len(insights),
	}).Debug("Métricas obtidas via batch")

	return insights, nil
}
