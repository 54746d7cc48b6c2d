package adsclient

import (
	"encoding/json"
	"fmt"
	"time"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/adaudit/campaign-audit-api/pkg/retry"
	"github.com/sirupsen/logrus"
)

// Page é o envelope padrão das respostas paginadas da plataforma.
type Page[T any] struct {
	Data   []T              `json:"data"`
	Paging adsdomain.Paging `json:"paging"`
}

// FetchAllPages percorre uma API paginada por cursor até o fim, acumulando
// os itens de todas as páginas. Cada página passa pelo retry com backoff; o
// esgotamento das tentativas de qualquer página aborta a paginação inteira,
// já que uma lista parcial de entidades corromperia os mapas de associação
// construídos em seguida. Entre páginas há uma espera fixa para respeitar os
// limites da plataforma. Não há teto de páginas: o volume é limitado apenas
// pelos dados da conta.
func FetchAllPages[T any](c *AdsClient, firstURL string, progress ProgressFunc) ([]T, error) {
	items := make([]T, 0)
	pageURL := firstURL
	pages := 0

	for pageURL != "" {
		var page Page[T]

		err := retry.Do(func() error {
			body, err := c.get(pageURL)
			if err != nil {
				return err
			}

			page = Page[T]{}
			if err := json.Unmarshal(body, &page); err != nil {
				logrus.WithError(err).Error("Erro ao decodificar JSON")
				return err
			}

			return nil
		}, retry.Options{
			MaxRetries: c.maxRetries(),
			Base:       c.retryBase(),
			Classify:   ClassifyUpstreamError,
			Scope:      "adsclient.pagination",
		})
		if err != nil {
			return nil, fmt.Errorf("erro ao obter página %d: %w", pages+1, err)
		}

		items = append(items, page.Data...)
		pages++

		if progress != nil {
			progress(len(items), fmt.Sprintf("%d itens obtidos em %d páginas", len(items), pages))
		}

		pageURL = page.Paging.Next
		if pageURL != "" {
			time.Sleep(c.pageDelay())
		}
	}

	logrus.WithFields(logrus.Fields{
		"items": len(items),
		"pages": pages,
	}).Debug("Paginação concluída")

	return items, nil
}
