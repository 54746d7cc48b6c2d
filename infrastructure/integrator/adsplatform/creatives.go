package adsplatform

import (
	"fmt"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// resolveCreatives preenche a URL de imagem de cada anúncio. A ordem de
// resolução: URL já gerenciada no banco (evita novo download), URL direta do
// criativo, imagem da publicação (story) e, por fim, o hash da imagem. A
// primeira URL encontrada passa pelo Asset Store; sem URL, o campo fica nulo.
func (s *Service) resolveCreatives(
	account *domain.AdAccount,
	ads []*domain.Ad,
	creatives map[string]*adsdomain.Creative,
	result *domain.SyncResult,
) {
	managed, err := s.campaignRepo.ListAdImageURLs(account.ID)
	if err != nil {
		result.AddWarning(fmt.Sprintf("erro ao listar imagens gerenciadas: %v", err))
		managed = map[string]string{}
	}

	pendingHashes := make(map[string]bool)
	for _, ad := range ads {
		creative := creatives[ad.ExternalID]
		if creative == nil {
			continue
		}

		if url, ok := managed[ad.ExternalID]; ok && s.assets.IsManaged(url) {
			ad.ImageURL = &url
			continue
		}

		if creative.ImageURL == "" && creative.ThumbnailURL == "" &&
			creative.ObjectStoryID == "" && creative.ImageHash != "" {
			pendingHashes[creative.ImageHash] = true
		}
	}

	hashURLs := map[string]string{}
	if len(pendingHashes) > 0 {
		hashes := make([]string, 0, len(pendingHashes))
		for hash := range pendingHashes {
			hashes = append(hashes, hash)
		}

		hashURLs, err = s.client.ResolveImageHashes(account.ExternalID, hashes)
		if err != nil {
			result.AddWarning(fmt.Sprintf("erro ao resolver hashes de imagem: %v", err))
			hashURLs = map[string]string{}
		}
	}

	for _, ad := range ads {
		if ad.ImageURL != nil {
			continue
		}

		creative := creatives[ad.ExternalID]
		if creative == nil {
			continue
		}

		sourceURL := s.creativeSourceURL(creative, hashURLs)
		if sourceURL == "" {
			logrus.WithField("ad_id", ad.ID).Debug("Anúncio sem imagem resolvível")
			continue
		}

		storedURL, err := s.assets.Store(sourceURL, account.ID)
		if err != nil {
			result.AddWarning(fmt.Sprintf("erro ao armazenar criativo do anúncio %s: %v", ad.ExternalID, err))
			continue
		}

		ad.ImageURL = &storedURL
	}
}

func (s *Service) creativeSourceURL(creative *adsdomain.Creative, hashURLs map[string]string) string {
	if creative.ImageURL != "" {
		return creative.ImageURL
	}

	if creative.ThumbnailURL != "" {
		return creative.ThumbnailURL
	}

	if creative.ObjectStoryID != "" {
		url, err := s.client.GetStoryImageURL(creative.ObjectStoryID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"story_id": creative.ObjectStoryID,
				"error":    err,
			}).Debug("Erro ao buscar imagem da publicação")
		} else if url != "" {
			return url
		}
	}

	if creative.ImageHash != "" {
		return hashURLs[creative.ImageHash]
	}

	return ""
}
