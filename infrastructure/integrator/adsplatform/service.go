package adsplatform

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/adsclient"
	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/adaudit/campaign-audit-api/infrastructure/integrator/assetstore"
	"github.com/adaudit/campaign-audit-api/infrastructure/repository"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/adaudit/campaign-audit-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AccountSyncer orquestra a sincronização completa de uma conta:
// campanhas -> grupos de anúncios -> anúncios, com métricas e criativos.
type AccountSyncer interface {
	SyncAccount(ctx context.Context, account *domain.AdAccount) (*domain.SyncResult, error)
}

type Service struct {
	cfg          *config.Config
	client       adsclient.Client
	campaignRepo repository.CampaignRepository
	assets       assetstore.Storer
	orphanPolicy domain.OrphanPolicy
	// lastSyncAt guarda o fim da última sincronização bem-sucedida POR conta.
	// Uma conta nunca sincronizada não tem entrada e recebe uma carga completa.
	lastSyncAt map[string]time.Time
}

func New(
	cfg *config.Config,
	client adsclient.Client,
	campaignRepo repository.CampaignRepository,
	assets assetstore.Storer,
) *Service {
	return &Service{
		cfg:          cfg,
		client:       client,
		campaignRepo: campaignRepo,
		assets:       assets,
		orphanPolicy: domain.OrphanSkip,
		lastSyncAt:   make(map[string]time.Time),
	}
}

// WithOrphanPolicy troca a política para entidades órfãs. O padrão é pular
// e contar; OrphanFail aborta a sincronização da entidade no primeiro órfão.
func (s *Service) WithOrphanPolicy(policy domain.OrphanPolicy) *Service {
	s.orphanPolicy = policy
	return s
}

// SyncAccount executa a sincronização completa da conta. Falha de token é
// fatal; falhas parciais (métricas limitadas por cota, criativos não
// resolvidos, órfãos pulados) são contadas e não abortam a execução.
func (s *Service) SyncAccount(ctx context.Context, account *domain.AdAccount) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		StartedAt: time.Now(),
		Status:    domain.SyncFailed,
	}

	syncBatchID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id do lote de sincronização")
	}
	result.SyncBatchID = syncBatchID

	if err := s.client.EnsureValidToken(); err != nil {
		result.AddError(fmt.Sprintf("token inválido e não renovável: %v", err))
		result.FinishedAt = time.Now()
		return result, errors.Wrap(err, "erro ao garantir token válido")
	}

	var updatedSince *time.Time
	if s.cfg.PlatformSync.Incremental {
		if last, ok := s.lastSyncAt[account.ID]; ok {
			updatedSince = &last
		}
	}

	logrus.WithFields(logrus.Fields{
		"account_id":  account.ID,
		"external_id": account.ExternalID,
		"incremental": updatedSince != nil,
		"sync_batch":  syncBatchID,
	}).Info("Iniciando sincronização da conta na plataforma")

	campaigns, campaignLookup, err := s.syncCampaigns(account, updatedSince, result)
	if err != nil {
		result.AddError(fmt.Sprintf("erro ao sincronizar campanhas: %v", err))
		result.FinishedAt = time.Now()
		return result, err
	}

	adGroups, adGroupLookup, err := s.syncAdGroups(account, campaignLookup, result)
	if err != nil {
		result.AddError(fmt.Sprintf("erro ao sincronizar grupos de anúncios: %v", err))
		result.FinishedAt = time.Now()
		return result, err
	}

	ads, err := s.syncAds(account, adGroupLookup, result)
	if err != nil {
		result.AddError(fmt.Sprintf("erro ao sincronizar anúncios: %v", err))
		result.FinishedAt = time.Now()
		return result, err
	}

	now := time.Now()
	s.lastSyncAt[account.ID] = now

	result.FinishedAt = now
	result.ComputeCompletion()
	if len(result.Errors) == 0 {
		result.Status = domain.SyncSucceeded
	} else if result.TotalInserted > 0 {
		result.Status = domain.SyncPartiallySucceeded
	}

	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"campaigns":  len(campaigns),
		"ad_groups":  len(adGroups),
		"ads":        len(ads),
		"skipped":    result.TotalSkipped,
		"duration":   result.FinishedAt.Sub(result.StartedAt).String(),
	}).Info("Sincronização da conta concluída")

	return result, nil
}

// syncCampaigns busca o nome da conta uma única vez, pagina as campanhas e
// as persiste traduzindo status e normalizando o orçamento (a plataforma
// entrega em centavos). Retorna o mapa externalID -> localID usado na
// associação dos grupos de anúncios.
func (s *Service) syncCampaigns(
	account *domain.AdAccount,
	updatedSince *time.Time,
	result *domain.SyncResult,
) ([]*domain.Campaign, map[string]string, error) {
	accountName, err := s.client.GetAccountName(account.ExternalID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao buscar nome da conta")
	}

	platformCampaigns, err := s.client.GetCampaigns(account.ExternalID, updatedSince, s.logProgress("campanhas"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao paginar campanhas")
	}

	result.TotalDownloaded += len(platformCampaigns)

	campaigns := make([]*domain.Campaign, 0, len(platformCampaigns))
	lookup := make(map[string]string, len(platformCampaigns))

	for _, pc := range platformCampaigns {
		localID, err := utils.GenerateID()
		if err != nil {
			return nil, nil, errors.Wrap(err, "erro ao gerar id local da campanha")
		}

		budget := 0.0
		if pc.DailyBudget != "" {
			if minor, err := strconv.ParseFloat(pc.DailyBudget, 64); err == nil {
				// Valores monetários chegam em unidades menores da moeda
				budget = utils.RoundWithTwoDecimalPlace(minor / 100)
			}
		}

		campaign := &domain.Campaign{
			ID:          localID,
			ExternalID:  pc.ID,
			AccountID:   account.ID,
			Name:        pc.Name,
			Status:      domain.TranslateStatus(pc.Status),
			DailyBudget: budget,
		}

		campaigns = append(campaigns, campaign)
		lookup[pc.ID] = localID
	}

	if err := s.campaignRepo.SaveCampaigns(account.ID, campaigns); err != nil {
		return nil, nil, errors.Wrap(err, "erro ao persistir campanhas")
	}

	result.TotalProcessed += len(campaigns)
	result.TotalInserted += len(campaigns)

	logrus.WithFields(logrus.Fields{
		"account_id":   account.ID,
		"account_name": accountName,
		"campaigns":    len(campaigns),
	}).Info("Campanhas sincronizadas")

	return campaigns, lookup, nil
}

// syncAdGroups puxa todos os grupos de anúncios da conta de uma vez e os
// associa às campanhas pelo mapa construído na mesma execução. Órfãos seguem
// a política configurada. As métricas de todos os grupos vêm em uma única
// chamada de batch e são mescladas por id.
func (s *Service) syncAdGroups(
	account *domain.AdAccount,
	campaignLookup map[string]string,
	result *domain.SyncResult,
) ([]*domain.AdGroup, map[string]string, error) {
	platformAdGroups, err := s.client.GetAdGroups(account.ExternalID, s.logProgress("grupos de anúncios"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao paginar grupos de anúncios")
	}

	result.TotalDownloaded += len(platformAdGroups)

	adGroups := make([]*domain.AdGroup, 0, len(platformAdGroups))
	lookup := make(map[string]string, len(platformAdGroups))
	externalIDs := make([]string, 0, len(platformAdGroups))

	for _, pg := range platformAdGroups {
		campaignID, ok := campaignLookup[pg.CampaignID]
		if !ok {
			if s.orphanPolicy == domain.OrphanFail {
				return nil, nil, fmt.Errorf("grupo de anúncios %s referencia campanha desconhecida %s", pg.ID, pg.CampaignID)
			}

			result.TotalSkipped++
			logrus.WithFields(logrus.Fields{
				"ad_group_id": pg.ID,
				"campaign_id": pg.CampaignID,
			}).Debug("Grupo de anúncios órfão pulado")
			continue
		}

		localID, err := utils.GenerateID()
		if err != nil {
			return nil, nil, errors.Wrap(err, "erro ao gerar id local do grupo de anúncios")
		}

		adGroups = append(adGroups, &domain.AdGroup{
			ID:         localID,
			ExternalID: pg.ID,
			CampaignID: campaignID,
			Name:       pg.Name,
			Status:     domain.TranslateStatus(pg.Status),
		})
		lookup[pg.ID] = localID
		externalIDs = append(externalIDs, pg.ID)
	}

	s.mergeInsights(externalIDs, result, func(externalID string, insights *adsdomain.Insights) {
		for _, g := range adGroups {
			if g.ExternalID == externalID {
				g.Impressions = utils.ParseIntLoose(insights.Impressions)
				g.Clicks = utils.ParseIntLoose(insights.Clicks)
				if spend, err := strconv.ParseFloat(insights.Spend, 64); err == nil {
					g.Spend = spend
				}
				return
			}
		}
	})

	if err := s.campaignRepo.SaveAdGroups(adGroups); err != nil {
		return nil, nil, errors.Wrap(err, "erro ao persistir grupos de anúncios")
	}

	result.TotalProcessed += len(adGroups)
	result.TotalInserted += len(adGroups)

	return adGroups, lookup, nil
}

// syncAds é simétrico ao syncAdGroups, com a resolução do criativo de cada
// anúncio ao final.
func (s *Service) syncAds(
	account *domain.AdAccount,
	adGroupLookup map[string]string,
	result *domain.SyncResult,
) ([]*domain.Ad, error) {
	platformAds, err := s.client.GetAds(account.ExternalID, s.logProgress("anúncios"))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao paginar anúncios")
	}

	result.TotalDownloaded += len(platformAds)

	ads := make([]*domain.Ad, 0, len(platformAds))
	creatives := make(map[string]*adsdomain.Creative, len(platformAds))
	externalIDs := make([]string, 0, len(platformAds))

	for _, pa := range platformAds {
		adGroupID, ok := adGroupLookup[pa.AdGroupID]
		if !ok {
			if s.orphanPolicy == domain.OrphanFail {
				return nil, fmt.Errorf("anúncio %s referencia grupo desconhecido %s", pa.ID, pa.AdGroupID)
			}

			result.TotalSkipped++
			logrus.WithFields(logrus.Fields{
				"ad_id":       pa.ID,
				"ad_group_id": pa.AdGroupID,
			}).Debug("Anúncio órfão pulado")
			continue
		}

		localID, err := utils.GenerateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar id local do anúncio")
		}

		ads = append(ads, &domain.Ad{
			ID:         localID,
			ExternalID: pa.ID,
			AdGroupID:  adGroupID,
			Name:       pa.Name,
			Status:     domain.TranslateStatus(pa.Status),
		})
		creatives[pa.ID] = pa.Creative
		externalIDs = append(externalIDs, pa.ID)
	}

	s.mergeInsights(externalIDs, result, func(externalID string, insights *adsdomain.Insights) {
		for _, ad := range ads {
			if ad.ExternalID == externalID {
				ad.Impressions = utils.ParseIntLoose(insights.Impressions)
				ad.Clicks = utils.ParseIntLoose(insights.Clicks)
				if spend, err := strconv.ParseFloat(insights.Spend, 64); err == nil {
					ad.Spend = spend
				}
				return
			}
		}
	})

	s.resolveCreatives(account, ads, creatives, result)

	if err := s.campaignRepo.SaveAds(ads); err != nil {
		return nil, errors.Wrap(err, "erro ao persistir anúncios")
	}

	result.TotalProcessed += len(ads)
	result.TotalInserted += len(ads)

	return ads, nil
}

// mergeInsights busca as métricas de todas as entidades em uma chamada de
// batch e aplica cada resultado pelo callback. Falha total do batch vira um
// aviso: a execução segue com métricas zeradas.
func (s *Service) mergeInsights(
	externalIDs []string,
	result *domain.SyncResult,
	apply func(externalID string, insights *adsdomain.Insights),
) {
	if len(externalIDs) == 0 {
		return
	}

	insightsByID, err := s.client.GetInsightsBatch(externalIDs)
	if err != nil {
		result.AddWarning(fmt.Sprintf("métricas indisponíveis: %v", err))
		return
	}

	for externalID, insights := range insightsByID {
		apply(externalID, insights)
	}

	if len(insightsByID) < len(externalIDs) {
		result.AddWarning(fmt.Sprintf(
			"métricas parciais: %d de %d entidades resolvidas",
			len(insightsByID), len(externalIDs),
		))
	}
}

func (s *Service) logProgress(entity string) adsclient.ProgressFunc {
	return func(count int, message string) {
		logrus.WithFields(logrus.Fields{
			"entity": entity,
			"count":  count,
		}).Debug(message)
	}
}
