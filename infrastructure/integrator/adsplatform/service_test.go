package adsplatform

import (
	"context"
	"errors"
	"testing"

	clientmocks "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/adsclient/mocks"
	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	assetmocks "github.com/adaudit/campaign-audit-api/infrastructure/integrator/assetstore/mocks"
	"github.com/adaudit/campaign-audit-api/infrastructure/repository/mocks"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *clientmocks.MockClient, *mocks.MockCampaignRepository, *assetmocks.MockStorer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockClient := clientmocks.NewMockClient(ctrl)
	mockRepo := mocks.NewMockCampaignRepository(ctrl)
	mockAssets := assetmocks.NewMockStorer(ctrl)

	service := New(&config.Config{}, mockClient, mockRepo, mockAssets)

	return service, mockClient, mockRepo, mockAssets
}

func TestService_SyncAccount(t *testing.T) {
	account := &domain.AdAccount{ID: "acc001", ExternalID: "123456", Name: "Loja A"}

	t.Run("sincronização completa traduz status e normaliza orçamento", func(t *testing.T) {
		service, mockClient, mockRepo, mockAssets := newTestService(t)

		mockClient.EXPECT().EnsureValidToken().Return(nil)
		mockClient.EXPECT().GetAccountName("123456").Return("Loja A", nil)

		mockClient.EXPECT().
			GetCampaigns("123456", gomock.Nil(), gomock.Any()).
			Return([]adsdomain.Campaign{
				{ID: "c1", Name: "Campanha A", Status: "ACTIVE", DailyBudget: "15000"},
				{ID: "c2", Name: "Campanha B", Status: "PREAPPROVED", DailyBudget: ""},
			}, nil)

		var savedCampaigns []*domain.Campaign
		mockRepo.EXPECT().
			SaveCampaigns("acc001", gomock.Any()).
			DoAndReturn(func(_ string, campaigns []*domain.Campaign) error {
				savedCampaigns = campaigns
				return nil
			})

		mockClient.EXPECT().
			GetAdGroups("123456", gomock.Any()).
			Return([]adsdomain.AdGroup{
				{ID: "g1", Name: "Grupo A", Status: "PAUSED", CampaignID: "c1"},
			}, nil)

		mockClient.EXPECT().
			GetInsightsBatch([]string{"g1"}).
			Return(map[string]*adsdomain.Insights{
				"g1": {Impressions: "1200", Clicks: "34", Spend: "56.78"},
			}, nil)

		var savedAdGroups []*domain.AdGroup
		mockRepo.EXPECT().
			SaveAdGroups(gomock.Any()).
			DoAndReturn(func(adGroups []*domain.AdGroup) error {
				savedAdGroups = adGroups
				return nil
			})

		mockClient.EXPECT().
			GetAds("123456", gomock.Any()).
			Return([]adsdomain.Ad{
				{
					ID: "a1", Name: "Anúncio A", Status: "ACTIVE", AdGroupID: "g1",
					Creative: &adsdomain.Creative{ID: "cr1", ImageURL: "https://cdn.platform.test/img1.jpg"},
				},
			}, nil)

		mockClient.EXPECT().
			GetInsightsBatch([]string{"a1"}).
			Return(map[string]*adsdomain.Insights{}, nil)

		mockRepo.EXPECT().ListAdImageURLs("acc001").Return(map[string]string{}, nil)
		mockAssets.EXPECT().
			Store("https://cdn.platform.test/img1.jpg", "acc001").
			Return("https://assets.test/acc001/img1.jpg", nil)

		var savedAds []*domain.Ad
		mockRepo.EXPECT().
			SaveAds(gomock.Any()).
			DoAndReturn(func(ads []*domain.Ad) error {
				savedAds = ads
				return nil
			})

		result, err := service.SyncAccount(context.Background(), account)
		require.NoError(t, err)

		require.Len(t, savedCampaigns, 2)
		assert.Equal(t, domain.CampaignStatusActive, savedCampaigns[0].Status)
		assert.Equal(t, 150.0, savedCampaigns[0].DailyBudget)
		// Status desconhecido passa adiante sem tradução
		assert.Equal(t, "PREAPPROVED", savedCampaigns[1].Status)
		assert.Equal(t, 0.0, savedCampaigns[1].DailyBudget)

		require.Len(t, savedAdGroups, 1)
		assert.Equal(t, savedCampaigns[0].ID, savedAdGroups[0].CampaignID)
		assert.Equal(t, domain.CampaignStatusPaused, savedAdGroups[0].Status)
		assert.Equal(t, 1200, savedAdGroups[0].Impressions)
		assert.Equal(t, 34, savedAdGroups[0].Clicks)
		assert.Equal(t, 56.78, savedAdGroups[0].Spend)

		require.Len(t, savedAds, 1)
		require.NotNil(t, savedAds[0].ImageURL)
		assert.Equal(t, "https://assets.test/acc001/img1.jpg", *savedAds[0].ImageURL)

		assert.Equal(t, domain.SyncSucceeded, result.Status)
		assert.Equal(t, 4, result.TotalDownloaded)
		assert.Equal(t, 4, result.TotalInserted)
		assert.Equal(t, 0, result.TotalSkipped)
		assert.NotEmpty(t, result.SyncBatchID)
	})

	t.Run("grupo órfão é pulado e contado na política padrão", func(t *testing.T) {
		service, mockClient, mockRepo, _ := newTestService(t)

		mockClient.EXPECT().EnsureValidToken().Return(nil)
		mockClient.EXPECT().GetAccountName("123456").Return("Loja A", nil)
		mockClient.EXPECT().
			GetCampaigns("123456", gomock.Nil(), gomock.Any()).
			Return([]adsdomain.Campaign{{ID: "c1", Name: "Campanha A", Status: "ACTIVE"}}, nil)
		mockRepo.EXPECT().SaveCampaigns("acc001", gomock.Any()).Return(nil)

		mockClient.EXPECT().
			GetAdGroups("123456", gomock.Any()).
			Return([]adsdomain.AdGroup{
				{ID: "g1", Name: "Grupo A", Status: "ACTIVE", CampaignID: "c1"},
				{ID: "g2", Name: "Grupo Órfão", Status: "ACTIVE", CampaignID: "c999"},
			}, nil)
		mockClient.EXPECT().
			GetInsightsBatch([]string{"g1"}).
			Return(map[string]*adsdomain.Insights{}, nil)

		var savedAdGroups []*domain.AdGroup
		mockRepo.EXPECT().
			SaveAdGroups(gomock.Any()).
			DoAndReturn(func(adGroups []*domain.AdGroup) error {
				savedAdGroups = adGroups
				return nil
			})

		mockClient.EXPECT().GetAds("123456", gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().ListAdImageURLs("acc001").Return(map[string]string{}, nil)
		mockRepo.EXPECT().SaveAds(gomock.Any()).Return(nil)

		result, err := service.SyncAccount(context.Background(), account)
		require.NoError(t, err)

		require.Len(t, savedAdGroups, 1)
		assert.Equal(t, "g1", savedAdGroups[0].ExternalID)
		assert.Equal(t, 1, result.TotalSkipped)
		assert.Equal(t, domain.SyncSucceeded, result.Status)
	})

	t.Run("política OrphanFail aborta no primeiro órfão", func(t *testing.T) {
		service, mockClient, mockRepo, _ := newTestService(t)
		service.WithOrphanPolicy(domain.OrphanFail)

		mockClient.EXPECT().EnsureValidToken().Return(nil)
		mockClient.EXPECT().GetAccountName("123456").Return("Loja A", nil)
		mockClient.EXPECT().
			GetCampaigns("123456", gomock.Nil(), gomock.Any()).
			Return([]adsdomain.Campaign{{ID: "c1", Name: "Campanha A", Status: "ACTIVE"}}, nil)
		mockRepo.EXPECT().SaveCampaigns("acc001", gomock.Any()).Return(nil)

		mockClient.EXPECT().
			GetAdGroups("123456", gomock.Any()).
			Return([]adsdomain.AdGroup{
				{ID: "g2", Name: "Grupo Órfão", Status: "ACTIVE", CampaignID: "c999"},
			}, nil)

		result, err := service.SyncAccount(context.Background(), account)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "campanha desconhecida")
		assert.Equal(t, domain.SyncFailed, result.Status)
	})

	t.Run("sincronização incremental é isolada por conta", func(t *testing.T) {
		service, mockClient, mockRepo, _ := newTestService(t)
		service.cfg.PlatformSync.Incremental = true

		accountA := &domain.AdAccount{ID: "acc001", ExternalID: "111", Name: "Loja A"}
		accountB := &domain.AdAccount{ID: "acc002", ExternalID: "222", Name: "Loja B"}

		expectEmptySync := func(externalID, accountID string, updatedSince gomock.Matcher) {
			mockClient.EXPECT().EnsureValidToken().Return(nil)
			mockClient.EXPECT().GetAccountName(externalID).Return("Loja", nil)
			mockClient.EXPECT().GetCampaigns(externalID, updatedSince, gomock.Any()).Return(nil, nil)
			mockRepo.EXPECT().SaveCampaigns(accountID, gomock.Any()).Return(nil)
			mockClient.EXPECT().GetAdGroups(externalID, gomock.Any()).Return(nil, nil)
			mockRepo.EXPECT().SaveAdGroups(gomock.Any()).Return(nil)
			mockClient.EXPECT().GetAds(externalID, gomock.Any()).Return(nil, nil)
			mockRepo.EXPECT().ListAdImageURLs(accountID).Return(map[string]string{}, nil)
			mockRepo.EXPECT().SaveAds(gomock.Any()).Return(nil)
		}

		// A primeira sincronização de cada conta é sempre uma carga completa,
		// mesmo depois de outra conta ter sincronizado
		expectEmptySync("111", "acc001", gomock.Nil())
		_, err := service.SyncAccount(context.Background(), accountA)
		require.NoError(t, err)

		expectEmptySync("222", "acc002", gomock.Nil())
		_, err = service.SyncAccount(context.Background(), accountB)
		require.NoError(t, err)

		// A segunda rodada da conta A usa o marco da própria conta
		expectEmptySync("111", "acc001", gomock.Not(gomock.Nil()))
		_, err = service.SyncAccount(context.Background(), accountA)
		require.NoError(t, err)
	})

	t.Run("falha de token é fatal", func(t *testing.T) {
		service, mockClient, _, _ := newTestService(t)

		mockClient.EXPECT().EnsureValidToken().Return(errors.New("token expirado"))

		result, err := service.SyncAccount(context.Background(), account)
		require.Error(t, err)
		assert.Equal(t, domain.SyncFailed, result.Status)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("falha total de métricas vira aviso e não aborta", func(t *testing.T) {
		service, mockClient, mockRepo, _ := newTestService(t)

		mockClient.EXPECT().EnsureValidToken().Return(nil)
		mockClient.EXPECT().GetAccountName("123456").Return("Loja A", nil)
		mockClient.EXPECT().
			GetCampaigns("123456", gomock.Nil(), gomock.Any()).
			Return([]adsdomain.Campaign{{ID: "c1", Name: "Campanha A", Status: "ACTIVE"}}, nil)
		mockRepo.EXPECT().SaveCampaigns("acc001", gomock.Any()).Return(nil)

		mockClient.EXPECT().
			GetAdGroups("123456", gomock.Any()).
			Return([]adsdomain.AdGroup{
				{ID: "g1", Name: "Grupo A", Status: "ACTIVE", CampaignID: "c1"},
			}, nil)
		mockClient.EXPECT().
			GetInsightsBatch([]string{"g1"}).
			Return(nil, errors.New("limite de chamadas atingido"))

		var savedAdGroups []*domain.AdGroup
		mockRepo.EXPECT().
			SaveAdGroups(gomock.Any()).
			DoAndReturn(func(adGroups []*domain.AdGroup) error {
				savedAdGroups = adGroups
				return nil
			})

		mockClient.EXPECT().GetAds("123456", gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().ListAdImageURLs("acc001").Return(map[string]string{}, nil)
		mockRepo.EXPECT().SaveAds(gomock.Any()).Return(nil)

		result, err := service.SyncAccount(context.Background(), account)
		require.NoError(t, err)

		require.Len(t, savedAdGroups, 1)
		assert.Equal(t, 0, savedAdGroups[0].Impressions)
		assert.NotEmpty(t, result.Warnings)
		assert.Equal(t, domain.SyncSucceeded, result.Status)
	})
}

func TestService_resolveCreatives(t *testing.T) {
	account := &domain.AdAccount{ID: "acc001", ExternalID: "123456"}

	t.Run("URL já gerenciada evita novo download", func(t *testing.T) {
		service, _, mockRepo, mockAssets := newTestService(t)

		managedURL := "https://assets.test/acc001/existente.jpg"
		mockRepo.EXPECT().
			ListAdImageURLs("acc001").
			Return(map[string]string{"a1": managedURL}, nil)
		mockAssets.EXPECT().IsManaged(managedURL).Return(true)

		ads := []*domain.Ad{{ID: "local1", ExternalID: "a1"}}
		creatives := map[string]*adsdomain.Creative{
			"a1": {ID: "cr1", ImageURL: "https://cdn.platform.test/nova.jpg"},
		}

		result := &domain.SyncResult{}
		service.resolveCreatives(account, ads, creatives, result)

		require.NotNil(t, ads[0].ImageURL)
		assert.Equal(t, managedURL, *ads[0].ImageURL)
	})

	t.Run("hash é o último recurso de resolução", func(t *testing.T) {
		service, mockClient, mockRepo, mockAssets := newTestService(t)

		mockRepo.EXPECT().ListAdImageURLs("acc001").Return(map[string]string{}, nil)
		mockClient.EXPECT().
			ResolveImageHashes("123456", []string{"abc123"}).
			Return(map[string]string{"abc123": "https://cdn.platform.test/hash.jpg"}, nil)
		mockAssets.EXPECT().
			Store("https://cdn.platform.test/hash.jpg", "acc001").
			Return("https://assets.test/acc001/hash.jpg", nil)

		ads := []*domain.Ad{{ID: "local1", ExternalID: "a1"}}
		creatives := map[string]*adsdomain.Creative{
			"a1": {ID: "cr1", ImageHash: "abc123"},
		}

		result := &domain.SyncResult{}
		service.resolveCreatives(account, ads, creatives, result)

		require.NotNil(t, ads[0].ImageURL)
		assert.Equal(t, "https://assets.test/acc001/hash.jpg", *ads[0].ImageURL)
	})

	t.Run("falha no armazenamento deixa a imagem nula", func(t *testing.T) {
		service, _, mockRepo, mockAssets := newTestService(t)

		mockRepo.EXPECT().ListAdImageURLs("acc001").Return(map[string]string{}, nil)
		mockAssets.EXPECT().
			Store("https://cdn.platform.test/img.jpg", "acc001").
			Return("", errors.New("serviço indisponível"))

		ads := []*domain.Ad{{ID: "local1", ExternalID: "a1"}}
		creatives := map[string]*adsdomain.Creative{
			"a1": {ID: "cr1", ImageURL: "https://cdn.platform.test/img.jpg"},
		}

		result := &domain.SyncResult{}
		service.resolveCreatives(account, ads, creatives, result)

		assert.Nil(t, ads[0].ImageURL)
		assert.NotEmpty(t, result.Warnings)
	})
}
