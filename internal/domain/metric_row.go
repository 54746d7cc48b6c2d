package domain

import "time"

// Fontes conhecidas de linhas de métricas.
const (
	MetricSourceFeed     = "feed"
	MetricSourcePlatform = "platform"
)

// MetricRow é um fato denormalizado de performance de anúncio, uma linha por
// dia/conta/campanha/anúncio. Date, AccountName e CampaignName são
// obrigatórios; os campos numéricos assumem zero quando ausentes no feed.
// SyncBatchID carimba todas as linhas gravadas em uma mesma execução.
type MetricRow struct {
	ID                  string    `json:"id"`
	Date                time.Time `json:"date"`
	AccountName         string    `json:"account_name"`
	CampaignName        string    `json:"campaign_name"`
	AdGroupName         string    `json:"ad_group_name"`
	AdName              string    `json:"ad_name"`
	Impressions         int       `json:"impressions"`
	Clicks              int       `json:"clicks"`
	CPM                 string    `json:"cpm"`
	CPC                 string    `json:"cpc"`
	Conversations       int       `json:"conversations"`
	CostPerConversation string    `json:"cost_per_conversation"`
	Spend               string    `json:"spend"`
	AdURL               *string   `json:"ad_url,omitempty"`
	Source              string    `json:"source"`
	Status              string    `json:"status"`
	SyncBatchID         string    `json:"sync_batch_id"`
	CreatedAt           time.Time `json:"created_at"`
}

// HasMandatoryFields verifica os três campos sem os quais a linha é rejeitada.
func (m *MetricRow) HasMandatoryFields() bool {
	return !m.Date.IsZero() && m.AccountName != "" && m.CampaignName != ""
}
