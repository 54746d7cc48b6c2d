package domain

import "time"

// Vocabulário local de status de campanha. Códigos da plataforma que não
// constam no mapa passam adiante sem tradução.
const (
	CampaignStatusActive     = "active"
	CampaignStatusPaused     = "paused"
	CampaignStatusInReview   = "in_review"
	CampaignStatusRejected   = "rejected"
	CampaignStatusArchived   = "archived"
	CampaignStatusDeleted    = "deleted"
	CampaignStatusWithIssues = "with_issues"
)

// Mapeamento de status da plataforma -> vocabulário local
var PlatformStatusTranslation = map[string]string{
	"ACTIVE":          CampaignStatusActive,
	"CAMPAIGN_PAUSED": CampaignStatusPaused,
	"ADSET_PAUSED":    CampaignStatusPaused,
	"PAUSED":          CampaignStatusPaused,
	"PENDING_REVIEW":  CampaignStatusInReview,
	"IN_PROCESS":      CampaignStatusInReview,
	"DISAPPROVED":     CampaignStatusRejected,
	"ARCHIVED":        CampaignStatusArchived,
	"DELETED":         CampaignStatusDeleted,
	"WITH_ISSUES":     CampaignStatusWithIssues,
}

// TranslateStatus converte um status da plataforma para o vocabulário local.
func TranslateStatus(platformStatus string) string {
	if local, ok := PlatformStatusTranslation[platformStatus]; ok {
		return local
	}
	return platformStatus
}

// OrphanPolicy define o comportamento quando uma entidade filha referencia
// um pai ausente do mapa de associação da execução corrente.
type OrphanPolicy string

const (
	OrphanSkip OrphanPolicy = "skip"
	OrphanFail OrphanPolicy = "fail"
)

// Campaign é uma campanha sincronizada da plataforma. AccountID referencia o
// id local da conta; DailyBudget já está em unidades monetárias inteiras
// (a plataforma entrega em centavos).
type Campaign struct {
	ID          string     `json:"id"`
	ExternalID  string     `json:"external_id"`
	AccountID   string     `json:"account_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	DailyBudget float64    `json:"daily_budget"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// AdGroup é um grupo de anúncios vinculado a uma campanha pelo id local.
type AdGroup struct {
	ID          string  `json:"id"`
	ExternalID  string  `json:"external_id"`
	CampaignID  string  `json:"campaign_id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Spend       float64 `json:"spend"`
}

// Ad é um anúncio vinculado a um grupo pelo id local. ImageURL aponta para o
// armazenamento gerenciado quando o criativo foi resolvido; nil caso contrário.
type Ad struct {
	ID          string  `json:"id"`
	ExternalID  string  `json:"external_id"`
	AdGroupID   string  `json:"ad_group_id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	ImageURL    *string `json:"image_url,omitempty"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Spend       float64 `json:"spend"`
}
