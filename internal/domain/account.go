package domain

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

// AdAccount é uma conta de anúncios da plataforma vinculada a um cliente.
// ExternalID é o identificador nativo da plataforma; ID é o identificador
// local gerado na criação da conta.
type AdAccount struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Name       string          `json:"name"`
	Status     AdAccountStatus `json:"status"`
}
