package domain

import "time"

type SyncStatus string

const (
	SyncSucceeded          SyncStatus = "succeeded"
	SyncPartiallySucceeded SyncStatus = "partially_succeeded"
	SyncFailed             SyncStatus = "failed"
)

// BatchResult é o resultado de um lote de inserção (um chunk, uma transação).
type BatchResult struct {
	Index     int    `json:"index"`
	Processed int    `json:"processed"`
	Inserted  int    `json:"inserted"`
	Retries   int    `json:"retries"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// SyncResult é o resultado de uma execução de sincronização. Não é
// persistido; existe apenas nas linhas que a execução produziu (via
// SyncBatchID) e na resposta devolvida ao operador.
type SyncResult struct {
	SyncBatchID          string        `json:"sync_batch_id"`
	TotalDownloaded      int           `json:"total_downloaded"`
	TotalProcessed       int           `json:"total_processed"`
	TotalInserted        int           `json:"total_inserted"`
	TotalSkipped         int           `json:"total_skipped"`
	TotalFailed          int           `json:"total_failed"`
	CompletionPercentage float64       `json:"completion_percentage"`
	Batches              []BatchResult `json:"batches,omitempty"`
	Errors               []string      `json:"errors,omitempty"`
	Warnings             []string      `json:"warnings,omitempty"`
	Status               SyncStatus    `json:"status"`
	StartedAt            time.Time     `json:"started_at"`
	FinishedAt           time.Time     `json:"finished_at"`
}

// AddError acumula um erro de nível de execução.
func (r *SyncResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddWarning acumula um aviso que não compromete a execução.
func (r *SyncResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// ComputeCompletion calcula o percentual de conclusão (inseridas verificadas
// sobre baixadas), limitado ao intervalo [0, 100].
func (r *SyncResult) ComputeCompletion() {
	if r.TotalDownloaded <= 0 {
		r.CompletionPercentage = 0
		return
	}

	pct := float64(r.TotalInserted) / float64(r.TotalDownloaded) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	r.CompletionPercentage = pct
}
