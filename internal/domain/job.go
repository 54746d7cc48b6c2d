package domain

import "time"

type JobStatus string

const (
	JobIdle    JobStatus = "idle"
	JobRunning JobStatus = "running"
	JobError   JobStatus = "error"
)

// JobConfig descreve um job recorrente gerenciado pelo agendador. Criado na
// subida do processo e mutado a cada execução ou chamada de enable/disable;
// nunca removido enquanto o processo vive.
type JobConfig struct {
	Name         string     `json:"name"`
	CronSchedule string     `json:"cron_schedule"`
	Enabled      bool       `json:"enabled"`
	Description  string     `json:"description"`
	Status       JobStatus  `json:"status"`
	LastRun      *time.Time `json:"last_run,omitempty"`
	NextRun      *time.Time `json:"next_run,omitempty"`
}
