package retry

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Bases de espera usadas pelo motor de sincronização. Escritas em banco usam
// uma base curta; chamadas à API da plataforma usam uma base maior por conta
// dos limites de requisição por hora.
const (
	StorageBase  = 1 * time.Second
	UpstreamBase = 5 * time.Second

	DefaultMaxRetries = 3
)

// Options configura a execução de uma operação com retry.
type Options struct {
	// MaxRetries é o número de novas tentativas após a primeira falha.
	MaxRetries int

	// Base é o tempo de espera inicial; a espera cresce em Base * 2^tentativa.
	Base time.Duration

	// Classify decide se um erro é transitório (true) ou fatal (false).
	// Quando nil, todo erro é tratado como transitório.
	Classify func(error) bool

	// Scope identifica a operação nos logs de tentativa.
	Scope string

	// sleep é substituível em testes.
	sleep func(time.Duration)
}

// Do executa a operação e, em caso de erro transitório, espera com backoff
// exponencial antes de tentar novamente. Erros fatais ou o esgotamento das
// tentativas propagam o último erro observado.
func Do(operation func() error, opts Options) error {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Base <= 0 {
		opts.Base = StorageBase
	}
	if opts.sleep == nil {
		opts.sleep = time.Sleep
	}

	var lastErr error
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			return nil
		}

		if opts.Classify != nil && !opts.Classify(lastErr) {
			logrus.WithFields(logrus.Fields{
				"scope":   opts.Scope,
				"attempt": attempt + 1,
				"error":   lastErr.Error(),
			}).Warn("Erro fatal, abandonando tentativas")
			return lastErr
		}

		if attempt == opts.MaxRetries {
			break
		}

		wait := opts.Base * (1 << uint(attempt))
		logrus.WithFields(logrus.Fields{
			"scope":   opts.Scope,
			"attempt": attempt + 1,
			"wait":    wait.String(),
			"error":   lastErr.Error(),
		}).Warn("Operação falhou, aguardando antes de tentar novamente")

		opts.sleep(wait)
	}

	logrus.WithFields(logrus.Fields{
		"scope":   opts.Scope,
		"retries": opts.MaxRetries,
		"error":   lastErr.Error(),
	}).Error("Tentativas esgotadas")

	return lastErr
}
