package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/adaudit/campaign-audit-api/internal/domain"
)

var (
	// ErrJobNotFound indica que o nome informado não corresponde a nenhum
	// job registrado.
	ErrJobNotFound = errors.New("job não encontrado")

	// ErrJobAlreadyRunning indica que o job já tem uma execução em andamento;
	// execuções do mesmo job nunca se sobrepõem.
	ErrJobAlreadyRunning = errors.New("job já em execução")
)

// JobHandler é a função executada a cada disparo de um job, agendado ou
// manual. O resultado alimenta a superfície de status da API.
type JobHandler func(ctx context.Context) (*domain.SyncResult, error)

type job struct {
	config  domain.JobConfig
	handler JobHandler
	cronJob *gocron.Job
}

// Service é o registro central de jobs recorrentes. Todo acesso ao estado dos
// jobs passa pelo mutex do serviço; nada do registro vaza para fora dele.
type Service struct {
	mu        sync.Mutex
	jobs      map[string]*job
	scheduler *gocron.Scheduler
}

func NewService(location *time.Location) *Service {
	if location == nil {
		location = time.Local
	}

	return &Service{
		jobs:      make(map[string]*job),
		scheduler: gocron.NewScheduler(location),
	}
}

// RegisterJob registra um job na subida do processo. Jobs habilitados entram
// no cron imediatamente; desabilitados ficam no registro aguardando um
// enable ou uma execução manual.
func (s *Service) RegisterJob(cfg domain.JobConfig, handler JobHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg.Status = domain.JobIdle

	j := &job{config: cfg, handler: handler}
	s.jobs[cfg.Name] = j

	if cfg.Enabled {
		if err := s.scheduleLocked(j); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"job":     cfg.Name,
		"cron":    cfg.CronSchedule,
		"enabled": cfg.Enabled,
	}).Info("Job registrado no agendador")

	return nil
}

// scheduleLocked agenda o job no gocron. Chamar com o mutex adquirido.
func (s *Service) scheduleLocked(j *job) error {
	name := j.config.Name

	cronJob, err := s.scheduler.Cron(j.config.CronSchedule).Tag(name).Do(func() {
		if _, err := s.execute(name); err != nil {
			if errors.Is(err, ErrJobAlreadyRunning) {
				logrus.WithField("job", name).Info("Execução agendada ignorada: job ainda em andamento")
				return
			}

			logrus.WithFields(logrus.Fields{
				"job":   name,
				"error": err,
			}).Error("Execução agendada do job falhou")
		}
	})
	if err != nil {
		return err
	}

	j.cronJob = cronJob
	return nil
}

// StartAll coloca o agendador em execução em segundo plano.
func (s *Service) StartAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.StartAsync()

	for _, j := range s.jobs {
		s.refreshNextRunLocked(j)
	}

	logrus.WithField("jobs", len(s.jobs)).Info("Agendador iniciado")
}

// StopAll para o agendador. Execuções em andamento terminam normalmente.
func (s *Service) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.Stop()
	logrus.Info("Agendador parado")
}

// RunJobNow dispara uma execução manual síncrona do job. Retorna
// ErrJobAlreadyRunning quando já existe execução em andamento.
func (s *Service) RunJobNow(name string) (*domain.SyncResult, error) {
	return s.execute(name)
}

// EnableJob habilita o job e o coloca no cron. Retorna false para nome
// desconhecido.
func (s *Service) EnableJob(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[name]
	if !ok {
		return false
	}

	if j.config.Enabled {
		return true
	}

	j.config.Enabled = true
	if err := s.scheduleLocked(j); err != nil {
		logrus.WithFields(logrus.Fields{
			"job":   name,
			"error": err,
		}).Error("Erro ao agendar job habilitado")
		j.config.Enabled = false
		return false
	}

	s.refreshNextRunLocked(j)
	logrus.WithField("job", name).Info("Job habilitado")
	return true
}

// DisableJob tira o job do cron sem removê-lo do registro; execuções manuais
// continuam permitidas.
func (s *Service) DisableJob(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[name]
	if !ok {
		return false
	}

	if !j.config.Enabled {
		return true
	}

	j.config.Enabled = false
	j.config.NextRun = nil
	if j.cronJob != nil {
		s.scheduler.RemoveByReference(j.cronJob)
		j.cronJob = nil
	}

	logrus.WithField("job", name).Info("Job desabilitado")
	return true
}

// Status devolve uma fotografia da configuração e do estado de todos os jobs.
func (s *Service) Status() []domain.JobConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	configs := make([]domain.JobConfig, 0, len(s.jobs))
	for _, j := range s.jobs {
		s.refreshNextRunLocked(j)
		configs = append(configs, j.config)
	}

	return configs
}

// execute roda o handler do job garantindo exclusão mútua por job: o estado
// vai a running antes do handler e volta a idle ou error depois.
func (s *Service) execute(name string) (*domain.SyncResult, error) {
	s.mu.Lock()

	j, ok := s.jobs[name]
	if !ok {
		s.mu.Unlock()
		return nil, ErrJobNotFound
	}

	if j.config.Status == domain.JobRunning {
		s.mu.Unlock()
		return nil, ErrJobAlreadyRunning
	}

	j.config.Status = domain.JobRunning
	startedAt := time.Now()
	j.config.LastRun = &startedAt
	handler := j.handler

	s.mu.Unlock()

	logrus.WithField("job", name).Info("Executando job")
	result, err := handler(context.Background())

	s.mu.Lock()
	if err != nil {
		j.config.Status = domain.JobError
	} else {
		j.config.Status = domain.JobIdle
	}
	s.refreshNextRunLocked(j)
	s.mu.Unlock()

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"job":      name,
			"duration": time.Since(startedAt).String(),
			"error":    err,
		}).Error("Job terminou com erro")
		return result, err
	}

	logrus.WithFields(logrus.Fields{
		"job":      name,
		"duration": time.Since(startedAt).String(),
	}).Info("Job concluído")

	return result, nil
}

// refreshNextRunLocked atualiza o próximo disparo a partir do gocron. Chamar
// com o mutex adquirido.
func (s *Service) refreshNextRunLocked(j *job) {
	if j.cronJob == nil {
		j.config.NextRun = nil
		return
	}

	next := j.cronJob.NextRun()
	if next.IsZero() {
		j.config.NextRun = nil
		return
	}

	j.config.NextRun = &next
}
