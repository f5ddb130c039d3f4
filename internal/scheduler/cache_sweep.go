package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-insights-dashboard/internal/config"
)

// Sweeper é o cache que tem entradas expiradas removidas periodicamente
type Sweeper interface {
	Sweep() int
	Len() int
}

// SweepRecorder recebe a quantidade de entradas removidas em cada execução
type SweepRecorder interface {
	RecordCacheSweep(removed int)
}

// CacheSweepConfig representa a configuração do agendador de limpeza do cache
type CacheSweepConfig struct {
	CronSchedule string
	SweepEnabled bool
	GCTime       time.Duration
}

// CacheSweepService agenda a remoção das entradas do cache sem acesso há mais de GCTime
type CacheSweepService struct {
	scheduler            *gocron.Scheduler
	config               CacheSweepConfig
	cache                Sweeper
	recorder             SweepRecorder
	sweepRunning         bool
	sweepMutex           sync.Mutex
	lastSweepStartedAt   time.Time
	lastSweepCompletedAt time.Time
	lastSweepRemoved     int
}

func NewCacheSweepService(cache Sweeper, recorder SweepRecorder, appConfig *config.Config) *CacheSweepService {
	sweepConfig := CacheSweepConfig{
		CronSchedule: appConfig.QueryCache.SweepCron,
		SweepEnabled: appConfig.QueryCache.SweepEnabled && appConfig.QueryCache.GCTime() > 0,
		GCTime:       appConfig.QueryCache.GCTime(),
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": sweepConfig.CronSchedule,
		"sweep_enabled": sweepConfig.SweepEnabled,
		"gc_time":       sweepConfig.GCTime.String(),
	}).Info("Configuração do agendador de limpeza do cache carregada")

	return &CacheSweepService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    sweepConfig,
		cache:     cache,
		recorder:  recorder,
	}
}

// Start inicia o agendador
func (s *CacheSweepService) Start(ctx context.Context) error {
	if !s.config.SweepEnabled {
		logrus.Info("Limpeza do cache de consultas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza do cache de consultas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sweep()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do cache de consultas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza do cache de consultas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CacheSweepService) sweep() {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Limpeza do cache já em andamento, ignorando")
		return
	}
	s.sweepRunning = true
	s.lastSweepStartedAt = time.Now()
	s.sweepMutex.Unlock()

	removed := s.cache.Sweep()

	if s.recorder != nil {
		s.recorder.RecordCacheSweep(removed)
	}

	s.sweepMutex.Lock()
	s.sweepRunning = false
	s.lastSweepRemoved = removed
	s.lastSweepCompletedAt = time.Now()
	s.sweepMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"removed":   removed,
		"remaining": s.cache.Len(),
	}).Debug("Limpeza do cache de consultas concluída")
}

// TriggerManualSync executa uma limpeza fora do agendamento
func (s *CacheSweepService) TriggerManualSync() {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Limpeza do cache já em andamento, ignorando solicitação manual")
		return
	}
	s.sweepMutex.Unlock()

	logrus.Info("Iniciando limpeza manual do cache de consultas")
	go s.sweep()
}

// GetStatus retorna o status atual da limpeza
func (s *CacheSweepService) GetStatus() map[string]any {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	return map[string]any{
		"sweep_running":           s.sweepRunning,
		"sweep_cron":              s.config.CronSchedule,
		"sweep_enabled":           s.config.SweepEnabled,
		"gc_time_seconds":         int(s.config.GCTime.Seconds()),
		"last_sweep_started_at":   s.lastSweepStartedAt,
		"last_sweep_completed_at": s.lastSweepCompletedAt,
		"last_sweep_removed":      s.lastSweepRemoved,
		"cached_entries":          s.cache.Len(),
	}
}
