// Package scheduler ejecuta jobs periódicos (snapshot diario de cantidades) con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

// SnapshotJobName nombre del job en logs y métricas.
const SnapshotJobName = "history_snapshot"

// Snapshotter lo implementa history.UseCase.
type Snapshotter interface {
	SnapshotStore(ctx context.Context) (history.SnapshotResult, error)
}

// Recorder destino de métricas de los jobs (metrics.Metrics). Puede ser nil.
type Recorder interface {
	RecordJobRun(job string, duration time.Duration, success bool)
	RecordSnapshot(recorded, failed, lowStock int)
}

// Scheduler envuelve un cron con los jobs de la aplicación.
type Scheduler struct {
	cron     *cron.Cron
	log      *logger.Logger
	recorder Recorder
	timeout  time.Duration
}

// New construye el scheduler. loc define la zona de las expresiones cron.
func New(loc *time.Location, log *logger.Logger, recorder Recorder) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cronLogger{log}), cron.SkipIfStillRunning(cronLogger{log}))),
		log:      log,
		recorder: recorder,
		timeout:  30 * time.Minute,
	}
}

// ScheduleSnapshot registra el snapshot de cantidades con la expresión expr (ej. "@daily").
func (s *Scheduler) ScheduleSnapshot(expr string, snap Snapshotter) error {
	if _, err := s.cron.AddFunc(expr, func() { s.RunSnapshot(context.Background(), snap) }); err != nil {
		return fmt.Errorf("programar %s (%q): %w", SnapshotJobName, expr, err)
	}
	s.log.Info().Str("job", SnapshotJobName).Str("expr", expr).Msg("job programado")
	return nil
}

// RunSnapshot ejecuta el snapshot una vez y publica el resultado.
func (s *Scheduler) RunSnapshot(ctx context.Context, snap Snapshotter) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	res, err := snap.SnapshotStore(ctx)
	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.RecordJobRun(SnapshotJobName, elapsed, err == nil)
		if err == nil {
			s.recorder.RecordSnapshot(res.Recorded, res.Failed, res.LowStock)
		}
	}
	if err != nil {
		s.log.Error().Err(err).Str("job", SnapshotJobName).Dur("elapsed", elapsed).Msg("job fallido")
	}
}

// Start arranca el cron en segundo plano.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop detiene el cron y espera a los jobs en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler detenido con jobs en curso")
	}
}

// Entries cantidad de jobs registrados.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
