package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

type fakeSnapshotter struct {
	res   history.SnapshotResult
	err   error
	calls int
}

func (f *fakeSnapshotter) SnapshotStore(context.Context) (history.SnapshotResult, error) {
	f.calls++
	return f.res, f.err
}

type fakeRecorder struct {
	jobs     []string
	success  []bool
	recorded int
	lowStock int
}

func (r *fakeRecorder) RecordJobRun(job string, _ time.Duration, success bool) {
	r.jobs = append(r.jobs, job)
	r.success = append(r.success, success)
}

func (r *fakeRecorder) RecordSnapshot(recorded, _, lowStock int) {
	r.recorded = recorded
	r.lowStock = lowStock
}

func TestScheduleSnapshot_ExpresionInvalida(t *testing.T) {
	s := New(time.UTC, nil, nil)
	err := s.ScheduleSnapshot("no es cron", &fakeSnapshotter{})
	require.Error(t, err)
	assert.Equal(t, 0, s.Entries())

	require.NoError(t, s.ScheduleSnapshot("@daily", &fakeSnapshotter{}))
	assert.Equal(t, 1, s.Entries())
}

func TestRunSnapshot_PublicaResultado(t *testing.T) {
	rec := &fakeRecorder{}
	snap := &fakeSnapshotter{res: history.SnapshotResult{Recorded: 4, LowStock: 2}}
	s := New(time.UTC, nil, rec)

	s.RunSnapshot(context.Background(), snap)

	assert.Equal(t, 1, snap.calls)
	assert.Equal(t, []string{SnapshotJobName}, rec.jobs)
	assert.Equal(t, []bool{true}, rec.success)
	assert.Equal(t, 4, rec.recorded)
	assert.Equal(t, 2, rec.lowStock)
}

func TestRunSnapshot_ErrorSeRegistra(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{}
	s := New(time.UTC, logger.NewWithWriter(&buf, "info"), rec)

	s.RunSnapshot(context.Background(), &fakeSnapshotter{err: errors.New("db caída")})

	assert.Equal(t, []bool{false}, rec.success)
	assert.Contains(t, buf.String(), "job fallido")
	assert.Contains(t, buf.String(), "db caída")
}

func TestStop_SinJobs(t *testing.T) {
	s := New(nil, nil, nil)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
