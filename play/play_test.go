package play

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/herbert"
	"github.com/npillmayer/herbert/interp"
	"github.com/npillmayer/herbert/level"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridor = `..........
.***......
.*r.w.g.w.
.***......
..........
1000
11`

func newSession(t *testing.T, source string, opts ...interp.Option) *Session {
	lvl, err := level.Parse(corridor, level.Rows(5), level.Cols(10), level.Name("corridor.txt"))
	require.NoError(t, err)
	prog, err := NewProgram(source, opts...)
	require.NoError(t, err)
	return NewSession(lvl, prog, 4)
}

func TestProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.play")
	defer teardown()
	//
	prog, err := NewProgram("a(A):sa(A-1)\na(4)")
	require.NoError(t, err)
	assert.Equal(t, 8, prog.Bytes())
	assert.Equal(t, []string{"a(A):sa(A-1)", "a(4)"}, prog.Lines())
	actions, err := prog.Commands().Take(10)
	require.NoError(t, err)
	assert.Equal(t, "ssss", interp.Format(actions))
	actions, _ = prog.Commands().Take(10)
	assert.Len(t, actions, 4, "every evaluation starts from scratch")

	_, err = NewProgram("a:\na")
	var synerr *herbert.SyntaxError
	assert.True(t, errors.As(err, &synerr))
}

func TestLoadProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.play")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "solution.h")
	require.NoError(t, os.WriteFile(path, []byte("sslsrssssrs\n"), 0644))
	prog, err := LoadProgram(path)
	require.NoError(t, err)
	assert.Equal(t, 11, prog.Bytes())
	_, err = LoadProgram(filepath.Join(t.TempDir(), "missing.h"))
	assert.Error(t, err)
}

func TestSessionSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.play")
	defer teardown()
	//
	s := newSession(t, "sslsrssssrs")
	assert.Equal(t, "corridor", s.LevelName())
	for i := 0; i < 11; i++ {
		assert.True(t, s.Step())
	}
	assert.Equal(t, 11, s.Steps())
	assert.True(t, s.Completed())
	assert.Equal(t, 1000, s.Points())
	assert.Equal(t, 1000, s.BestPoints())
	assert.False(t, s.Finished())
	assert.True(t, s.Step(), "detecting the end changes the session")
	assert.True(t, s.Finished())
	assert.False(t, s.Step())
	assert.NoError(t, s.Err())
}

func TestBestPoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.play")
	defer teardown()
	//
	s := newSession(t, "a:ssssa\na") // presses the left button, then releases it
	assert.Equal(t, 7, s.Program.Bytes())
	assert.Equal(t, 2, s.Run(2))
	assert.Equal(t, 250, s.Points())
	s.Run(2)
	assert.Equal(t, 0, s.Points())
	assert.Equal(t, 250, s.BestPoints())
	assert.Equal(t, 4, s.Steps())
	s.Reset()
	assert.Equal(t, 0, s.Steps())
	assert.Equal(t, 0, s.BestPoints())
	assert.Equal(t, []string{"..........", ".***......", ".*r.w.g.w.", ".***......", ".........."}, s.Grid())
}

func TestSessionTiming(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.play")
	defer teardown()
	//
	s := newSession(t, "a:sa\na")
	t0 := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, s.Update(t0), "stopped sessions do not update")
	s.Start(t0)
	assert.True(t, s.Running())
	assert.False(t, s.Step(), "running sessions do not step manually")
	assert.True(t, s.Update(t0), "first action runs immediately")
	assert.Equal(t, 1, s.Steps())
	assert.False(t, s.Update(t0.Add(100*time.Millisecond)))
	assert.False(t, s.Update(t0.Add(250*time.Millisecond)))
	assert.True(t, s.Update(t0.Add(251*time.Millisecond)))
	assert.Equal(t, 2, s.Steps())
	assert.False(t, s.Update(t0.Add(400*time.Millisecond)))
	assert.True(t, s.Update(t0.Add(600*time.Millisecond)))
	assert.Equal(t, 3, s.Steps())
	s.Stop()
	assert.False(t, s.Running())
	assert.False(t, s.Update(t0.Add(10*time.Second)))
	assert.True(t, s.Step())
	assert.Equal(t, 4, s.Steps())
}

func TestRunningSessionStopsAtEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.play")
	defer teardown()
	//
	s := newSession(t, "s")
	t0 := time.Now()
	s.Start(t0)
	assert.True(t, s.Update(t0))
	assert.True(t, s.Update(t0.Add(time.Second)))
	assert.False(t, s.Running())
	assert.True(t, s.Finished())
	s.Start(t0.Add(2 * time.Second))
	assert.False(t, s.Running(), "finished sessions cannot be started")
}

func TestSessionError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.play")
	defer teardown()
	//
	s := newSession(t, "a:a\na", interp.MaxSilentCalls(1000))
	assert.Equal(t, 0, s.Run(10))
	var rerr *herbert.RecursionError
	assert.True(t, errors.As(s.Err(), &rerr))
	assert.True(t, s.Finished())
	s.Reset()
	assert.NoError(t, s.Err())
	assert.False(t, s.Finished())
}

func TestRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.play")
	defer teardown()
	//
	records := NewRecords()
	s := newSession(t, "a:ssssa\na")
	s.UseRecords(records)
	s.Run(4)
	assert.Equal(t, 250, s.Record())
	s.Reset()
	assert.Equal(t, 0, s.BestPoints())
	assert.Equal(t, 250, s.Record(), "records survive a reset")
	//
	renamed, err := level.Parse(corridor, level.Rows(5), level.Cols(10), level.Name("copy.txt"))
	require.NoError(t, err)
	prog, err := NewProgram("sslsrssssrs")
	require.NoError(t, err)
	other := NewSession(renamed, prog, 4)
	other.UseRecords(records)
	assert.Equal(t, s.LevelID(), other.LevelID())
	assert.Len(t, other.LevelID(), 8)
	assert.Equal(t, 250, other.Record(), "levels with equal content share a record")
	other.Run(11)
	assert.Equal(t, 1000, records.Best(renamed))
	assert.Equal(t, 1000, s.Record())
	assert.Equal(t, 1, records.Len())
}

func TestRecordWithoutTable(t *testing.T) {
	s := newSession(t, "a:ssssa\na")
	s.Run(4)
	assert.Equal(t, 250, s.Record())
}
