/*
Package play drives play sessions: a program playing a level.

A session connects the lazy action sequence of a program with the simulation
environment of a level. Sessions may be stepped manually, run in real time
(one action per frame) or run in batch mode for a bounded number of steps.
Sessions track the current and the best score reached so far. Sessions may
share a table of Records, which keeps the best score per level across resets
and sessions.

Time is passed in by clients, i.e. sessions never look at the clock
themselves.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package play

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/herbert/interp"
	"github.com/npillmayer/herbert/lang/ast"
	"github.com/npillmayer/herbert/lang/counter"
	"github.com/npillmayer/herbert/lang/parser"
	"github.com/npillmayer/herbert/level"
	"github.com/npillmayer/herbert/sim"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer traces with key 'herbert.play'.
func tracer() tracing.Trace {
	return tracing.Select("herbert.play")
}

// --- Programs --------------------------------------------------------------

// Program is a parsed herbert program together with its source.
type Program struct {
	Source string
	Tree   *ast.Program
	bytes  int
	lines  []string
	opts   []interp.Option
}

// NewProgram parses source text. Syntax errors are returned unchanged.
// Options are applied to every evaluation of the program.
func NewProgram(source string, opts ...interp.Option) (*Program, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return &Program{
		Source: source,
		Tree:   tree,
		bytes:  counter.Bytes(tree),
		lines:  strings.Split(source, "\n"),
		opts:   opts,
	}, nil
}

// ReadProgram reads and parses a program.
func ReadProgram(r io.Reader, opts ...interp.Option) (*Program, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read program")
	}
	return NewProgram(string(source), opts...)
}

// LoadProgram reads and parses a program file.
func LoadProgram(path string, opts ...interp.Option) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open program file")
	}
	defer f.Close()
	return ReadProgram(f, opts...)
}

// Bytes returns the byte cost of the program.
func (p *Program) Bytes() int {
	return p.bytes
}

// Lines returns the source lines of the program.
func (p *Program) Lines() []string {
	return p.lines
}

// Commands starts a new evaluation of the program.
func (p *Program) Commands() *interp.Commands {
	return interp.Evaluate(p.Tree, p.opts...)
}

// --- Sessions --------------------------------------------------------------

// Session is a program playing a level.
type Session struct {
	Level   *level.Level
	Program *Program
	records *Records
	levelID string // fingerprint of the level
	env     *sim.Environment
	cmds    *interp.Commands // nil if exhausted
	spf     time.Duration    // duration of a frame
	running bool
	runNow  bool
	start   time.Time
	current int   // points for the current state
	best    int   // maximum points reached
	steps   int   // number of actions executed
	err     error // interpreter error which ended the session
}

// NewSession creates a session for a level and a program, playing at fps
// frames per second. The session is reset and ready to go.
func NewSession(lvl *level.Level, prog *Program, fps int) *Session {
	if fps < 1 {
		fps = 1
	}
	s := &Session{
		Level:   lvl,
		Program: prog,
		levelID: lvl.Fingerprint(),
		spf:     time.Second / time.Duration(fps),
	}
	s.Reset()
	return s
}

// Reset starts the session over: a new environment and a fresh evaluation of
// the program. The session is stopped and points are set to zero.
func (s *Session) Reset() {
	if s.cmds != nil {
		s.cmds.Break()
	}
	s.running, s.runNow = false, false
	s.start = time.Time{}
	s.current, s.best, s.steps = 0, 0, 0
	s.err = nil
	s.env = sim.New(s.Level)
	s.cmds = s.Program.Commands()
	tracer().Debugf("session reset")
}

// Start puts the session into running mode. The first action will be
// executed with the next update. Start has no effect if the program has no
// more actions.
func (s *Session) Start(now time.Time) {
	if s.running || s.cmds == nil {
		return
	}
	s.running, s.runNow = true, true
	s.start = now
	tracer().Debugf("session started")
}

// Stop leaves running mode.
func (s *Session) Stop() {
	if !s.running {
		return
	}
	s.running, s.runNow = false, false
	s.start = time.Time{}
	tracer().Debugf("session stopped after %d steps", s.steps)
}

// Step executes a single action, if the session is not running. Returns
// true if the state of the session has changed.
func (s *Session) Step() bool {
	if s.running {
		return false
	}
	return s.move()
}

// Update advances a running session to time now. Returns true if the state
// of the session has changed.
func (s *Session) Update(now time.Time) bool {
	if !s.running {
		return false
	}
	changed := false
	elapsed := now.Sub(s.start)
	if s.runNow || elapsed > s.spf {
		s.runNow = false
		changed = s.move()
	}
	if elapsed > s.spf {
		s.start = now
	}
	return changed
}

// Run executes up to n actions in batch mode and returns the number of
// actions executed.
func (s *Session) Run(n int) int {
	steps := s.steps
	for i := 0; i < n && s.cmds != nil; i++ {
		s.move()
	}
	return s.steps - steps
}

// move pulls the next action and applies it to the environment.
func (s *Session) move() bool {
	if s.cmds == nil {
		return false
	}
	a, ok := s.cmds.Next()
	if !ok {
		if s.err = s.cmds.Err(); s.err != nil {
			tracer().Errorf("program halted: %v", s.err)
		} else {
			tracer().Infof("program ended after %d steps", s.steps)
		}
		s.cmds = nil
		s.running = false
		return true
	}
	s.env.Step(a)
	s.steps++
	s.current = s.env.Score(s.Program.Bytes())
	if s.current > s.best {
		s.best = s.current
	}
	if s.records != nil && s.records.submit(s.levelID, s.current) {
		tracer().Infof("new record for level %s: %d points", s.LevelName(), s.current)
	}
	return true
}

// Running is a predicate: is the session in running mode?
func (s *Session) Running() bool {
	return s.running
}

// Finished is a predicate: has the program no more actions?
func (s *Session) Finished() bool {
	return s.cmds == nil
}

// Points returns the points for the current state of the session.
func (s *Session) Points() int {
	return s.current
}

// BestPoints returns the maximum points reached since the last reset.
func (s *Session) BestPoints() int {
	return s.best
}

// UseRecords makes the session enter its points into a table of records.
func (s *Session) UseRecords(r *Records) {
	s.records = r
}

// Record returns the best points for the session's level in its table of
// records. Without a table, Record returns the best points since the last
// reset.
func (s *Session) Record() int {
	if s.records == nil {
		return s.best
	}
	return s.records.best[s.levelID]
}

// LevelID returns a short identifier for the content of the session's level.
func (s *Session) LevelID() string {
	id := s.levelID[strings.IndexByte(s.levelID, '_')+1:] // strip hash version
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Completed is a predicate: has the level been completed?
func (s *Session) Completed() bool {
	return s.env.Completed()
}

// Steps returns the number of actions executed since the last reset.
func (s *Session) Steps() int {
	return s.steps
}

// Err returns the error which halted the program, if any.
func (s *Session) Err() error {
	return s.err
}

// Grid returns the display grid of the current state.
func (s *Session) Grid() []string {
	return s.env.Snapshot()
}

// Environment returns the simulation environment of the session.
func (s *Session) Environment() *sim.Environment {
	return s.env
}

// LevelName returns the display name of the level: the level's name without
// file extension.
func (s *Session) LevelName() string {
	name := s.Level.Name
	return strings.TrimSuffix(name, filepath.Ext(name))
}
