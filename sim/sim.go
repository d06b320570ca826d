/*
Package sim simulates a robot playing a level.

An Environment is instantiated from a level and then driven by a stream of
actions, one at a time:

    env := sim.New(lvl)
    for a, ok := cmds.Next(); ok; a, ok = cmds.Next() {
        env.Step(a)
    }
    points := env.Score(bytes)

The robot moves forward, or turns left or right. Moves into walls or beyond
the border of the grid are ignored. Stepping onto a white button presses it;
stepping onto a gray button releases all white buttons. A level is completed
once all white buttons have been pressed at the same time, and stays
completed afterwards.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sim

import (
	"strings"

	"github.com/npillmayer/herbert"
	"github.com/npillmayer/herbert/level"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'herbert.sim'.
func tracer() tracing.Trace {
	return tracing.Select("herbert.sim")
}

// Display symbols for white buttons.
const (
	Unpressed = 'w'
	Pressed   = 'W'
)

// Robot is the current pose of the robot.
type Robot struct {
	level.Position
	Heading level.Heading
}

// Environment is the mutable state of a level being played.
type Environment struct {
	Level      *level.Level
	Robot      Robot
	Trail      []level.Position // cells entered, in order
	pressed    map[level.Position]bool
	npressed   int
	maxPressed int
	completed  bool
}

// New instantiates a simulation environment for a level.
func New(lvl *level.Level) *Environment {
	env := &Environment{
		Level: lvl,
		Robot: Robot{
			Position: lvl.Robot.Position,
			Heading:  lvl.Robot.Facing,
		},
		pressed: make(map[level.Position]bool, len(lvl.WhiteButtons)),
	}
	for _, p := range lvl.WhiteButtons {
		env.pressed[p] = false
	}
	env.completed = len(lvl.WhiteButtons) == 0
	return env
}

// Step applies a single action. Number actions have no effect on the robot.
func (env *Environment) Step(a herbert.Action) {
	switch a.Command {
	case herbert.TurnLeft:
		env.Robot.Heading = env.Robot.Heading.TurnLeft()
	case herbert.TurnRight:
		env.Robot.Heading = env.Robot.Heading.TurnRight()
	case herbert.Forward:
		env.forward()
	default:
		tracer().Debugf("ignoring action %v", a)
	}
}

func (env *Environment) forward() {
	dr, dc := env.Robot.Heading.Delta()
	target := level.Position{Row: env.Robot.Row + dr, Col: env.Robot.Col + dc}
	if !env.Level.InBounds(target) || env.Level.IsInaccessible(target) {
		tracer().Debugf("robot blocked at %s, heading %s", env.Robot.Position, env.Robot.Heading)
		return
	}
	env.Robot.Position = target
	env.Trail = append(env.Trail, target)
	switch {
	case env.Level.IsGrayButton(target):
		if env.npressed > 0 {
			tracer().Debugf("gray button at %s releases %d white %s", target, env.npressed,
				herbert.Pluralize(env.npressed, "button", "buttons"))
		}
		for p := range env.pressed {
			env.pressed[p] = false
		}
		env.npressed = 0
	case env.Level.IsWhiteButton(target) && !env.pressed[target]:
		env.pressed[target] = true
		env.npressed++
		if env.npressed > env.maxPressed {
			env.maxPressed = env.npressed
		}
		if env.npressed == len(env.pressed) && !env.completed {
			tracer().Infof("level completed")
			env.completed = true
		}
	}
}

// IsPressed is a predicate: is the white button at p pressed?
func (env *Environment) IsPressed(p level.Position) bool {
	return env.pressed[p]
}

// Pressed returns the number of white buttons currently pressed.
func (env *Environment) Pressed() int {
	return env.npressed
}

// MaxPressed returns the maximum number of white buttons which have been
// pressed at the same time.
func (env *Environment) MaxPressed() int {
	return env.maxPressed
}

// Completed is a predicate: have all white buttons been pressed at some point?
func (env *Environment) Completed() bool {
	return env.completed
}

// Score returns the score for the current state of the environment, given the
// byte cost of the program playing it.
func (env *Environment) Score(bytes int) int {
	return Score(env.Level.Points, env.Level.MaxBytes, len(env.Level.WhiteButtons), env.npressed, bytes)
}

// Snapshot returns the grid for display, one string per row. The robot is
// shown by its heading symbol, white buttons are shown as pressed or
// unpressed.
func (env *Environment) Snapshot() []string {
	rows := make([]string, env.Level.Rows)
	var b strings.Builder
	for r := range rows {
		b.Reset()
		for c := 0; c < env.Level.Cols; c++ {
			p := level.Position{Row: r, Col: c}
			switch {
			case p == env.Robot.Position:
				b.WriteByte(env.Robot.Heading.Symbol())
			case env.Level.IsWhiteButton(p) && env.pressed[p]:
				b.WriteByte(Pressed)
			case env.Level.IsWhiteButton(p):
				b.WriteByte(Unpressed)
			default:
				b.WriteByte(env.Level.Cell(p))
			}
		}
		rows[r] = b.String()
	}
	return rows
}

// String returns the snapshot as a single string.
func (env *Environment) String() string {
	return strings.Join(env.Snapshot(), "\n")
}
