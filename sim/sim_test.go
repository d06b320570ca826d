package sim

import (
	"math/big"
	"testing"

	"github.com/npillmayer/herbert"
	"github.com/npillmayer/herbert/level"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The program "sslsrssssrs" completes this level.
const corridor = `..........
.***......
.*r.w.g.w.
.***......
..........
1000
11`

var (
	left  = level.Position{Row: 2, Col: 4}
	right = level.Position{Row: 2, Col: 8}
)

func newEnv(t *testing.T) *Environment {
	lvl, err := level.Parse(corridor, level.Rows(5), level.Cols(10))
	require.NoError(t, err)
	return New(lvl)
}

func play(env *Environment, commands string) {
	for _, ch := range commands {
		env.Step(herbert.CommandAction(herbert.Command(ch)))
	}
}

func TestSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.sim")
	defer teardown()
	//
	for _, test := range []struct {
		commands    string
		row, col    int
		heading     level.Heading
		pressed     int
		left, right bool
		maxPressed  int
		completed   bool
	}{
		{"lss", 2, 2, level.Up, 0, false, false, 0, false},
		{"ss", 2, 4, level.Right, 1, true, false, 1, false},
		{"sslsss", 0, 4, level.Up, 1, true, false, 1, false},
		{"ssssss", 2, 8, level.Right, 1, false, true, 1, false},
		{"sslsrssssrs", 2, 8, level.Down, 2, true, true, 2, true},
		{"sslsrssssrsrss", 2, 6, level.Left, 0, false, false, 2, true},
	} {
		env := newEnv(t)
		play(env, test.commands)
		assert.Equal(t, level.Position{Row: test.row, Col: test.col}, env.Robot.Position, test.commands)
		assert.Equal(t, test.heading, env.Robot.Heading, test.commands)
		assert.Equal(t, test.pressed, env.Pressed(), test.commands)
		assert.Equal(t, test.left, env.IsPressed(left), test.commands)
		assert.Equal(t, test.right, env.IsPressed(right), test.commands)
		assert.Equal(t, test.maxPressed, env.MaxPressed(), test.commands)
		assert.Equal(t, test.completed, env.Completed(), test.commands)
	}
}

func TestTrail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.sim")
	defer teardown()
	//
	env := newEnv(t)
	play(env, "lsrss")
	assert.Equal(t, []level.Position{{Row: 2, Col: 3}, {Row: 2, Col: 4}}, env.Trail)
}

func TestBorder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.sim")
	defer teardown()
	//
	env := newEnv(t)
	play(env, "sslssss")
	assert.Equal(t, level.Position{Row: 0, Col: 4}, env.Robot.Position)
	assert.Len(t, env.Trail, 4)
}

func TestNumberActionsAreIgnored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.sim")
	defer teardown()
	//
	env := newEnv(t)
	env.Step(herbert.NumberAction(big.NewInt(7)))
	assert.Equal(t, level.Position{Row: 2, Col: 2}, env.Robot.Position)
	assert.Equal(t, level.Right, env.Robot.Heading)
	assert.Empty(t, env.Trail)
}

func TestSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.sim")
	defer teardown()
	//
	env := newEnv(t)
	assert.Equal(t, ".*r.w.g.w.", env.Snapshot()[2])
	play(env, "ss")
	assert.Equal(t, ".*..r.g.w.", env.Snapshot()[2])
	play(env, "lsrssssrs")
	assert.Equal(t, []string{
		"..........",
		".***......",
		".*..W.g.d.",
		".***......",
		"..........",
	}, env.Snapshot())
}

func TestLevelWithoutWhiteButtons(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.sim")
	defer teardown()
	//
	lvl, err := level.Parse("u.g\n100\n5", level.Rows(1), level.Cols(3))
	require.NoError(t, err)
	env := New(lvl)
	assert.True(t, env.Completed())
	play(env, "rss")
	assert.True(t, env.Completed())
	assert.Equal(t, 100, env.Score(5))
	assert.Equal(t, 0, env.Score(6))
}

func TestEnvironmentScore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.sim")
	defer teardown()
	//
	env := newEnv(t)
	play(env, "ss")
	assert.Equal(t, 250, env.Score(11)) // 1 of 2 buttons
	play(env, "lsrssssrs")
	assert.Equal(t, 1000, env.Score(11))
	assert.Equal(t, 1100, env.Score(10))
	play(env, "rss")
	assert.Equal(t, 0, env.Score(11)) // buttons released
}
