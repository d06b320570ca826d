package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 25, c.Rows)
	assert.Equal(t, 25, c.Cols)
	assert.Equal(t, 4, c.FPS)
	assert.Equal(t, "Info", c.Trace)
	assert.Equal(t, 1000000, c.MaxDepth)
	assert.Equal(t, 1000000, c.MaxSilentCalls)
	assert.Equal(t, 0, c.StepBudget)
	assert.NoError(t, c.Validate())
	assert.Len(t, c.LevelOptions(), 2)
	assert.Len(t, c.InterpreterOptions(), 2)
}

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader("rows: 13\ncols: 7\ntrace: Debug\nstep-budget: 100\n"))
	require.NoError(t, err)
	assert.Equal(t, 13, c.Rows)
	assert.Equal(t, 7, c.Cols)
	assert.Equal(t, "Debug", c.Trace)
	assert.Equal(t, 100, c.StepBudget)
	assert.Equal(t, 4, c.FPS, "missing keys keep their defaults")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "herbert.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 10\n"), 0644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, c.FPS)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInvalid(t *testing.T) {
	for _, text := range []string{
		"rows: 0\n",
		"fps: -1\n",
		"max-depth: 0\n",
		"step-budget: -5\n",
		"trace: Verbose\n",
		"colour: red\n",
		"rows: [1, 2]\n",
	} {
		_, err := Read(strings.NewReader(text))
		assert.Error(t, err, text)
	}
}
