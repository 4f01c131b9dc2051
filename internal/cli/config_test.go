package cli

import (
	"os"
	"testing"

	"github.com/runoshun/planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigTemplateCommand(t *testing.T) {
	c, _ := newTestContainer(t)

	out, _, err := execute(t, c, "", "config", "template")

	require.NoError(t, err)
	assert.Equal(t, domain.ConfigTemplate(), out)
}

func TestConfigShowCommand(t *testing.T) {
	c, seeds := newTestContainer(t)

	out, _, err := execute(t, c, "", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "(not found)")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, "[schedule]")
	assert.Contains(t, out, "day_start = 9")
	assert.Contains(t, out, "UTC")
	assert.Zero(t, seeds.Calls)
}

func TestConfigInitCommand(t *testing.T) {
	c, _ := newTestContainer(t)

	out, _, err := execute(t, c, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+c.Config.ConfigPath)

	content, err := os.ReadFile(c.Config.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigTemplate(), string(content))

	_, _, err = execute(t, c, "", "config", "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	_, _, err = execute(t, c, "", "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigInitCommand_GlobalUnavailable(t *testing.T) {
	c, _ := newTestContainer(t)

	_, _, err := execute(t, c, "", "config", "init", "--global")

	assert.Error(t, err)
}
