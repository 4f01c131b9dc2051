package cli

import (
	"path/filepath"
	"testing"

	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/infra/seedfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedExportAndCheck(t *testing.T) {
	for _, name := range []string{"plan.yaml", "plan.json"} {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestContainer(t)
			path := filepath.Join(t.TempDir(), name)

			out, _, err := execute(t, c, "", "seed", "export", path)
			require.NoError(t, err)
			assert.Contains(t, out, "1 project(s), 3 task(s), 1 event(s)")

			out, _, err = execute(t, c, "", "seed", "check", path)
			require.NoError(t, err)
			assert.Equal(t, "OK: 1 project(s), 3 task(s), 1 event(s)\n", out)
		})
	}
}

func TestSeedExport_Auto(t *testing.T) {
	c, _ := newTestContainer(t)
	path := filepath.Join(t.TempDir(), "plan.yml")

	_, _, err := execute(t, c, "", "seed", "export", "--auto", path)
	require.NoError(t, err)

	seed, err := seedfile.Read(path)
	require.NoError(t, err)
	assert.Len(t, seed.Events, 2)
	for _, task := range seed.Tasks {
		if task.ID == "a" {
			assert.True(t, task.IsScheduled())
		}
	}
}

func TestSeedCheck_Errors(t *testing.T) {
	c, _ := newTestContainer(t)
	dir := t.TempDir()

	_, _, err := execute(t, c, "", "seed", "check", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, _, err = execute(t, c, "", "seed", "check", filepath.Join(dir, "plan.txt"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedSeedExt)
}
