package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DASHBOARD_CONFIG", "")
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("PORT", "")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestViewCommand(t *testing.T) {
	t.Run("Success: Derecho", func(t *testing.T) {
		out, err := runCLI(t, "view", "--school", "Derecho")
		require.NoError(t, err)

		assert.Contains(t, out, "Derecho")
		assert.Contains(t, out, "267")
		assert.Contains(t, out, "Escuelas: 1")
		assert.Contains(t, out, "366")
		assert.NotContains(t, out, "Contabilidad")
	})

	t.Run("Success: percent labels ascending", func(t *testing.T) {
		out, err := runCLI(t, "view", "--level", "1", "--asc", "--labels", "percent")
		require.NoError(t, err)

		assert.Contains(t, out, "73.9%")
		assert.Contains(t, out, "1,522")
	})

	t.Run("Error: unknown school", func(t *testing.T) {
		_, err := runCLI(t, "view", "--school", "Medicina")
		assert.Error(t, err)
	})
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.pdf")

	_, err := runCLI(t, "export", "--out", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}
