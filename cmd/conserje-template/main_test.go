package main

import (
	"os"
	"path/filepath"
	"testing"

	"dario.cat/mergo"
	"github.com/alecthomas/kingpin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestParseArgs(t *testing.T) {
	cfg, err := parseArgs(kingpin.New("conserje-template", ""), nil)
	require.NoError(t, err)
	require.NoError(t, mergo.Merge(&cfg, defaultConfig()))
	assert.Equal(t, "conserje-template.xlsx", cfg.Output)
	assert.False(t, cfg.Force)
}

func TestRunRefusesOverwrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "template.xlsx")

	require.NoError(t, run(config{Output: out}, zap.NewNop()))
	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	assert.Contains(t, f.GetSheetList(), "Reglas_de_Gobierno")
	require.NoError(t, f.Close())

	require.NoError(t, os.WriteFile(out, []byte("keep"), 0o644))
	assert.Error(t, run(config{Output: out}, zap.NewNop()))
	bs, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(bs))

	require.NoError(t, run(config{Output: out, Force: true}, zap.NewNop()))
	bs, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.NotEqual(t, "keep", string(bs))
}
