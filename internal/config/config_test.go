package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "preprod", cfg.Network)
	assert.Equal(t, "term", cfg.Backend)
	assert.Equal(t, 5*time.Minute, cfg.TraceRetention)
	assert.Equal(t, 20, cfg.ListHeight)
}

func TestParseFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Parse([]string{"-network", "mainnet", "-backend", "simulator", "-list-height", "40"})
	require.NoError(t, err)
	assert.Equal(t, "mainnet", cfg.Network)
	assert.Equal(t, "simulator", cfg.Backend)
	assert.Equal(t, 40, cfg.ListHeight)
}

func TestParseEnvSeedsDefaultBeforeFlags(t *testing.T) {
	t.Setenv("AMARU_NETWORK", "preview")
	t.Setenv("AMARU_LEDGER_DB", "/var/lib/amaru/ledger")

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "preview", cfg.Network)
	assert.Equal(t, "/var/lib/amaru/ledger", cfg.LedgerDBPath)
}

func TestParseEnvLosesToExplicitFlag(t *testing.T) {
	t.Setenv("AMARU_NETWORK", "preview")
	cfg, err := Parse([]string{"-network", "mainnet"})
	require.NoError(t, err)
	assert.Equal(t, "mainnet", cfg.Network)
}

func TestParseRejectsInvalidBackend(t *testing.T) {
	_, err := Parse([]string{"-backend", "headless"})
	assert.Error(t, err)
}

func TestParseRejectsNonPositiveListHeight(t *testing.T) {
	_, err := Parse([]string{"-list-height", "0"})
	assert.Error(t, err)
}
