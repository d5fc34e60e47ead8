package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

func TestEstimateCommand(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ESTIMATE_API_KEY", "")
	t.Setenv("RATES_PATH", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"estimate", "--transport", "Train", "--km", "200"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "Your estimated CO₂ emission is 9.00 kg. 🟢 Eco-conscious travel.\n", out.String())
}

func TestEstimateCommandRejectsUnknownTransport(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ESTIMATE_API_KEY", "")
	t.Setenv("RATES_PATH", "")

	rootCmd.SetArgs([]string{"estimate", "--transport", "boat", "--km", "10"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.ErrorIs(t, rootCmd.Execute(), domain.ErrUnknownTransport)
}

func TestPrintEstimate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printEstimate(&out, domain.NewEstimate(460, domain.SourceFallback)))
	assert.Contains(t, out.String(), "460.00 kg")
	assert.Contains(t, out.String(), "approximate value")
}
