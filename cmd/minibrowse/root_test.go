package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The CLI honors the same unprefixed environment variables the config
// package documents.
func TestLoadConfigUnprefixedEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("DEFAULT_PORT", "9000")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "warning", cfg.LogLevel)
	assert.Equal(t, uint16(9000), cfg.DefaultPort)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}
