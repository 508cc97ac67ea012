package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Get()

	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 2*time.Minute, cfg.IngestDeadline)
	assert.Equal(t, 7, cfg.RetentionDays)
	assert.Equal(t, 100, cfg.NewsLimit)
	assert.Zero(t, cfg.FetchInterval)
}
