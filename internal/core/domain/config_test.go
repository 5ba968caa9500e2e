package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/arcstr"
	"go.trai.ch/arcstr/internal/core/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Positive(t, cfg.Stress.Goroutines)
	assert.Equal(t, 10000, cfg.Stress.Iterations)
	assert.True(t, cfg.Stress.Payload.IsStatic())
	assert.Equal(t, domain.FormatText, cfg.Lex.Format)
	assert.False(t, cfg.Lex.KeepWhitespace)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Config)
	}{
		{name: "zero goroutines", mutate: func(c *domain.Config) { c.Stress.Goroutines = 0 }},
		{name: "negative iterations", mutate: func(c *domain.Config) { c.Stress.Iterations = -1 }},
		{name: "empty payload", mutate: func(c *domain.Config) { c.Stress.Payload = arcstr.Empty() }},
		{name: "unknown format", mutate: func(c *domain.Config) { c.Lex.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "yaml", "cbor"} {
		f, err := domain.ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, domain.Format(s), f)
	}

	_, err := domain.ParseFormat("TEXT")
	assert.True(t, errors.Is(err, domain.ErrUnknownFormat))
}
