package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result, with earlier sources winning.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			App:     App{TokenSignKey: "env-key", TokenIssuer: "env-issuer"},
			Storage: Storage{DB: DB{DSN: "postgres://env"}},
			Server:  Server{HTTPAddress: "localhost:8080"},
		},
		&StructuredConfig{
			App:     App{TokenIssuer: "flag-issuer", TokenDuration: 2 * time.Hour},
			Storage: Storage{DB: DB{DSN: "postgres://flag"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.App.TokenSignKey)
	assert.Equal(t, "env-issuer", cfg.App.TokenIssuer, "first source must win")
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration, "later source fills gaps")
	assert.Equal(t, "postgres://env", cfg.Storage.DB.DSN)
}

// TestBuild_AppliesPolicyDefaults verifies that lockout, entropy, queue and
// timeout defaults are filled when no source provides them.
func TestBuild_AppliesPolicyDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App:     App{TokenSignKey: "key", TokenIssuer: "issuer"},
		Storage: Storage{DB: DB{DSN: "postgres://somewhere"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, defaultMaxLoginAttempts, cfg.App.MaxLoginAttempts)
	assert.Equal(t, float64(defaultMinPasswordEntropy), cfg.App.MinPasswordEntropy)
	assert.Equal(t, defaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, defaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, defaultNotifyQueueSize, cfg.Notify.QueueSize)
}

// TestBuild_ValidationFailures verifies that missing required settings are
// rejected with the corresponding sentinel error.
func TestBuild_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *StructuredConfig
		wantErr error
	}{
		{
			name:    "missing DSN",
			cfg:     &StructuredConfig{Server: Server{HTTPAddress: "localhost:8080"}, App: App{TokenSignKey: "k", TokenIssuer: "i"}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing server address",
			cfg:     &StructuredConfig{Storage: Storage{DB: DB{DSN: "postgres://x"}}, App: App{TokenSignKey: "k", TokenIssuer: "i"}},
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "missing token sign key",
			cfg:     &StructuredConfig{Storage: Storage{DB: DB{DSN: "postgres://x"}}, Server: Server{HTTPAddress: "localhost:8080"}, App: App{TokenIssuer: "i"}},
			wantErr: ErrInvalidAppConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			b.configs = append(b.configs, tt.cfg)

			_, err := b.build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneConfig verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.Len(t, b.configs, 1)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoPathSpecified verifies that withJSON is a no-op when no
// earlier source provided a JSON file path.
func TestWithJSON_NoPathSpecified(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_BadPath verifies that an unreadable JSON path is recorded as a
// builder error.
func TestWithJSON_BadPath(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})

	b.withJSON()
	assert.Error(t, b.err)
}
