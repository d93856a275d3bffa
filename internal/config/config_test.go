package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "SERVER_ADDR", "REDIS_URL", "CACHE_TTL", "WARM_INTERVAL", "RATE_LIMIT", "LEXICON_FILE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":3000", cfg.ServerAddr)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.WarmInterval)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, "lexicons.yaml", cfg.LexiconFile)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("WARM_INTERVAL", "0")
	t.Setenv("RATE_LIMIT", "20")
	t.Setenv("BREAKER_TIMEOUT", "not-a-duration")

	cfg := Load()

	assert.False(t, cfg.IsDev())
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, time.Duration(0), cfg.WarmInterval)
	assert.Equal(t, 20, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.BreakerTimeout)
}

func TestLoadLexiconConfig_MissingFile(t *testing.T) {
	cfg, err := LoadLexiconConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)

	// nil config resolves to the built-in tables
	lex := cfg.Resolve()
	assert.NotEmpty(t, lex.Brands)
	assert.Equal(t, "michelin", lex.Brands[0].Name)
}

func TestParseLexiconConfig(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantErr    bool
		wantMode   string
		wantBrands int
		wantPrice  []string
	}{
		{
			name:       "extend is the default mode",
			yaml:       "brands:\n  - name: otokar\nprice:\n  - pahalı\n",
			wantMode:   LexiconModeExtend,
			wantBrands: 1,
			wantPrice:  []string{"pahalı"},
		},
		{
			name:       "replace mode",
			yaml:       "mode: replace\nbrands:\n  - name: otokar\n    display: OTOKAR\n    aliases: [oto kar]\n",
			wantMode:   LexiconModeReplace,
			wantBrands: 1,
		},
		{
			name:    "unknown mode",
			yaml:    "mode: merge\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "brands: [\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseLexiconConfig([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, cfg.Mode)
			assert.Len(t, cfg.Brands, tt.wantBrands)
			if tt.wantPrice != nil {
				assert.Equal(t, tt.wantPrice, cfg.Price)
			}
		})
	}
}

func TestLexiconConfig_Resolve(t *testing.T) {
	extend, err := ParseLexiconConfig([]byte("brands:\n  - name: otokar\n"))
	require.NoError(t, err)
	lex := extend.Resolve()
	assert.Equal(t, "michelin", lex.Brands[0].Name)
	assert.Equal(t, "otokar", lex.Brands[len(lex.Brands)-1].Name)
	assert.NotEmpty(t, lex.Price)

	replace, err := ParseLexiconConfig([]byte("mode: replace\nbrands:\n  - name: otokar\n"))
	require.NoError(t, err)
	lex = replace.Resolve()
	require.Len(t, lex.Brands, 1)
	assert.Equal(t, "otokar", lex.Brands[0].Name)
	assert.Empty(t, lex.Price)
}

func TestLoadLexicons_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicons.yaml")
	require.NoError(t, os.WriteFile(path, []byte("question:\n  - niye\n"), 0o600))

	lex, err := LoadLexicons(path)
	require.NoError(t, err)
	assert.Equal(t, "niye", lex.Question[len(lex.Question)-1])
}
