package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordle.toml")
	err := os.WriteFile(path, []byte("[engine]\ntop_k_default = 8\nshard_count = 6\n"), 0o644)
	assert.NoError(t, err)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 8, cfg.Engine.TopKDefault)
	assert.Equal(t, 6, cfg.Engine.ShardCount)
	assert.Equal(t, 30, cfg.Engine.RequestTimeoutSeconds, "unset fields keep their default")
}
