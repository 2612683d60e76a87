package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCfgDefaults(t *testing.T) {
	cfg := NewCfg()
	assert.Equal(t, 64, cfg.PoolSize)
	assert.Equal(t, 1, cfg.NumInstances)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewCfg()
	cfg.Load(&CommandLineArgs{ConfigPath: "/nonexistent/path.ini"})
	assert.Equal(t, 64, cfg.PoolSize)
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bustub.ini")
	contents := "[buffer_pool]\npool_size = 128\nnum_instances = 4\ndata_file = testdata/x.db\n\n[logs]\nlevel = debug\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg := NewCfg()
	cfg.Load(&CommandLineArgs{ConfigPath: path})

	assert.Equal(t, 128, cfg.PoolSize)
	assert.Equal(t, 4, cfg.NumInstances)
	assert.Equal(t, "testdata/x.db", cfg.DataFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, cfg.FlushIntervalDuration.Seconds(), float64(1))
}
