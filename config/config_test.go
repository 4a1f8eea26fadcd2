// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/esh/config"
	"github.com/katalvlaran/esh/manifold"
	"github.com/katalvlaran/esh/model"
)

func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, manifold.VariantPlain, cfg.Variant())
	c, err := cfg.ModelCompression()
	require.NoError(t, err)
	assert.Equal(t, model.Zstd, c)
	assert.Len(t, cfg.SolverOptions(), 5)
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  variant: generalized
  bits: [16, 64]
  alpha: 0.5
  eigen: jacobi
store:
  kind: badger
  dir: /tmp/esh
compression: lz4
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, manifold.VariantGeneralized, cfg.Variant())
	assert.Equal(t, []int{16, 64}, cfg.Solver.Bits)
	assert.Equal(t, 0.5, cfg.Solver.Alpha)
	assert.Equal(t, config.StoreBadger, cfg.Store.Kind)
	// untouched keys keep their defaults
	assert.Equal(t, manifold.DefaultMaxIter, cfg.Solver.MaxIter)
	assert.Equal(t, 300, cfg.Anchors.Count)
	// alpha and the jacobi backend add two options
	assert.Len(t, cfg.SolverOptions(), 7)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver: [not, a, map"), 0o600))
	_, err = config.Load(path)
	require.Error(t, err)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ESH_VARIANT":     "generalized",
		"ESH_BITS":        "8, 16,32",
		"ESH_STEP_SIZE":   "0.05",
		"ESH_SEED":        "7",
		"ESH_STORE":       "minio",
		"ESH_BUCKET":      "models",
		"ESH_ENDPOINT":    "localhost:9000",
		"ESH_SECURE":      "true",
		"ESH_COMPRESSION": "none",
	}
	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []int{8, 16, 32}, cfg.Solver.Bits)
	assert.Equal(t, 0.05, cfg.Solver.StepSize)
	assert.Equal(t, int64(7), cfg.Anchors.Seed)
	assert.True(t, cfg.Store.Secure)
	assert.Equal(t, "none", cfg.Compression)
}

func TestApplyEnv_BadValues(t *testing.T) {
	env := map[string]string{
		"ESH_MAX_ITER": "many",
		"ESH_BITS":     "0",
		"ESH_SECURE":   "maybe",
	}
	cfg := config.Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ESH_MAX_ITER")
	assert.Contains(t, err.Error(), "ESH_BITS")
	assert.Contains(t, err.Error(), "ESH_SECURE")
	// failed fields keep their previous values
	assert.Equal(t, manifold.DefaultMaxIter, cfg.Solver.MaxIter)
	assert.Equal(t, []int{32}, cfg.Solver.Bits)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ESH_TEST_LOADENV=from-file\n"), 0o600))
	t.Setenv("ESH_TEST_LOADENV", "")
	require.NoError(t, os.Unsetenv("ESH_TEST_LOADENV"))

	require.NoError(t, config.LoadEnv(filepath.Join(dir, "absent.env"), path))
	assert.Equal(t, "from-file", os.Getenv("ESH_TEST_LOADENV"))
	require.NoError(t, config.LoadEnv(filepath.Join(dir, "absent.env")))
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := config.Default()
	cfg.Solver.Variant = "oblique"
	cfg.Solver.Bits = []int{0}
	cfg.Solver.Eigen = "lapack"
	cfg.Anchors.Nearest = 1000
	cfg.Store.Kind = "ftp"
	cfg.Compression = "brotli"

	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	for _, field := range []string{"solver.variant", "solver.bits", "solver.eigen", "anchors.nearest", "store.kind", "compression"} {
		assert.Contains(t, err.Error(), field)
	}

	cfg = config.Default()
	cfg.Store = config.Store{Kind: config.StoreS3}
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
}

func TestParseBits(t *testing.T) {
	bits, err := config.ParseBits("64")
	require.NoError(t, err)
	assert.Equal(t, []int{64}, bits)

	for _, in := range []string{"", ",", "a", "-1", "8,0"} {
		_, err := config.ParseBits(in)
		assert.Error(t, err, in)
	}
}
