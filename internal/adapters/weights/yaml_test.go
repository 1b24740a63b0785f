package weights_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/pl5bot/internal/adapters/weights"
	"github.com/alejandrodnm/pl5bot/internal/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	store := weights.NewYAMLStore(filepath.Join(t.TempDir(), "weights.yaml"))

	cfg, err := store.Load()
	require.NoError(t, err)

	// Arranque en frío: el sistema funciona sin tuning previo.
	assert.Equal(t, domain.DefaultWeightConfig().Weights, cfg.Weights)
	assert.Zero(t, cfg.Iterations)
}

func TestSaveLoad_RoundTripIsIdentity(t *testing.T) {
	store := weights.NewYAMLStore(filepath.Join(t.TempDir(), "weights.yaml"))

	cfg := domain.DefaultWeightConfig()
	cfg.Weights[domain.FeatTrend] = 1.2345678
	cfg.Weights[domain.FeatOmissionFull] = -0.25
	cfg.Iterations = 7
	cfg.UpdatedAt = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(cfg))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Weights, got.Weights)
	assert.Equal(t, cfg.Iterations, got.Iterations)
	assert.True(t, cfg.UpdatedAt.Equal(got.UpdatedAt))
}

func TestSave_AtomicReplaceLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := weights.NewYAMLStore(filepath.Join(dir, "weights.yaml"))

	require.NoError(t, store.Save(domain.DefaultWeightConfig()))
	require.NoError(t, store.Save(domain.DefaultWeightConfig()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "weights.yaml", entries[0].Name())
}

func TestSave_RejectsNonFiniteWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	store := weights.NewYAMLStore(path)

	bad := domain.WeightConfig{Weights: map[string]float64{"x": math.Inf(1)}}
	require.Error(t, store.Save(bad))

	// El archivo previo (inexistente) sigue intacto: no hay escritura parcial.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights: [not: a: map"), 0o644))

	_, err := weights.NewYAMLStore(path).Load()
	assert.Error(t, err)
}
