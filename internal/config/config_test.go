package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "42")
	t.Setenv("X_BAD_INT", "forty-two")
	t.Setenv("X_FLOAT", "0.75")

	assert.Equal(t, 42, envInt("X_INT", 1))
	assert.Equal(t, 1, envInt("X_BAD_INT", 1))
	assert.Equal(t, 1, envInt("X_UNSET", 1))
	assert.Equal(t, 0.75, envFloat("X_FLOAT", 0.1))
	assert.Equal(t, 0.1, envFloat("X_UNSET", 0.1))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", "   "))
}

func TestDefaultFusionOverridableFromEnv(t *testing.T) {
	cfg := DefaultFusion()
	assert.Equal(t, 0.6, cfg.VisionPrimaryThreshold)
	assert.Equal(t, 0.75, cfg.EnhancedCutoff)
	assert.Equal(t, 0.4, cfg.BasicCutoff)

	t.Setenv("FUSION_SMART_CUTOFF", "0.5")
	assert.Equal(t, 0.5, DefaultFusion().SmartCutoff)
}

func TestAssetConfigLocalDefaults(t *testing.T) {
	cfg := loadAssetConfig("local")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "minio:9000", cfg.Endpoint)
	assert.False(t, cfg.UseSSL)
	assert.Equal(t, "foliogen-assets", cfg.Bucket)
}

func TestAssetConfigProduction(t *testing.T) {
	t.Setenv("ASSET_S3_ENDPOINT", "s3.example.com")
	t.Setenv("ASSET_S3_USE_SSL", "false")
	cfg := loadAssetConfig("production")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "s3.example.com", cfg.Endpoint)
	assert.False(t, cfg.UseSSL)
}

func TestAssetConfigDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("ASSET_S3_ENDPOINT", "")
	cfg := loadAssetConfig("production")
	assert.False(t, cfg.Enabled)
}

func TestGenerationDefaults(t *testing.T) {
	cfg := loadGenerationConfig()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2000, cfg.MinHTMLBytes)
}
