package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	Env        string
	LLM        LLMConfig
	Fusion     FusionConfig
	Generation GenerationConfig
	Quality    QualityConfig
	Assets     AssetConfig
}

type LLMConfig struct {
	APIKey          string
	Model           string
	VisionModel     string
	MaxOutputTokens int32
	Temperature     float32
	Timeout         time.Duration
	RPS             float64
	Burst           int
}

// FusionConfig carries the heuristic cutovers of the fusion engine.
// The exact values are tuning knobs; only monotonicity is a contract.
type FusionConfig struct {
	VisionPrimaryThreshold float64 // vision result becomes primary above this
	IndustryBoostThreshold float64
	IndustryBoost          float64
	DesignInputBoost       float64
	EnhancedCutoff         float64
	SmartCutoff            float64
	BasicCutoff            float64
}

type GenerationConfig struct {
	MaxAttempts   int
	UpstreamDelay time.Duration
	MinHTMLBytes  int
}

type QualityConfig struct {
	AutoFixThreshold float64
}

type AssetConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // base URL assets resolve under; derived from endpoint when empty
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8082", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:       *port,
		Env:        env,
		LLM:        loadLLMConfig(),
		Fusion:     DefaultFusion(),
		Generation: loadGenerationConfig(),
		Quality:    QualityConfig{AutoFixThreshold: envFloat("QUALITY_AUTOFIX_THRESHOLD", 85)},
		Assets:     loadAssetConfig(env),
	}, nil
}

// DefaultFusion returns the stock cutovers. Callers that need different
// tuning override individual fields.
func DefaultFusion() FusionConfig {
	return FusionConfig{
		VisionPrimaryThreshold: envFloat("FUSION_VISION_PRIMARY", 0.6),
		IndustryBoostThreshold: envFloat("FUSION_INDUSTRY_BOOST_MIN", 0.3),
		IndustryBoost:          envFloat("FUSION_INDUSTRY_BOOST", 0.2),
		DesignInputBoost:       envFloat("FUSION_DESIGN_BOOST", 0.15),
		EnhancedCutoff:         envFloat("FUSION_ENHANCED_CUTOFF", 0.75),
		SmartCutoff:            envFloat("FUSION_SMART_CUTOFF", 0.6),
		BasicCutoff:            envFloat("FUSION_BASIC_CUTOFF", 0.4),
	}
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		APIKey:          strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:           firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_MODEL")), "gemini-2.5-pro"),
		VisionModel:     firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_VISION_MODEL")), "gemini-2.5-flash"),
		MaxOutputTokens: int32(envInt("LLM_MAX_OUTPUT_TOKENS", 32768)),
		Temperature:     float32(envFloat("LLM_TEMPERATURE", 0.7)),
		Timeout:         time.Duration(envInt("LLM_TIMEOUT_SEC", 120)) * time.Second,
		RPS:             envFloat("LLM_RPS", 0),
		Burst:           envInt("LLM_BURST", 0),
	}
}

func loadGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MaxAttempts:   envInt("GENERATION_MAX_ATTEMPTS", 3),
		UpstreamDelay: time.Duration(envInt("GENERATION_RETRY_DELAY_MS", 500)) * time.Millisecond,
		MinHTMLBytes:  envInt("GENERATION_MIN_HTML_BYTES", 2000),
	}
}

func loadAssetConfig(env string) AssetConfig {
	endpoint := resolveAssetEndpoint(env)
	return AssetConfig{
		Enabled:   strings.EqualFold(strings.TrimSpace(env), "local") || endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ASSET_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ASSET_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ASSET_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ASSET_S3_BUCKET")), "foliogen-assets"),
		UseSSL:    resolveAssetUseSSL(env),
		PublicURL: strings.TrimRight(strings.TrimSpace(os.Getenv("ASSET_PUBLIC_URL")), "/"),
	}
}

func resolveAssetEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return firstNonEmpty(strings.TrimSpace(os.Getenv("ASSET_MINIO_ENDPOINT")), "minio:9000")
	}
	return strings.TrimSpace(os.Getenv("ASSET_S3_ENDPOINT"))
}

func resolveAssetUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("ASSET_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
