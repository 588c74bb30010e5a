package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	APIAuthKey       string
	AIAPIKey         string
	GenModel         string
	EmbedModel       string
	ChromaURL        string
	ChromaCollection string
	LedgerPath       string
	ChunkTokens      int
	ChunkOverlap     int
	UpsertBatchSize  int
	TopK             int
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		APIAuthKey:       getEnv("API_AUTH_KEY", ""),
		AIAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GenModel:         getEnv("GEN_MODEL", "gemini-2.5-flash"),
		EmbedModel:       getEnv("EMBED_MODEL", "text-embedding-004"),
		ChromaURL:        getEnv("CHROMA_URL", "http://localhost:8000"),
		ChromaCollection: getEnv("CHROMA_COLLECTION", "documents"),
		LedgerPath:       getEnv("LEDGER_PATH", "processed_docs.json"),
		ChunkTokens:      getEnvInt("CHUNK_TOKENS", 2000),
		ChunkOverlap:     getEnvInt("CHUNK_OVERLAP", 200),
		UpsertBatchSize:  getEnvInt("UPSERT_BATCH_SIZE", 96),
		TopK:             getEnvInt("TOP_K", 10),
	}

	if cfg.APIAuthKey == "" {
		log.Fatal("API_AUTH_KEY not set")
	}
	if cfg.AIAPIKey == "" {
		log.Fatal("GEMINI_API_KEY not set")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
