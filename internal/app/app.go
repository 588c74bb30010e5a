// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"docquery/internal/config"
	"docquery/internal/core/answer"
	"docquery/internal/core/ingestion_engine"
	"docquery/internal/core/interactive"
	"docquery/internal/core/ledger"
	"docquery/internal/core/llm"
	"docquery/internal/core/vectorstore"
)

type App struct {
	Store    *vectorstore.ChromaStore
	LLM      *llm.GeminiLLM
	Ledger   *ledger.FileLedger
	Ingestor *ingestion_engine.Ingestor
	Answerer *answer.Orchestrator
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	store, err := vectorstore.NewChromaStore(appCtx, vectorstore.ChromaStoreConfig{
		BaseURL:    cfg.ChromaURL,
		Collection: cfg.ChromaCollection,
		APIKey:     cfg.AIAPIKey,
		EmbedModel: cfg.EmbedModel,
		BatchSize:  cfg.UpsertBatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the vector store, %w", err)
	}
	log.Println("Vector store initialized and ready.")

	llmProvider, err := llm.NewGeminiLLM(appCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm, %w", err)
	}
	log.Println("LLM provider initialized and ready.")

	codec, err := ingestion_engine.NewTiktokenCodec()
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the tokenizer, %w", err)
	}

	docLedger := ledger.NewFileLedger(cfg.LedgerPath)

	ingCfg := &ingestion_engine.IngestConfig{
		ChunkTokens:  cfg.ChunkTokens,
		ChunkOverlap: cfg.ChunkOverlap,
	}

	docIngestor := ingestion_engine.NewIngestor(store, docLedger, codec, ingCfg)

	answerer := answer.NewOrchestrator(store, llmProvider, cfg.TopK)

	trivia := interactive.NewClient("")

	server := NewServer(cfg, docIngestor, answerer, trivia)

	return &App{
		Store:    store,
		LLM:      llmProvider,
		Ledger:   docLedger,
		Ingestor: docIngestor,
		Answerer: answerer,
		Server:   server,
	}, nil
}

func (a *App) Close() {
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.Store != nil {
		_ = a.Store.Close()
	}
}
