package answer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"docquery/internal/core"
)

// Orchestrator answers a batch of questions against one ingested document.
// Questions run concurrently and each answer lands in the slot matching its
// question index, so the response order always mirrors the request order.
type Orchestrator struct {
	store core.VectorStore
	llm   core.LLMProvider
	topK  int
}

func NewOrchestrator(store core.VectorStore, llm core.LLMProvider, topK int) *Orchestrator {
	if topK <= 0 {
		topK = 10
	}
	return &Orchestrator{store: store, llm: llm, topK: topK}
}

// AnswerAll resolves every question concurrently. A failure on one question
// degrades to an explanatory answer in its own slot instead of failing the
// batch; only context cancellation aborts the whole call.
func (o *Orchestrator) AnswerAll(ctx context.Context, docURL string, questions []string) ([]string, error) {
	answers := make([]string, len(questions))

	g, gctx := errgroup.WithContext(ctx)
	for idx, question := range questions {
		g.Go(func() error {
			text, err := o.answerOne(gctx, docURL, question)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				answers[idx] = fmt.Sprintf("Failed to generate an answer: %v", err)
				return nil
			}
			answers[idx] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return answers, nil
}

// answerOne retrieves context scoped to the document, then generates.
func (o *Orchestrator) answerOne(ctx context.Context, docURL, question string) (string, error) {
	snippets, err := o.store.Search(ctx, question, docURL, o.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	contextSnippets := make([]string, len(snippets))
	for i, s := range snippets {
		contextSnippets[i] = s.Text
	}

	text, err := o.llm.Generate(ctx, question, contextSnippets)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(text), nil
}
