package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"docquery/internal/core/interactive"
)

// ingestService and answerService are the two pipeline entry points the
// handler drives; sideChannel covers the quiz lookups.
type ingestService interface {
	EnsureIngested(ctx context.Context, docURL string) error
}

type answerService interface {
	AnswerAll(ctx context.Context, docURL string, questions []string) ([]string, error)
}

type sideChannel interface {
	FlightNumber(ctx context.Context) (flight, destination string, err error)
	SecretToken(ctx context.Context, pageURL string) (string, error)
}

type QAHandler struct {
	ingestor ingestService
	answerer answerService
	trivia   sideChannel
}

func NewQAHandler(ing ingestService, ans answerService, trivia sideChannel) *QAHandler {
	return &QAHandler{ingestor: ing, answerer: ans, trivia: trivia}
}

type QARequest struct {
	Documents string   `json:"documents"`
	Questions []string `json:"questions"`
}

type QAResponse struct {
	Answers []string `json:"answers"`
}

// Run answers a batch of questions about one document. Batches that trigger
// a side channel never touch the retrieval pipeline.
func (h *QAHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", 400)
		return
	}

	switch interactive.RouteFor(req.Questions) {
	case interactive.RouteFlightNumber:
		flight, destination, err := h.trivia.FlightNumber(ctx)
		if err != nil {
			writeAnswers(w, repeatAnswer(fmt.Sprintf("Failed to retrieve flight number: %v", err), len(req.Questions)))
			return
		}
		writeAnswers(w, repeatAnswer(fmt.Sprintf("Destination: %s and Flight Number: %s", destination, flight), len(req.Questions)))
		return
	case interactive.RouteSecretToken:
		token, err := h.trivia.SecretToken(ctx, req.Documents)
		if err != nil {
			writeAnswers(w, repeatAnswer(fmt.Sprintf("Failed to retrieve secret token: %v", err), len(req.Questions)))
			return
		}
		writeAnswers(w, repeatAnswer(fmt.Sprintf("Secret Token: %s", token), len(req.Questions)))
		return
	}

	if req.Documents == "" {
		http.Error(w, "documents is required", 400)
		return
	}

	if err := h.ingestor.EnsureIngested(ctx, req.Documents); err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), 500)
		return
	}

	answers, err := h.answerer.AnswerAll(ctx, req.Documents, req.Questions)
	if err != nil {
		http.Error(w, fmt.Sprintf("answering failed: %v", err), 500)
		return
	}
	if answers == nil {
		answers = []string{}
	}

	writeAnswers(w, answers)
}

// Health reports liveness for load balancers and smoke tests.
func (h *QAHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "docquery API is running",
	})
}

func repeatAnswer(text string, n int) []string {
	answers := make([]string, n)
	for i := range answers {
		answers[i] = text
	}
	return answers
}

func writeAnswers(w http.ResponseWriter, answers []string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(QAResponse{Answers: answers})
}
