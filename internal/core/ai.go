package core

import "context"

// LLMProvider generates a grounded answer for one question given retrieved
// context snippets.
type LLMProvider interface {
	Generate(ctx context.Context, question string, contextSnippets []string) (string, error)
}

// TokenCodec converts text to and from the token space used for chunk windows.
type TokenCodec interface {
	Encode(text string) []int
	Decode(tokens []int) string
}
