package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// fakeEmbedder produces deterministic letter-frequency vectors so related
// texts score higher than unrelated ones without a live provider.
type fakeEmbedder struct {
	fail  bool
	calls int
}

func (f *fakeEmbedder) Model() string { return "fake-model" }

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("embedding provider unavailable")
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = embedText(text)
	}
	return vectors, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := f.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func embedText(text string) []float32 {
	vector := make([]float32, 26)
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			vector[r-'a']++
		case r >= 'A' && r <= 'Z':
			vector[r-'A']++
		}
	}
	return vector
}

// stubAI returns a canned answer and records every prompt it sees.
type stubAI struct {
	answer  string
	err     error
	calls   int
	prompts []string
}

func (s *stubAI) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

// fakeExtractor maps file base names to extracted text.
type fakeExtractor struct {
	texts map[string]string
}

func (f *fakeExtractor) Extract(path string) (string, int, error) {
	text, ok := f.texts[filepath.Base(path)]
	if !ok {
		return "", 0, fmt.Errorf("unreadable PDF: %s", path)
	}
	return text, 1, nil
}
