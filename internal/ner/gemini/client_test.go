package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeModels struct {
	mu      sync.Mutex
	queue   []fakeResponse
	configs []*genai.GenerateContentConfig
	prompts []string
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.configs = append(f.configs, config)
	for _, content := range contents {
		for _, part := range content.Parts {
			f.prompts = append(f.prompts, part.Text)
		}
	}

	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	next := f.queue[0]
	f.queue = f.queue[1:]
	return next.resp, next.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func stubWait(t *testing.T) *[]time.Duration {
	t.Helper()

	var delays []time.Duration
	original := wait
	wait = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	t.Cleanup(func() { wait = original })

	return &delays
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	delays := stubWait(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(textResponse(`{"entities": []}`), nil)

	g := &Generator{models: models, model: "gemini-test", maxRetries: 3, logger: zap.NewNop()}

	output, err := g.GenerateContent(context.Background(), "system", "document")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != `{"entities": []}` {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.configs) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.configs))
	}

	if len(*delays) != 1 || (*delays)[0] != defaultRetryDelay {
		t.Fatalf("unexpected retry delays: %v", *delays)
	}

	for _, config := range models.configs {
		if config.SystemInstruction == nil || config.SystemInstruction.Parts[0].Text != "system" {
			t.Fatalf("expected system instruction to be set")
		}
		if config.ResponseMIMEType != "application/json" {
			t.Fatalf("expected json response type, got %q", config.ResponseMIMEType)
		}
	}

	if models.prompts[0] != "document" {
		t.Fatalf("unexpected prompt: %q", models.prompts[0])
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	stubWait(t)

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := &Generator{models: models, model: "gemini-test", maxRetries: 2, logger: zap.NewNop()}

	_, err := g.GenerateContent(context.Background(), "", "document")
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected wrapped api error, got %v", err)
	}

	if len(models.configs) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.configs))
	}
}

func TestGeneratorDoesNotRetryPermanentError(t *testing.T) {
	delays := stubWait(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := &Generator{models: models, model: "gemini-test", maxRetries: 3, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "", "document"); err == nil {
		t.Fatal("expected error")
	}

	if len(models.configs) != 1 || len(*delays) != 0 {
		t.Fatalf("expected a single call without waiting, got %d calls and %v", len(models.configs), *delays)
	}
}

func TestGeneratorRejectsEmptyInput(t *testing.T) {
	g := &Generator{models: &fakeModels{}, model: "gemini-test", logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "", "   "); err == nil {
		t.Fatal("expected error for empty prompt")
	}

	var nilGenerator *Generator
	if _, err := nilGenerator.GenerateContent(context.Background(), "", "x"); err == nil {
		t.Fatal("expected error for nil generator")
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("   "), nil)

	g := &Generator{models: models, model: "gemini-test", maxRetries: 1, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "", "document"); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", "", 1, nil); err == nil {
		t.Fatal("expected error without api key")
	}
}
