package signalscan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Status is the embedding provider lifecycle state.
type Status string

const (
	StatusNotLoaded Status = "Not Loaded"
	StatusLoading   Status = "Loading"
	StatusReady     Status = "Ready"
	StatusError     Status = "Error"
)

// ErrAlreadyLoading is returned when a backend switch is requested while
// another load is in flight. The request is rejected, not queued.
var ErrAlreadyLoading = errors.New("a backend is already loading")

// KnownModels lists the embedding model identifiers the provider advertises.
var KnownModels = []string{
	"text-embedding-3-large",
	"text-embedding-3-small",
	"text-embedding-ada-002",
}

// Encoder turns cleaned texts into fixed-length vectors.
type Encoder interface {
	Name() string
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}

// BackendFactory constructs an encoder for a model identifier. Factories run
// under the provider's load transition, one at a time.
type BackendFactory func(model string) (Encoder, error)

// ProviderInfo is a snapshot of the provider state.
type ProviderInfo struct {
	CurrentModel string
	Status       Status
	Error        string
	KnownModels  []string
}

// Provider owns the mutable loaded-backend state. Loads are serialized: a
// switch while Loading is rejected, a successful load atomically swaps the
// active encoder, and a failed load keeps the previous encoder in place.
type Provider struct {
	mu           sync.Mutex
	factory      BackendFactory
	defaultModel string

	status  Status
	lastErr string
	active  Encoder
}

// NewProvider creates an embedding provider in the NotLoaded state.
func NewProvider(defaultModel string, factory BackendFactory) *Provider {
	return &Provider{
		factory:      factory,
		defaultModel: defaultModel,
		status:       StatusNotLoaded,
	}
}

// Info reports the current model, status and known model identifiers.
func (p *Provider) Info() ProviderInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	info := ProviderInfo{
		Status:      p.status,
		Error:       p.lastErr,
		KnownModels: KnownModels,
	}
	if p.active != nil {
		info.CurrentModel = p.active.Name()
	} else {
		info.CurrentModel = p.defaultModel
	}
	return info
}

// Switch starts loading the named backend in the background. It returns
// ErrAlreadyLoading when a load is already in flight.
func (p *Provider) Switch(model string) error {
	p.mu.Lock()
	if p.status == StatusLoading {
		p.mu.Unlock()
		return ErrAlreadyLoading
	}
	p.status = StatusLoading
	p.mu.Unlock()

	go func() {
		log.Printf("Loading embedding backend: %s", model)
		enc, err := p.factory(model)

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			// Keep the previous backend; record the failure.
			p.status = StatusError
			p.lastErr = err.Error()
			log.Printf("Failed to load embedding backend %s: %v", model, err)
			return
		}
		p.active = enc
		p.status = StatusReady
		p.lastErr = ""
		log.Printf("Embedding backend ready: %s", enc.Name())
	}()
	return nil
}

// Encode embeds a batch of cleaned texts. If no backend has ever loaded it
// performs one synchronous default load first; failure of that load is the
// pipeline's fatal error.
func (p *Provider) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	enc, err := p.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return enc.Encode(ctx, texts)
}

// ensureLoaded returns the active encoder, loading the default backend
// synchronously when nothing has ever loaded.
func (p *Provider) ensureLoaded() (Encoder, error) {
	p.mu.Lock()
	if p.active != nil {
		enc := p.active
		p.mu.Unlock()
		return enc, nil
	}
	if p.status == StatusLoading {
		p.mu.Unlock()
		return nil, ErrAlreadyLoading
	}
	p.status = StatusLoading
	p.mu.Unlock()

	log.Printf("Loading default embedding backend: %s", p.defaultModel)
	enc, err := p.factory(p.defaultModel)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.status = StatusError
		p.lastErr = err.Error()
		return nil, fmt.Errorf("failed to load embedding backend %s: %w", p.defaultModel, err)
	}
	p.active = enc
	p.status = StatusReady
	p.lastErr = ""
	return enc, nil
}

// openAIEncoder generates embeddings through the OpenAI API.
type openAIEncoder struct {
	client openai.Client
	model  string
}

// NewOpenAIEncoder is the production backend factory.
func NewOpenAIEncoder(model string) (Encoder, error) {
	if Config.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	client := openai.NewClient(option.WithAPIKey(Config.OpenAIAPIKey))
	return &openAIEncoder{client: client, model: model}, nil
}

func (e *openAIEncoder) Name() string {
	return e.model
}

// Encode embeds the batch in a single API call.
func (e *openAIEncoder) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model:          openai.EmbeddingModel(e.model),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response has %d vectors for %d texts", len(resp.Data), len(texts))
	}

	vectors := make([][]float64, len(texts))
	for _, d := range resp.Data {
		i := int(d.Index)
		if i < 0 || i >= len(vectors) {
			return nil, fmt.Errorf("embedding response index %d out of range", d.Index)
		}
		vectors[i] = d.Embedding
	}
	return vectors, nil
}
