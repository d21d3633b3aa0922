package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/tomasrg/jobhunter/internal/config"
	"github.com/tomasrg/jobhunter/internal/model"
)

// ErrNotConfigured is returned when no Gemini API key is present. Callers
// treat it as "skip embeddings", not as a failure.
var ErrNotConfigured = errors.New("embedding service not configured: GEMINI_API_KEY not set")

const (
	embeddingModel = "gemini-embedding-001"
	embeddingDim   = 768
	embedBatchSize = 32
	requestTimeout = 90 * time.Second
)

type EmbeddingServiceInterface interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingService wraps the Gemini embedding API. The client is created
// lazily on first use so the rest of the app runs without a key; concurrent
// first calls share a single initialization.
type EmbeddingService struct {
	logger *zap.Logger

	initOnce sync.Once
	client   *genai.Client
	initErr  error
}

func NewEmbeddingService(logger *zap.Logger) *EmbeddingService {
	return &EmbeddingService{logger: logger}
}

func (s *EmbeddingService) init(ctx context.Context) error {
	s.initOnce.Do(func() {
		apiKey := config.LoadGeminiConfig().APIKey
		if apiKey == "" {
			s.initErr = ErrNotConfigured
			return
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			s.initErr = fmt.Errorf("create genai client: %w", err)
			return
		}
		s.client = client
		s.logger.Info("embedding client initialized", zap.String("model", embeddingModel))
	})
	return s.initErr
}

// Embed returns a unit-normalized embedding for a single text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds texts in chunks, preserving input order. Every returned
// vector is normalized to unit length so dot products are cosine similarity.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		contents := make([]*genai.Content, 0, end-start)
		for _, text := range texts[start:end] {
			trimmed := strings.TrimSpace(text)
			if trimmed == "" {
				trimmed = " "
			}
			contents = append(contents, genai.NewContentFromText(trimmed, genai.RoleUser))
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		resp, err := s.client.Models.EmbedContent(timeoutCtx, embeddingModel, contents, &genai.EmbedContentConfig{
			OutputDimensionality: genai.Ptr(int32(embeddingDim)),
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("embed batch [%d:%d]: %w", start, end, err)
		}
		if len(resp.Embeddings) != end-start {
			return nil, fmt.Errorf("embed batch [%d:%d]: got %d embeddings for %d inputs",
				start, end, len(resp.Embeddings), end-start)
		}

		for i, emb := range resp.Embeddings {
			if len(emb.Values) == 0 {
				return nil, fmt.Errorf("empty embedding at index %d", start+i)
			}
			out = append(out, normalize(emb.Values))
		}
	}
	return out, nil
}

// normalize scales a vector to unit length. Truncated-dimension Gemini
// embeddings are not pre-normalized, so this keeps dot products comparable.
func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

// JobText builds the text that represents a job for embedding. The recipe is
// stable: changing it invalidates every stored vector.
func JobText(job *model.Job) string {
	desc := job.Description
	if len(desc) > 1000 {
		desc = desc[:1000]
	}
	text := fmt.Sprintf("%s at %s. %s", job.Title, job.Company, desc)
	if len(job.Tags) > 0 {
		text += " Skills: " + strings.Join(job.Tags, ", ")
	}
	return text
}

// ProfileText builds the embedding text for the user profile.
func ProfileText(profile *model.UserProfile) string {
	return fmt.Sprintf("%s Skills: %s. %d years experience. Location: %s.",
		profile.Bio,
		strings.Join(profile.PrimarySkills, ", "),
		profile.YearsExperience,
		profile.Location,
	)
}
