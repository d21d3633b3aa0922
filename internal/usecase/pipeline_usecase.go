package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/matcher"
	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/repository"
	"github.com/tomasrg/jobhunter/internal/service"
	"github.com/tomasrg/jobhunter/internal/source"
)

// SourceReport summarizes one adapter's run inside a collection pass.
type SourceReport struct {
	Fetched  int    `json:"fetched"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
	Failed   bool   `json:"failed"`
	Error    string `json:"error,omitempty"`
}

// Report is the outcome of a full collection pass across every source.
type Report struct {
	StartedAt     time.Time               `json:"started_at"`
	FinishedAt    time.Time               `json:"finished_at"`
	Sources       map[string]SourceReport `json:"sources"`
	TotalFetched  int                     `json:"total_fetched"`
	TotalInserted int                     `json:"total_inserted"`
}

// PipelineUsecase drives the collect, embed and score stages.
type PipelineUsecase struct {
	jobRepo     *repository.JobRepository
	profileRepo *repository.ProfileRepository
	embedder    service.EmbeddingServiceInterface
	sources     []source.Source
	logger      *zap.Logger
}

func NewPipelineUsecase(
	jobRepo *repository.JobRepository,
	profileRepo *repository.ProfileRepository,
	embedder service.EmbeddingServiceInterface,
	sources []source.Source,
	logger *zap.Logger,
) *PipelineUsecase {
	return &PipelineUsecase{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		embedder:    embedder,
		sources:     sources,
		logger:      logger,
	}
}

// CollectAll runs every registered source sequentially. A failing source
// never aborts the pass; its error lands in the report and the next source
// runs.
func (u *PipelineUsecase) CollectAll(ctx context.Context) *Report {
	report := &Report{
		StartedAt: time.Now().UTC(),
		Sources:   make(map[string]SourceReport, len(u.sources)),
	}

	for _, src := range u.sources {
		result := source.Collect(ctx, src, u.logger)

		inserted, err := source.Save(ctx, result.Records, u.jobRepo, u.logger)
		sr := SourceReport{
			Fetched:  result.Fetched,
			Inserted: inserted,
			Skipped:  result.Skipped,
		}
		if err != nil {
			sr.Failed = true
			sr.Error = err.Error()
			u.logger.Error("source save failed",
				zap.String("source", src.Name()), zap.Error(err))
		}
		report.Sources[src.Name()] = sr
		report.TotalFetched += sr.Fetched
		report.TotalInserted += sr.Inserted

		if ctx.Err() != nil {
			break
		}
	}

	report.FinishedAt = time.Now().UTC()
	u.logger.Info("collection pass done",
		zap.Int("fetched", report.TotalFetched),
		zap.Int("inserted", report.TotalInserted),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)))
	return report
}

// EmbedNew embeds up to limit jobs that do not have a vector yet. Without a
// configured API key this is a no-op, not an error.
func (u *PipelineUsecase) EmbedNew(ctx context.Context, limit int) (int, error) {
	jobs, err := u.jobRepo.FindUnembedded(ctx, limit)
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	texts := make([]string, len(jobs))
	for i := range jobs {
		texts[i] = service.JobText(&jobs[i])
	}

	vecs, err := u.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, err
	}

	embedded := 0
	for i := range jobs {
		vec := pgvector.NewVector(vecs[i])
		if err := u.jobRepo.UpdateEmbedding(ctx, jobs[i].ID.String(), vec); err != nil {
			return embedded, err
		}
		embedded++
	}
	u.logger.Info("embedded jobs", zap.Int("count", embedded))
	return embedded, nil
}

// ScoreNew scores up to limit unscored jobs against the stored profile.
// Without a profile nothing is scored.
func (u *PipelineUsecase) ScoreNew(ctx context.Context, limit int) (int, error) {
	profile, err := u.profileRepo.First(ctx)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		u.logger.Warn("skipping scoring, no user profile found")
		return 0, nil
	}

	jobs, err := u.jobRepo.FindUnscored(ctx, limit)
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	m := matcher.New(profile, u.profileEmbedding(ctx, profile))

	scored := 0
	for i := range jobs {
		score := m.Score(&jobs[i])
		if err := u.jobRepo.UpdateScore(ctx, jobs[i].ID.String(), score); err != nil {
			return scored, err
		}
		scored++
	}
	u.logger.Info("scored jobs", zap.Int("count", scored))
	return scored, nil
}

// profileEmbedding computes the profile vector once per scoring pass. A
// missing API key degrades semantic scoring to its neutral default.
func (u *PipelineUsecase) profileEmbedding(ctx context.Context, profile *model.UserProfile) []float32 {
	vec, err := u.embedder.Embed(ctx, service.ProfileText(profile))
	if err != nil {
		if !errors.Is(err, service.ErrNotConfigured) {
			u.logger.Warn("profile embedding failed", zap.Error(err))
		}
		return nil
	}
	return vec
}

// RunAll executes the full pipeline: collect, embed, score. A missing
// embedding key downgrades the embed stage to a warning so scoring still
// runs with its neutral semantic default.
func (u *PipelineUsecase) RunAll(ctx context.Context) (*Report, error) {
	report := u.CollectAll(ctx)
	if _, err := u.EmbedNew(ctx, 500); err != nil {
		if !errors.Is(err, service.ErrNotConfigured) {
			return report, err
		}
		u.logger.Warn("skipping embeddings, no API key configured")
	}
	if _, err := u.ScoreNew(ctx, 500); err != nil {
		return report, err
	}
	return report, nil
}
