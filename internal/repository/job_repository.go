package repository

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tomasrg/jobhunter/internal/model"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

// InsertIgnore inserts a batch with insert-or-ignore semantics keyed on the
// url unique index. The whole batch runs in one transaction, so a source run
// commits atomically. Returns the number of rows actually inserted.
func (r *JobRepository) InsertIgnore(ctx context.Context, jobs []model.Job) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range jobs {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "url"}},
				DoNothing: true,
			}).Create(&jobs[i])
			if res.Error != nil {
				return res.Error
			}
			inserted += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// FindUnembedded returns jobs without an embedding, newest scrape first.
func (r *JobRepository) FindUnembedded(ctx context.Context, limit int) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Where("embedding IS NULL").
		Order("scraped_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

// FindUnscored returns jobs without a match score, newest scrape first.
func (r *JobRepository) FindUnscored(ctx context.Context, limit int) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Where("match_score IS NULL").
		Order("scraped_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) UpdateEmbedding(ctx context.Context, id string, vec pgvector.Vector) error {
	return r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("id = ?", id).
		Update("embedding", vec).Error
}

func (r *JobRepository) UpdateScore(ctx context.Context, id string, score float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("id = ?", id).
		Update("match_score", score).Error
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListFilter narrows the job listing query. Zero values mean "no filter".
type ListFilter struct {
	Status   string
	Source   string
	MinScore float64
	Limit    int
	Offset   int
}

// List returns jobs ordered by match score descending, unscored last.
func (r *JobRepository) List(ctx context.Context, f ListFilter) ([]model.Job, error) {
	q := r.db.WithContext(ctx).Model(&model.Job{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	if f.MinScore > 0 {
		q = q.Where("match_score >= ?", f.MinScore)
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	var jobs []model.Job
	err := q.Order("match_score DESC NULLS LAST").
		Order("scraped_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&jobs).Error
	return jobs, err
}

// Count returns the number of jobs matching the filter, ignoring the page
// window.
func (r *JobRepository) Count(ctx context.Context, f ListFilter) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Job{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	if f.MinScore > 0 {
		q = q.Where("match_score >= ?", f.MinScore)
	}

	var total int64
	err := q.Count(&total).Error
	return total, err
}

type bucketCount struct {
	Bucket string
	Count  int64
}

func (r *JobRepository) CountBySource(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "source")
}

func (r *JobRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "status")
}

func (r *JobRepository) countBy(ctx context.Context, column string) (map[string]int64, error) {
	var rows []bucketCount
	err := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Select(column + " AS bucket, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Bucket] = row.Count
	}
	return counts, nil
}

// AverageScore returns the mean match score over scored jobs, nil when
// nothing has been scored yet.
func (r *JobRepository) AverageScore(ctx context.Context) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("match_score IS NOT NULL").
		Select("AVG(match_score)").
		Scan(&avg).Error
	return avg, err
}
