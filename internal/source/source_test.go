package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/model"
)

type fakeSource struct {
	name     string
	raws     []gjson.Result
	fetchErr error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context) ([]gjson.Result, error) {
	return f.raws, f.fetchErr
}

func (f *fakeSource) Normalize(raw gjson.Result) (*model.CanonicalJob, error) {
	title := raw.Get("title").String()
	if title == "" {
		return nil, skipf("missing title")
	}
	return &model.CanonicalJob{
		Title:       title,
		Company:     "Acme",
		Description: "desc",
		URL:         raw.Get("url").String(),
	}, nil
}

type fakeStore struct {
	got      []model.Job
	inserted int
	err      error
}

func (f *fakeStore) InsertIgnore(ctx context.Context, jobs []model.Job) (int, error) {
	f.got = jobs
	return f.inserted, f.err
}

func TestCollectStampsDefaults(t *testing.T) {
	src := &fakeSource{
		name: "fake",
		raws: []gjson.Result{
			gjson.Parse(`{"title":"Go Engineer","url":"https://x/1"}`),
		},
	}

	result := Collect(context.Background(), src, zap.NewNop())

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "fake", rec.Source)
	assert.Equal(t, model.StatusNew, rec.Status)
	assert.False(t, rec.ScrapedAt.IsZero())
	require.NotNil(t, rec.IsRemote)
	assert.True(t, *rec.IsRemote)
}

func TestCollectSkipsBadRecords(t *testing.T) {
	src := &fakeSource{
		name: "fake",
		raws: []gjson.Result{
			gjson.Parse(`{"title":"Good","url":"https://x/1"}`),
			gjson.Parse(`{"url":"https://x/2"}`),
			gjson.Parse(`{"title":"Also Good","url":"https://x/3"}`),
		},
	}

	result := Collect(context.Background(), src, zap.NewNop())

	assert.Equal(t, 3, result.Fetched)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "https://x/2", result.Failures[0].URL)
	assert.Contains(t, result.Failures[0].Reason, "missing title")
}

func TestCollectFetchFailureDegradesToEmpty(t *testing.T) {
	src := &fakeSource{name: "fake", fetchErr: errors.New("upstream down")}

	result := Collect(context.Background(), src, zap.NewNop())

	assert.Equal(t, "fake", result.Source)
	assert.Zero(t, result.Fetched)
	assert.Empty(t, result.Records)
}

func TestSaveCountsInsertedOnly(t *testing.T) {
	store := &fakeStore{inserted: 1}
	records := []*model.CanonicalJob{
		{Title: "A", Company: "Acme", Description: "d", URL: "https://x/1", Source: "fake"},
		{Title: "B", Company: "Acme", Description: "d", URL: "https://x/2", Source: "fake"},
	}

	inserted, err := Save(context.Background(), records, store, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Len(t, store.got, 2)
}

func TestSaveEmptyBatch(t *testing.T) {
	store := &fakeStore{}
	inserted, err := Save(context.Background(), nil, store, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Nil(t, store.got)
}

func TestSaveStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	records := []*model.CanonicalJob{
		{Title: "A", Company: "Acme", Description: "d", URL: "https://x/1", Source: "fake"},
	}

	_, err := Save(context.Background(), records, store, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake")
}

func TestRegistryClosedSet(t *testing.T) {
	sources := Registry(zap.NewNop())

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{
		"remoteok", "arbeitnow", "himalayas", "weworkremotely",
		"remotive", "jooble", "adzuna", "serpapi",
	}, names)
}
