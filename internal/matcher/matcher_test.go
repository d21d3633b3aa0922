package matcher

import (
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"

	"github.com/tomasrg/jobhunter/internal/model"
)

func intP(v int) *int { return &v }

func vecP(vals ...float32) *pgvector.Vector {
	v := pgvector.NewVector(vals)
	return &v
}

func testProfile() *model.UserProfile {
	return &model.UserProfile{
		FullName:         "Test User",
		Location:         "Argentina",
		PrimarySkills:    []string{"go", "react"},
		YearsExperience:  6,
		DesiredSalaryMin: 60000,
		Bio:              "Backend developer",
	}
}

func TestScoreNeutralDefaults(t *testing.T) {
	// No profile, no embedding, no salary, no seniority or location cues:
	// 20 + 15 + 10 + 6 + 3.
	m := New(nil, nil)
	job := &model.Job{
		Title:       "Software Developer",
		Company:     "Acme",
		Description: "We build things.",
	}
	assert.Equal(t, 54.0, m.Score(job))
}

func TestScoreIsDeterministic(t *testing.T) {
	m := New(testProfile(), []float32{1, 0, 0})
	job := &model.Job{
		Title:       "Senior Go Engineer",
		Description: "Building backend services in Go and React.",
		Location:    "Remote",
		SalaryMin:   intP(90000),
		Embedding:   vecP(1, 0, 0),
	}
	first := m.Score(job)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Score(job))
	}
}

func TestScoreBounds(t *testing.T) {
	m := New(testProfile(), []float32{1, 0, 0})
	best := &model.Job{
		Title:       "Senior Go Engineer",
		Description: "Go and React all day.",
		Location:    "Remote LATAM",
		SalaryMin:   intP(100000),
		Embedding:   vecP(1, 0, 0),
	}
	assert.Equal(t, 100.0, m.Score(best))

	worst := &model.Job{
		Title:       "Junior COBOL Maintainer",
		Description: "Mainframe maintenance.",
		Location:    "Europe only",
		SalaryMax:   intP(20000),
		Embedding:   vecP(-1, 0, 0),
	}
	assert.Equal(t, 2.0, m.Score(worst))
}

func TestExplainComponentsSumToTotal(t *testing.T) {
	m := New(testProfile(), []float32{0.6, 0.8, 0})
	job := &model.Job{
		Title:       "Backend Engineer",
		Description: "Go services on kubernetes.",
		Location:    "Remote",
		SalaryMin:   intP(50000),
		SalaryMax:   intP(80000),
		Embedding:   vecP(0, 1, 0),
	}
	b := m.Explain(job)
	assert.InDelta(t, b.Total, b.Semantic+b.Skills+b.Salary+b.Seniority+b.Location, 0.3)
	assert.GreaterOrEqual(t, b.Semantic, 0.0)
	assert.LessOrEqual(t, b.Semantic, 40.0)
	assert.LessOrEqual(t, b.Skills, 30.0)
	assert.LessOrEqual(t, b.Salary, 15.0)
	assert.LessOrEqual(t, b.Seniority, 10.0)
	assert.LessOrEqual(t, b.Location, 5.0)
}

func TestSemanticScoreMonotonic(t *testing.T) {
	m := New(testProfile(), []float32{1, 0, 0})

	aligned := &model.Job{Title: "X", Embedding: vecP(1, 0, 0)}
	partial := &model.Job{Title: "X", Embedding: vecP(0.5, 0.866, 0)}
	orthogonal := &model.Job{Title: "X", Embedding: vecP(0, 1, 0)}
	opposite := &model.Job{Title: "X", Embedding: vecP(-1, 0, 0)}

	assert.Equal(t, 40.0, m.semanticScore(aligned))
	assert.Greater(t, m.semanticScore(aligned), m.semanticScore(partial))
	assert.Greater(t, m.semanticScore(partial), m.semanticScore(orthogonal))
	assert.Equal(t, 0.0, m.semanticScore(orthogonal))
	assert.Equal(t, 0.0, m.semanticScore(opposite))
}

func TestSemanticScoreMissingEmbedding(t *testing.T) {
	m := New(testProfile(), []float32{1, 0, 0})
	assert.Equal(t, 20.0, m.semanticScore(&model.Job{Title: "X"}))

	noProfileVec := New(testProfile(), nil)
	assert.Equal(t, 20.0, noProfileVec.semanticScore(&model.Job{Title: "X", Embedding: vecP(1, 0, 0)}))
}

func TestSkillsScoreAliasWeight(t *testing.T) {
	m := New(testProfile(), nil)

	// "golang" tag hits the alias of "go": 0.7 of 2 skills over 30 points.
	job := &model.Job{
		Title:       "Backend position",
		Description: "Distributed systems work.",
		Tags:        []string{"golang"},
	}
	assert.InDelta(t, 0.7/2.0*30.0, m.skillsScore(job), 0.001)

	// Exact hits count full weight.
	exact := &model.Job{
		Title:       "Backend position",
		Description: "We use go and react daily.",
	}
	assert.InDelta(t, 30.0, m.skillsScore(exact), 0.001)
}

func TestSalaryScore(t *testing.T) {
	m := New(testProfile(), nil)

	assert.Equal(t, 10.0, m.salaryScore(&model.Job{Title: "X"}))
	assert.Equal(t, 0.0, m.salaryScore(&model.Job{Title: "X", SalaryMax: intP(50000)}))
	assert.Equal(t, 15.0, m.salaryScore(&model.Job{Title: "X", SalaryMin: intP(70000)}))
	assert.Equal(t, 7.0, m.salaryScore(&model.Job{Title: "X", SalaryMin: intP(40000), SalaryMax: intP(90000)}))
}

func TestSalaryScoreDefaultFloor(t *testing.T) {
	profile := testProfile()
	profile.DesiredSalaryMin = 0
	m := New(profile, nil)

	// Floor falls back to 50000.
	assert.Equal(t, 15.0, m.salaryScore(&model.Job{Title: "X", SalaryMin: intP(50000)}))
	assert.Equal(t, 0.0, m.salaryScore(&model.Job{Title: "X", SalaryMax: intP(40000)}))
}

func TestSeniorityScore(t *testing.T) {
	m := New(testProfile(), nil)

	assert.Equal(t, 10.0, m.seniorityScore(&model.Job{Title: "Senior Backend Engineer"}))
	assert.Equal(t, 2.0, m.seniorityScore(&model.Job{Title: "Junior Developer"}))
	assert.Equal(t, 6.0, m.seniorityScore(&model.Job{Title: "Backend Developer"}))

	early := testProfile()
	early.YearsExperience = 2
	assert.Equal(t, 3.0, New(early, nil).seniorityScore(&model.Job{Title: "Senior Backend Engineer"}))
}

func TestLocationScore(t *testing.T) {
	m := New(testProfile(), nil)

	assert.Equal(t, 5.0, m.locationScore(&model.Job{Title: "X", Location: "LATAM friendly"}))
	assert.Equal(t, 5.0, m.locationScore(&model.Job{Title: "X", Location: "Remote, Worldwide"}))
	assert.Equal(t, 0.0, m.locationScore(&model.Job{Title: "X", Location: "Europe only"}))
	assert.Equal(t, 3.0, m.locationScore(&model.Job{Title: "X", Location: "On-site, NYC"}))
}

func TestBatchScoreSortedDescendingStable(t *testing.T) {
	m := New(testProfile(), nil)
	jobs := []model.Job{
		{Title: "Junior Developer", Description: "entry role"},
		{Title: "Senior Go Engineer", Description: "go and react", Location: "Remote"},
		{Title: "Backend Developer", Description: "misc"},
	}
	scored := m.BatchScore(jobs)

	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
	}
	assert.Equal(t, "Senior Go Engineer", scored[0].Job.Title)

	// Equal scores keep input order.
	ties := []model.Job{
		{Title: "Backend Developer A", Description: "same"},
		{Title: "Backend Developer B", Description: "same"},
	}
	tied := m.BatchScore(ties)
	assert.Equal(t, "Backend Developer A", tied[0].Job.Title)
	assert.Equal(t, "Backend Developer B", tied[1].Job.Title)
}
