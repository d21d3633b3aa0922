package matcher

import (
	"math"
	"sort"
	"strings"

	"github.com/tomasrg/jobhunter/internal/model"
)

// skillAliases widens skill matching beyond exact spelling. An alias hit
// counts as a partial match.
var skillAliases = map[string][]string{
	"ruby on rails": {"rails", "ruby", "ror"},
	"golang":        {"go"},
	"go":            {"golang"},
	"react":         {"reactjs", "react.js"},
	"node.js":       {"nodejs", "node"},
	"next.js":       {"nextjs", "next"},
	"postgresql":    {"postgres", "psql"},
	"typescript":    {"ts"},
	"javascript":    {"js"},
	"python":        {"py"},
	"kubernetes":    {"k8s"},
	"c#":            {"csharp", "dotnet", ".net"},
}

var seniorKeywords = []string{"senior", "lead", "principal", "staff", "architect", "sr.", "sr "}
var juniorKeywords = []string{"junior", "entry", "intern", "jr.", "jr ", "trainee", "graduate"}

var latamKeywords = []string{
	"latam", "latin america", "south america", "argentina", "brazil", "mexico",
	"colombia", "chile", "americas",
}
var remoteKeywords = []string{"remote", "anywhere", "worldwide", "global", "distributed"}

const aliasWeight = 0.7

// Breakdown is the per-component view of a score, each part rounded to one
// decimal.
type Breakdown struct {
	Total     float64 `json:"total"`
	Semantic  float64 `json:"semantic"`
	Skills    float64 `json:"skills"`
	Salary    float64 `json:"salary"`
	Seniority float64 `json:"seniority"`
	Location  float64 `json:"location"`
}

// ScoredJob pairs a job with its computed score for ranked output.
type ScoredJob struct {
	Job   *model.Job
	Score float64
}

// Matcher scores jobs against a user profile with five weighted components:
// semantic similarity 40, skills overlap 30, salary 15, seniority 10,
// location 5. It is a pure function of its inputs; the profile embedding is
// computed once by the caller and cached here.
type Matcher struct {
	profile          *model.UserProfile
	profileEmbedding []float32
}

func New(profile *model.UserProfile, profileEmbedding []float32) *Matcher {
	return &Matcher{profile: profile, profileEmbedding: profileEmbedding}
}

// Score computes the total 0-100 match score, rounded to one decimal.
func (m *Matcher) Score(job *model.Job) float64 {
	total := m.semanticScore(job) +
		m.skillsScore(job) +
		m.salaryScore(job) +
		m.seniorityScore(job) +
		m.locationScore(job)
	return round1(total)
}

// Explain returns the score with its component breakdown.
func (m *Matcher) Explain(job *model.Job) Breakdown {
	return Breakdown{
		Total:     m.Score(job),
		Semantic:  round1(m.semanticScore(job)),
		Skills:    round1(m.skillsScore(job)),
		Salary:    round1(m.salaryScore(job)),
		Seniority: round1(m.seniorityScore(job)),
		Location:  round1(m.locationScore(job)),
	}
}

// BatchScore scores jobs and returns them highest first. The sort is stable,
// so ties keep input order.
func (m *Matcher) BatchScore(jobs []model.Job) []ScoredJob {
	scored := make([]ScoredJob, len(jobs))
	for i := range jobs {
		scored[i] = ScoredJob{Job: &jobs[i], Score: m.Score(&jobs[i])}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// semanticScore maps the dot product of the unit-normalized profile and job
// vectors onto 0-40. Missing either vector yields a neutral 20.
func (m *Matcher) semanticScore(job *model.Job) float64 {
	if job.Embedding == nil || m.profileEmbedding == nil {
		return 20.0
	}
	jobVec := job.Embedding.Slice()
	if len(jobVec) != len(m.profileEmbedding) {
		return 20.0
	}

	var dot float64
	for i := range jobVec {
		dot += float64(m.profileEmbedding[i]) * float64(jobVec[i])
	}

	score := dot * 40.0
	if score < 0 {
		return 0
	}
	if score > 40 {
		return 40
	}
	return score
}

// skillsScore measures profile skill coverage in the job text and tags,
// scaled to 0-30. Alias hits count at reduced weight.
func (m *Matcher) skillsScore(job *model.Job) float64 {
	if m.profile == nil || len(m.profile.PrimarySkills) == 0 {
		return 15.0
	}

	requirements := ""
	if job.Requirements != nil {
		requirements = *job.Requirements
	}
	jobText := strings.ToLower(job.Title + " " + job.Description + " " + requirements)

	jobTags := make(map[string]bool, len(job.Tags))
	for _, t := range job.Tags {
		jobTags[strings.ToLower(t)] = true
	}

	contains := func(term string) bool {
		return strings.Contains(jobText, term) || jobTags[term]
	}

	var matched float64
	for _, skill := range m.profile.PrimarySkills {
		skill = strings.ToLower(skill)
		if contains(skill) {
			matched += 1.0
			continue
		}
		for _, alias := range skillAliases[skill] {
			if contains(alias) {
				matched += aliasWeight
				break
			}
		}
	}

	score := matched / float64(len(m.profile.PrimarySkills)) * 30.0
	if score > 30 {
		return 30
	}
	return score
}

// salaryScore compares the posting's salary band against the desired floor,
// 0-15. Postings without salary data get the benefit of the doubt.
func (m *Matcher) salaryScore(job *model.Job) float64 {
	if m.profile == nil {
		return 10.0
	}

	desiredMin := m.profile.DesiredSalaryMin
	if desiredMin == 0 {
		desiredMin = 50000
	}

	if job.SalaryMin == nil && job.SalaryMax == nil {
		return 10.0
	}
	if job.SalaryMax != nil && *job.SalaryMax < desiredMin {
		return 0.0
	}
	if job.SalaryMin != nil && *job.SalaryMin >= desiredMin {
		return 15.0
	}
	return 7.0
}

// seniorityScore matches the posting's seniority cues against the profile's
// years of experience, 0-10. Only the title and the first 500 bytes of the
// description are scanned.
func (m *Matcher) seniorityScore(job *model.Job) float64 {
	desc := strings.ToLower(job.Description)
	if len(desc) > 500 {
		desc = desc[:500]
	}
	combined := strings.ToLower(job.Title) + " " + desc

	years := 5
	if m.profile != nil && m.profile.YearsExperience > 0 {
		years = m.profile.YearsExperience
	}

	isSenior := containsAny(combined, seniorKeywords)
	isJunior := containsAny(combined, juniorKeywords)

	switch {
	case isSenior && years >= 4:
		return 10.0
	case isSenior:
		return 3.0
	case isJunior:
		return 2.0
	default:
		return 6.0
	}
}

// locationScore awards a 0-5 bonus for friendly locations. LATAM-inclusive
// and fully remote postings score highest; explicit EU-only restrictions
// score zero.
func (m *Matcher) locationScore(job *model.Job) float64 {
	combined := strings.ToLower(job.Location) + " " + strings.ToLower(job.Title)

	if containsAny(combined, latamKeywords) {
		return 5.0
	}
	if containsAny(combined, remoteKeywords) {
		return 5.0
	}
	if strings.Contains(combined, "us timezone") ||
		strings.Contains(combined, "est") ||
		strings.Contains(combined, "pst") {
		return 3.0
	}
	if strings.Contains(combined, "eu only") || strings.Contains(combined, "europe only") {
		return 0.0
	}
	return 3.0
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
