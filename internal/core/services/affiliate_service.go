package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"eps-clinic/internal/adapters/persistence/repositories"
	"eps-clinic/internal/core/domain"
	"eps-clinic/internal/pkg/validate"
)

// AffiliateService handles affiliate registration, listing, statistics and
// satisfaction surveys
type AffiliateService struct {
	affRepo    repositories.AffiliateRepository
	surveyRepo repositories.SurveyRepository

	// now is injectable so age computations are deterministic in tests
	now func() time.Time
}

// NewAffiliateService creates a new affiliate service
func NewAffiliateService(affRepo repositories.AffiliateRepository, surveyRepo repositories.SurveyRepository) *AffiliateService {
	return &AffiliateService{
		affRepo:    affRepo,
		surveyRepo: surveyRepo,
		now:        time.Now,
	}
}

// WithClock overrides the service clock; tests use it to pin "today"
func (s *AffiliateService) WithClock(now func() time.Time) *AffiliateService {
	s.now = now
	return s
}

// RegisterAffiliateInput represents affiliate registration input
type RegisterAffiliateInput struct {
	ID       string `json:"id"`
	Names    string `json:"names"`
	Surnames string `json:"surnames"`
	Birth    string `json:"birth"`
	Plan     string `json:"plan"`
	Gender   string `json:"gender"`
	Email    string `json:"email"`
}

// RegisterAffiliate validates and stores a new affiliate. Check order is
// part of the contract: blank fields, then birth format, then plan/gender/
// email, then id uniqueness.
func (s *AffiliateService) RegisterAffiliate(ctx context.Context, input *RegisterAffiliateInput) (domain.Result, error) {
	if validate.Blank(input.ID, input.Names, input.Surnames, input.Birth, input.Plan, input.Gender, input.Email) {
		return domain.ResultInvalidData, nil
	}
	if _, err := validate.ParseDate(input.Birth); err != nil {
		return domain.ResultInvalidDateFormat, nil
	}
	if !validate.ValidPlan(input.Plan) || !validate.ValidGender(input.Gender) || !validate.ValidEmail(input.Email) {
		return domain.ResultInvalidData, nil
	}

	exists, err := s.affRepo.ExistsByID(ctx, input.ID)
	if err != nil {
		return "", err
	}
	if exists {
		return domain.ResultIDAlreadyExists, nil
	}

	aff := &domain.Affiliate{
		ID:       input.ID,
		Names:    input.Names,
		Surnames: input.Surnames,
		Birth:    input.Birth,
		Plan:     input.Plan,
		Gender:   input.Gender,
		Email:    input.Email,
	}
	if err := s.affRepo.Create(ctx, aff); err != nil {
		return "", err
	}
	return domain.ResultOK, nil
}

// ListAffiliates returns every affiliate sorted ascending by surname,
// case-insensitively. The sort is stable so equal surnames keep the order
// they were registered in.
func (s *AffiliateService) ListAffiliates(ctx context.Context) ([]domain.Affiliate, error) {
	affs, err := s.affRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(affs, func(i, j int) bool {
		return strings.ToLower(affs[i].Surnames) < strings.ToLower(affs[j].Surnames)
	})
	return affs, nil
}

// SearchByID returns the affiliate with the given id, nil when absent
func (s *AffiliateService) SearchByID(ctx context.Context, id string) (*domain.Affiliate, error) {
	return s.affRepo.GetByID(ctx, id)
}

// StatsOutput represents the affiliate population aggregate
type StatsOutput struct {
	PlanTotals     map[domain.Plan]int      `json:"plan_totals"`
	AvgAgeByGender map[domain.Gender]float64 `json:"avg_age_by_gender"`
	MinAge         int                      `json:"min_age"`
	MaxAge         int                      `json:"max_age"`
}

// Stats aggregates the affiliate population: totals per plan, mean age per
// gender, and global min/max age. Rows with an unparseable birth date or an
// unknown gender are skipped from the age figures, never reported as
// errors. An empty population yields the zero aggregate.
func (s *AffiliateService) Stats(ctx context.Context) (*StatsOutput, error) {
	affs, err := s.affRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &StatsOutput{
		PlanTotals:     map[domain.Plan]int{},
		AvgAgeByGender: map[domain.Gender]float64{},
	}
	for _, p := range domain.Plans {
		out.PlanTotals[p] = 0
	}
	agesByGender := map[domain.Gender][]int{}
	for _, g := range domain.Genders {
		agesByGender[g] = nil
	}

	today := s.now()
	var allAges []int
	for _, aff := range affs {
		if validate.ValidPlan(aff.Plan) {
			out.PlanTotals[domain.Plan(aff.Plan)]++
		}

		birth, err := validate.ParseDate(aff.Birth)
		if err != nil {
			continue
		}
		age := validate.AgeAt(birth, today)
		allAges = append(allAges, age)
		if validate.ValidGender(aff.Gender) {
			agesByGender[domain.Gender(aff.Gender)] = append(agesByGender[domain.Gender(aff.Gender)], age)
		}
	}

	for _, g := range domain.Genders {
		out.AvgAgeByGender[g] = mean(agesByGender[g])
	}
	for i, age := range allAges {
		if i == 0 || age < out.MinAge {
			out.MinAge = age
		}
		if i == 0 || age > out.MaxAge {
			out.MaxAge = age
		}
	}
	return out, nil
}

// RecordSurvey appends one satisfaction survey row. The id is not required
// to reference a registered affiliate.
func (s *AffiliateService) RecordSurvey(ctx context.Context, id string, rating float64) (domain.Result, error) {
	if validate.Blank(id) {
		return domain.ResultInvalidData, nil
	}
	if err := s.surveyRepo.Create(ctx, &domain.Survey{ID: id, Rating: rating}); err != nil {
		return "", err
	}
	return domain.ResultOK, nil
}

// SurveyStatsOutput represents the survey aggregate. Segments is only set
// for segmented queries and always carries every valid segment value, 0.0
// where no survey joined to it.
type SurveyStatsOutput struct {
	Count    int                `json:"count"`
	Average  float64            `json:"average"`
	Segments map[string]float64 `json:"segments,omitempty"`
}

// SurveyStats averages survey ratings, overall or segmented by affiliate
// plan or gender. Segmenting joins survey rows to affiliates by id; rows
// whose id has no matching affiliate are excluded from segmented figures.
func (s *AffiliateService) SurveyStats(ctx context.Context, segmentBy string) (*SurveyStatsOutput, error) {
	surveys, err := s.surveyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	switch segmentBy {
	case "plan", "gender":
	default:
		// unsegmented: plain average over every row
		out := &SurveyStatsOutput{Count: len(surveys)}
		total := 0.0
		for _, sv := range surveys {
			total += sv.Rating
		}
		if out.Count > 0 {
			out.Average = total / float64(out.Count)
		}
		return out, nil
	}

	affs, err := s.affRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	segmentOf := map[string]string{}
	for _, aff := range affs {
		if segmentBy == "plan" {
			segmentOf[aff.ID] = aff.Plan
		} else {
			segmentOf[aff.ID] = aff.Gender
		}
	}

	ratings := map[string][]float64{}
	if segmentBy == "plan" {
		for _, p := range domain.Plans {
			ratings[string(p)] = nil
		}
	} else {
		for _, g := range domain.Genders {
			ratings[string(g)] = nil
		}
	}

	out := &SurveyStatsOutput{Segments: map[string]float64{}}
	total := 0.0
	for _, sv := range surveys {
		seg, ok := segmentOf[sv.ID]
		if !ok {
			continue
		}
		if _, valid := ratings[seg]; !valid {
			continue
		}
		ratings[seg] = append(ratings[seg], sv.Rating)
		total += sv.Rating
		out.Count++
	}
	if out.Count > 0 {
		out.Average = total / float64(out.Count)
	}
	for seg, rs := range ratings {
		out.Segments[seg] = meanFloat(rs)
	}
	return out, nil
}

// ExportFiles makes sure the affiliate and survey backing files exist on
// disk, creating them with their headers when missing
func (s *AffiliateService) ExportFiles(ctx context.Context) (domain.Result, error) {
	if err := s.affRepo.Ensure(ctx); err != nil {
		return "", err
	}
	if err := s.surveyRepo.Ensure(ctx); err != nil {
		return "", err
	}
	return domain.ResultOK, nil
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0.0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

func meanFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
