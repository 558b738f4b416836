package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eps-clinic/internal/adapters/persistence/filestore"
	"eps-clinic/internal/adapters/persistence/repositories"
	"eps-clinic/internal/core/domain"
	"eps-clinic/internal/core/services"
)

// fixedToday pins the service clock to 15/03/2024 for age determinism
var fixedToday = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newAffiliateService(t *testing.T) *services.AffiliateService {
	t.Helper()
	dir := t.TempDir()
	affRepo := repositories.NewAffiliateRepository(
		filestore.NewTableStore(filepath.Join(dir, "affiliates.csv"), repositories.AffiliateColumns))
	surveyRepo := repositories.NewSurveyRepository(
		filestore.NewTableStore(filepath.Join(dir, "surveys.csv"), repositories.SurveyColumns))
	return services.NewAffiliateService(affRepo, surveyRepo).
		WithClock(func() time.Time { return fixedToday })
}

func validInput(id string) *services.RegisterAffiliateInput {
	return &services.RegisterAffiliateInput{
		ID: id, Names: "Ana", Surnames: "Gomez", Birth: "20/06/1990",
		Plan: "A", Gender: "F", Email: "ana@clinic.co",
	}
}

func mustRegister(t *testing.T, svc *services.AffiliateService, input *services.RegisterAffiliateInput) {
	t.Helper()
	result, err := svc.RegisterAffiliate(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)
}

func TestRegisterAffiliateCheckOrder(t *testing.T) {
	ctx := context.Background()
	svc := newAffiliateService(t)

	tests := []struct {
		name   string
		mutate func(*services.RegisterAffiliateInput)
		want   domain.Result
	}{
		{"valid", func(in *services.RegisterAffiliateInput) {}, domain.ResultOK},
		{"blank surnames", func(in *services.RegisterAffiliateInput) { in.Surnames = "  " }, domain.ResultInvalidData},
		{"bad date format", func(in *services.RegisterAffiliateInput) { in.Birth = "1990-06-20" }, domain.ResultInvalidDateFormat},
		{"impossible date", func(in *services.RegisterAffiliateInput) { in.Birth = "31/02/1990" }, domain.ResultInvalidDateFormat},
		{"unknown plan", func(in *services.RegisterAffiliateInput) { in.Plan = "D" }, domain.ResultInvalidData},
		{"unknown gender", func(in *services.RegisterAffiliateInput) { in.Gender = "Z" }, domain.ResultInvalidData},
		{"bad email", func(in *services.RegisterAffiliateInput) { in.Email = "ana-clinic" }, domain.ResultInvalidData},
		// blank check wins over date check when both would fail
		{"blank before date", func(in *services.RegisterAffiliateInput) { in.Names = ""; in.Birth = "bad" }, domain.ResultInvalidData},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(string(rune('a' + i)))
			tt.mutate(input)
			result, err := svc.RegisterAffiliate(ctx, input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestRegisterAffiliateDuplicateID(t *testing.T) {
	ctx := context.Background()
	svc := newAffiliateService(t)
	mustRegister(t, svc, validInput("1010"))

	dup := validInput("1010")
	dup.Names = "Completely"
	dup.Surnames = "Different"
	result, err := svc.RegisterAffiliate(ctx, dup)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultIDAlreadyExists, result)

	// the reject must not have written anything
	affs, err := svc.ListAffiliates(ctx)
	require.NoError(t, err)
	assert.Len(t, affs, 1)
}

func TestListAffiliatesSortedBySurname(t *testing.T) {
	ctx := context.Background()
	svc := newAffiliateService(t)

	for _, reg := range []struct{ id, names, surnames string }{
		{"1", "Zoe", "gomez"},
		{"2", "Ana", "ALVAREZ"},
		{"3", "Luis", "Mora"},
		{"4", "Bea", "alvarez"}, // ties with id 2 on surname, registered later
	} {
		in := validInput(reg.id)
		in.Names = reg.names
		in.Surnames = reg.surnames
		mustRegister(t, svc, in)
	}

	affs, err := svc.ListAffiliates(ctx)
	require.NoError(t, err)
	require.Len(t, affs, 4)

	assert.Equal(t, []string{"2", "4", "1", "3"}, []string{affs[0].ID, affs[1].ID, affs[2].ID, affs[3].ID},
		"case-insensitive by surname, ties keep registration order")
}

func TestSearchByID(t *testing.T) {
	ctx := context.Background()
	svc := newAffiliateService(t)
	mustRegister(t, svc, validInput("1010"))

	aff, err := svc.SearchByID(ctx, "1010")
	require.NoError(t, err)
	require.NotNil(t, aff)
	assert.Equal(t, "Gomez", aff.Surnames)

	aff, err = svc.SearchByID(ctx, "9999")
	require.NoError(t, err)
	assert.Nil(t, aff)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc := newAffiliateService(t)

	// ages at the fixed clock: 33 (birthday pending), 24, 40
	regs := []struct {
		id, birth, plan, gender string
	}{
		{"1", "20/06/1990", "A", "F"},
		{"2", "01/01/2000", "A", "M"},
		{"3", "10/03/1984", "B", "M"},
	}
	for _, reg := range regs {
		in := validInput(reg.id)
		in.Birth = reg.birth
		in.Plan = reg.plan
		in.Gender = reg.gender
		mustRegister(t, svc, in)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Plan]int{domain.PlanA: 2, domain.PlanB: 1, domain.PlanC: 0}, stats.PlanTotals)
	assert.InDelta(t, 33.0, stats.AvgAgeByGender[domain.GenderF], 1e-9)
	assert.InDelta(t, 32.0, stats.AvgAgeByGender[domain.GenderM], 1e-9)
	assert.InDelta(t, 0.0, stats.AvgAgeByGender[domain.GenderX], 1e-9)
	assert.Equal(t, 24, stats.MinAge)
	assert.Equal(t, 40, stats.MaxAge)
}

func TestStatsEmptyPopulation(t *testing.T) {
	svc := newAffiliateService(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.PlanTotals[domain.PlanA])
	assert.Equal(t, 0, stats.MinAge)
	assert.Equal(t, 0, stats.MaxAge)
}

func TestSurveyStatsOverall(t *testing.T) {
	ctx := context.Background()
	svc := newAffiliateService(t)

	for _, rec := range []struct {
		id     string
		rating float64
	}{{"1", 5}, {"2", 3}, {"unknown", 4}} {
		result, err := svc.RecordSurvey(ctx, rec.id, rec.rating)
		require.NoError(t, err)
		require.Equal(t, domain.ResultOK, result)
	}

	stats, err := svc.SurveyStats(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 4.0, stats.Average, 1e-9)
	assert.Nil(t, stats.Segments)
}

func TestSurveyStatsByPlan(t *testing.T) {
	ctx := context.Background()
	svc := newAffiliateService(t)

	in1 := validInput("1")
	in1.Plan = "A"
	mustRegister(t, svc, in1)
	in2 := validInput("2")
	in2.Plan = "B"
	mustRegister(t, svc, in2)

	for _, rec := range []struct {
		id     string
		rating float64
	}{{"1", 5}, {"2", 3}, {"orphan", 1}} {
		_, err := svc.RecordSurvey(ctx, rec.id, rec.rating)
		require.NoError(t, err)
	}

	stats, err := svc.SurveyStats(ctx, "plan")
	require.NoError(t, err)
	// the orphan row has no matching affiliate and is excluded
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 5.0, stats.Segments["A"], 1e-9)
	assert.InDelta(t, 3.0, stats.Segments["B"], 1e-9)
	// every segment value is present, zero when nothing joined to it
	assert.InDelta(t, 0.0, stats.Segments["C"], 1e-9)
}

func TestRecordSurveyBlankID(t *testing.T) {
	svc := newAffiliateService(t)

	result, err := svc.RecordSurvey(context.Background(), "  ", 5)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultInvalidData, result)
}
