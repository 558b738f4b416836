package repositories

import (
	"context"
	"strconv"

	"eps-clinic/internal/adapters/persistence/filestore"
	"eps-clinic/internal/core/domain"
)

// AffiliateColumns is the declared column schema of the affiliate store
var AffiliateColumns = []string{"id", "names", "surnames", "birth", "plan", "gender", "email"}

// affiliateRepository implements AffiliateRepository over a table store
type affiliateRepository struct {
	store *filestore.TableStore
}

// NewAffiliateRepository creates a new affiliate repository
func NewAffiliateRepository(store *filestore.TableStore) AffiliateRepository {
	return &affiliateRepository{store: store}
}

// List loads every affiliate from the backing store
func (r *affiliateRepository) List(ctx context.Context) ([]domain.Affiliate, error) {
	rows, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}
	affs := make([]domain.Affiliate, 0, len(rows))
	for _, row := range rows {
		affs = append(affs, affiliateFromRow(row))
	}
	return affs, nil
}

// GetByID returns the affiliate with the given id, or nil when absent
func (r *affiliateRepository) GetByID(ctx context.Context, id string) (*domain.Affiliate, error) {
	affs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range affs {
		if affs[i].ID == id {
			return &affs[i], nil
		}
	}
	return nil, nil
}

// ExistsByID checks whether an affiliate with the given id exists
func (r *affiliateRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	aff, err := r.GetByID(ctx, id)
	return aff != nil, err
}

// Create appends a new affiliate and rewrites the backing store
func (r *affiliateRepository) Create(ctx context.Context, aff *domain.Affiliate) error {
	return r.store.Update(func(rows []filestore.Row) ([]filestore.Row, error) {
		return append(rows, affiliateToRow(aff)), nil
	})
}

// Ensure makes sure the backing file exists with its header
func (r *affiliateRepository) Ensure(ctx context.Context) error {
	return r.store.Ensure()
}

func affiliateFromRow(row filestore.Row) domain.Affiliate {
	return domain.Affiliate{
		ID:       row["id"],
		Names:    row["names"],
		Surnames: row["surnames"],
		Birth:    row["birth"],
		Plan:     row["plan"],
		Gender:   row["gender"],
		Email:    row["email"],
	}
}

func affiliateToRow(aff *domain.Affiliate) filestore.Row {
	return filestore.Row{
		"id":       aff.ID,
		"names":    aff.Names,
		"surnames": aff.Surnames,
		"birth":    aff.Birth,
		"plan":     aff.Plan,
		"gender":   aff.Gender,
		"email":    aff.Email,
	}
}

// SurveyColumns is the declared column schema of the survey store
var SurveyColumns = []string{"id", "rating"}

// surveyRepository implements SurveyRepository over a table store
type surveyRepository struct {
	store *filestore.TableStore
}

// NewSurveyRepository creates a new survey repository
func NewSurveyRepository(store *filestore.TableStore) SurveyRepository {
	return &surveyRepository{store: store}
}

// List loads every survey row from the backing store. Rows whose rating
// does not parse as a number are kept with a zero rating rather than
// failing the whole load.
func (r *surveyRepository) List(ctx context.Context) ([]domain.Survey, error) {
	rows, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}
	surveys := make([]domain.Survey, 0, len(rows))
	for _, row := range rows {
		rating, _ := strconv.ParseFloat(row["rating"], 64)
		surveys = append(surveys, domain.Survey{ID: row["id"], Rating: rating})
	}
	return surveys, nil
}

// Create appends a survey row and rewrites the backing store
func (r *surveyRepository) Create(ctx context.Context, survey *domain.Survey) error {
	return r.store.Update(func(rows []filestore.Row) ([]filestore.Row, error) {
		return append(rows, filestore.Row{
			"id":     survey.ID,
			"rating": strconv.FormatFloat(survey.Rating, 'f', -1, 64),
		}), nil
	})
}

// Ensure makes sure the backing file exists with its header
func (r *surveyRepository) Ensure(ctx context.Context) error {
	return r.store.Ensure()
}
