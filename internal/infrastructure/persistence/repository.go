package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Model is the contract a gorm model must satisfy to back a GormRepository.
// PM is the pointer type of the model struct M.
type Model[E any, M any] interface {
	*M
	TableName() string
	ToDomain() *E
	FromDomain(entity *E)
}

// GormRepository implements shared.Repository[E] once for every model.
// Aggregates (entities exposing GetVersion) are written with an optimistic
// version check: version 1 inserts, anything higher updates the row whose
// stored version is one less.
type GormRepository[E any, M any, PM Model[E, M]] struct {
	db          *gorm.DB
	columns     map[string]bool
	defaultSort string
}

// GormRepositoryOption configures a GormRepository
type GormRepositoryOption func(columns map[string]bool, defaultSort *string)

// WithColumns whitelists columns for filtering and ordering and sets the
// default order column.
func WithColumns(defaultSort string, columns ...string) GormRepositoryOption {
	return func(allowed map[string]bool, def *string) {
		for _, c := range columns {
			allowed[c] = true
		}
		if defaultSort != "" {
			allowed[defaultSort] = true
			*def = defaultSort
		}
	}
}

// NewGormRepository creates a generic repository over db
func NewGormRepository[E any, M any, PM Model[E, M]](db *gorm.DB, opts ...GormRepositoryOption) *GormRepository[E, M, PM] {
	columns := make(map[string]bool, len(CommonSortFields))
	for k, v := range CommonSortFields {
		columns[k] = v
	}
	defaultSort := "created_at"
	for _, opt := range opts {
		opt(columns, &defaultSort)
	}
	return &GormRepository[E, M, PM]{db: db, columns: columns, defaultSort: defaultSort}
}

// WithTx returns a repository bound to tx
func (r *GormRepository[E, M, PM]) WithTx(tx *gorm.DB) *GormRepository[E, M, PM] {
	return &GormRepository[E, M, PM]{db: tx, columns: r.columns, defaultSort: r.defaultSort}
}

func (r *GormRepository[E, M, PM]) table() string {
	return PM(new(M)).TableName()
}

// FindByID returns the entity or shared.ErrNotFound
func (r *GormRepository[E, M, PM]) FindByID(ctx context.Context, id uuid.UUID) (*E, error) {
	var m M
	if err := r.db.WithContext(ctx).First(PM(&m), "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %s", shared.ErrNotFound, r.table(), id)
		}
		return nil, err
	}
	return PM(&m).ToDomain(), nil
}

// FindAll returns a page of entities matching filter
func (r *GormRepository[E, M, PM]) FindAll(ctx context.Context, filter shared.Filter) ([]E, error) {
	var rows []M
	query, err := r.where(r.db.WithContext(ctx).Model(PM(new(M))), filter)
	if err != nil {
		return nil, err
	}
	orderBy := ValidateSortField(filter.OrderBy, r.columns, r.defaultSort)
	query = query.Order(clause.OrderByColumn{
		Column: clause.Column{Name: orderBy},
		Desc:   ValidateSortOrder(filter.OrderDir) == "DESC",
	}).Order("id")
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]E, 0, len(rows))
	for i := range rows {
		out = append(out, *PM(&rows[i]).ToDomain())
	}
	return out, nil
}

// Count returns the number of entities matching filter's predicates
func (r *GormRepository[E, M, PM]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query, err := r.where(r.db.WithContext(ctx).Model(PM(new(M))), filter)
	if err != nil {
		return 0, err
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts or updates entity
func (r *GormRepository[E, M, PM]) Save(ctx context.Context, entity *E) error {
	model := PM(new(M))
	model.FromDomain(entity)

	agg, versioned := any(entity).(shared.AggregateRoot)
	if !versioned || agg.GetVersion() <= 1 {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
			Create(model).Error
	}

	result := r.db.WithContext(ctx).
		Model(PM(new(M))).
		Where("id = ? AND version = ?", agg.GetID(), agg.GetVersion()-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %s at version %d", shared.ErrConcurrencyConflict, r.table(), agg.GetID(), agg.GetVersion()-1)
	}
	return nil
}

// Delete removes the entity or returns shared.ErrNotFound
func (r *GormRepository[E, M, PM]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(PM(new(M)), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, r.table(), id)
	}
	return nil
}

// where adds filter's equality predicates. Only whitelisted columns are
// accepted since keys end up as identifiers in SQL.
func (r *GormRepository[E, M, PM]) where(query *gorm.DB, filter shared.Filter) (*gorm.DB, error) {
	for col, val := range filter.Filters {
		if !r.columns[col] {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("cannot filter %s by %s", r.table(), col))
		}
		query = query.Where(clause.Eq{Column: clause.Column{Name: col}, Value: val})
	}
	return query, nil
}
