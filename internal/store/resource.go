package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"culture-passport/internal/query"
)

// Patch carries a partial update. Only the columns present in Changes are
// written; everything else keeps its previous value.
type Patch interface {
	Changes() map[string]any
}

// set copies *v into m under col when v is non-nil.
func set[V any](m map[string]any, col string, v *V) {
	if v != nil {
		m[col] = *v
	}
}

// Resource is the generic create/read/update/delete store shared by master
// data, exam templates, announcements and roadmap milestones.
type Resource[T any] struct {
	db    *gorm.DB
	name  string
	order string
	// live restricts every read and write, e.g. is_deleted = false
	live query.Spec
}

func NewResource[T any](db *gorm.DB, name, order string) *Resource[T] {
	return &Resource[T]{db: db, name: name, order: order}
}

func (r *Resource[T]) List(ctx context.Context, filter query.Spec) ([]T, error) {
	spec := filter.And(r.live)
	if spec.Order == "" {
		spec = spec.OrderBy(r.order)
	}
	var out []T
	if err := spec.Apply(r.db.WithContext(ctx).Model(new(T))).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, translate(err))
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var v T
	err := r.live.Eq("id", id).Apply(r.db.WithContext(ctx).Model(new(T))).Take(&v).Error
	if err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

type identity interface{ ResetIdentity() }

// Create validates required fields before touching the database. Ids and
// timestamps are always assigned here, never taken from v.
func (r *Resource[T]) Create(ctx context.Context, v *T) error {
	if id, ok := any(v).(identity); ok {
		id.ResetIdentity()
	}
	if err := validateStruct(v); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return translateWrite(err)
	}
	return nil
}

// Update checks p against the same rules as Create before writing.
func (r *Resource[T]) Update(ctx context.Context, id string, p Patch) (*T, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	changes := p.Changes()
	if len(changes) > 0 {
		res := r.live.Eq("id", id).Apply(r.db.WithContext(ctx).Model(new(T))).Updates(changes)
		if res.Error != nil {
			return nil, updateError(res.Error, id)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.Get(ctx, id)
}

// Delete removes the row. A foreign key still pointing at it surfaces as
// ErrReferenced and nothing is removed.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	res := r.live.Eq("id", id).Apply(r.db.WithContext(ctx)).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
