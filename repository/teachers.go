package repository

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-yoga"
)

// Teachers is the bun backed yoga.TeacherStore
type Teachers struct {
	db *bun.DB
}

var _ yoga.TeacherStore = (*Teachers)(nil)

func NewTeachers(db *bun.DB) *Teachers {
	return &Teachers{db: db}
}

func (r *Teachers) FindByID(ctx context.Context, id int64) (*yoga.Teacher, error) {
	record := &yoga.Teacher{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapError(err, "failed to find teacher")
	}
	return record, nil
}

func (r *Teachers) FindAll(ctx context.Context) ([]*yoga.Teacher, error) {
	records := []*yoga.Teacher{}
	err := r.db.NewSelect().
		Model(&records).
		OrderExpr("?TableAlias.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapError(err, "failed to list teachers")
	}
	return records, nil
}

// FindByName is used by the seed command to stay idempotent
func (r *Teachers) FindByName(ctx context.Context, firstName, lastName string) (*yoga.Teacher, error) {
	record := &yoga.Teacher{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.first_name = ?", firstName).
		Where("?TableAlias.last_name = ?", lastName).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapError(err, "failed to find teacher")
	}
	return record, nil
}

func (r *Teachers) Create(ctx context.Context, teacher *yoga.Teacher) (*yoga.Teacher, error) {
	now := time.Now().UTC()
	record := *teacher
	record.ID = 0
	record.CreatedAt = &now
	record.UpdatedAt = &now

	if _, err := r.db.NewInsert().Model(&record).Exec(ctx); err != nil {
		return nil, mapError(err, "failed to create teacher")
	}
	return &record, nil
}
