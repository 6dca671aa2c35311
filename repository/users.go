package repository

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-yoga"
)

// Users is the bun backed yoga.PrincipalStore
type Users struct {
	db *bun.DB
}

var _ yoga.PrincipalStore = (*Users)(nil)

func NewUsers(db *bun.DB) *Users {
	return &Users{db: db}
}

// FindByUsername matches the email exactly
func (r *Users) FindByUsername(ctx context.Context, username string) (*yoga.User, error) {
	return r.FindByUsernameTx(ctx, r.db, username)
}

func (r *Users) FindByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*yoga.User, error) {
	record := &yoga.User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapError(err, "failed to find user by username")
	}
	return record, nil
}

func (r *Users) FindByID(ctx context.Context, id int64) (*yoga.User, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

func (r *Users) FindByIDTx(ctx context.Context, tx bun.IDB, id int64) (*yoga.User, error) {
	record := &yoga.User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapError(err, "failed to find user by id")
	}
	return record, nil
}

func (r *Users) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*yoga.User)(nil)).
		Where("?TableAlias.email = ?", username).
		Exists(ctx)
	if err != nil {
		return false, mapError(err, "failed to check username")
	}
	return exists, nil
}

// Save inserts users without an id and updates the others
func (r *Users) Save(ctx context.Context, user *yoga.User) (*yoga.User, error) {
	return r.SaveTx(ctx, r.db, user)
}

func (r *Users) SaveTx(ctx context.Context, tx bun.IDB, user *yoga.User) (*yoga.User, error) {
	now := time.Now().UTC()
	record := *user
	record.UpdatedAt = &now

	if record.ID == 0 {
		record.CreatedAt = &now
		if _, err := tx.NewInsert().Model(&record).Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return nil, yoga.ErrUsernameTaken
			}
			return nil, mapError(err, "failed to create user")
		}
		return &record, nil
	}

	res, err := tx.NewUpdate().
		Model(&record).
		Column("email", "first_name", "last_name", "password", "admin", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, yoga.ErrUsernameTaken
		}
		return nil, mapError(err, "failed to update user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, yoga.ErrRecordNotFound
	}
	return &record, nil
}

// DeleteByID removes the user and every membership row in one transaction
func (r *Users) DeleteByID(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return r.DeleteByIDTx(ctx, tx, id)
	})
}

func (r *Users) DeleteByIDTx(ctx context.Context, tx bun.IDB, id int64) error {
	if _, err := tx.NewDelete().
		Model((*yoga.SessionParticipant)(nil)).
		Where("user_id = ?", id).
		Exec(ctx); err != nil {
		return mapError(err, "failed to delete user participations")
	}

	res, err := tx.NewDelete().
		Model((*yoga.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return mapError(err, "failed to delete user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return yoga.ErrRecordNotFound
	}
	return nil
}
