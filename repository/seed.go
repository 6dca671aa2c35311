package repository

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-yoga"
)

// SeedAdmin is the account created by Seed
type SeedAdmin struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// DefaultSeedAdmin matches the account the web client ships with
var DefaultSeedAdmin = SeedAdmin{
	Email:     "yoga@studio.com",
	FirstName: "Admin",
	LastName:  "Admin",
	Password:  "test!1234",
}

// DefaultSeedTeachers are created by Seed
var DefaultSeedTeachers = []yoga.Teacher{
	{FirstName: "Margot", LastName: "DELAHAYE"},
	{FirstName: "Hélène", LastName: "THIERCELIN"},
}

// SeedResult counts the records created
type SeedResult struct {
	Users    int
	Teachers int
}

// Seed creates the admin account and the default teachers. Records that
// already exist are left untouched.
func (m *Manager) Seed(ctx context.Context, admin SeedAdmin, teachers []yoga.Teacher, hasher yoga.PasswordHasher) (SeedResult, error) {
	result := SeedResult{}

	err := m.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := m.users.FindByUsernameTx(ctx, tx, admin.Email)
		switch {
		case err == nil:
		case IsRecordNotFound(err):
			hash, err := hasher.Hash(admin.Password)
			if err != nil {
				return err
			}
			if _, err := m.users.SaveTx(ctx, tx, &yoga.User{
				Email:        admin.Email,
				FirstName:    admin.FirstName,
				LastName:     admin.LastName,
				PasswordHash: hash,
				Admin:        true,
			}); err != nil {
				return err
			}
			result.Users++
		default:
			return err
		}

		for _, t := range teachers {
			exists, err := tx.NewSelect().
				Model((*yoga.Teacher)(nil)).
				Where("?TableAlias.first_name = ?", t.FirstName).
				Where("?TableAlias.last_name = ?", t.LastName).
				Exists(ctx)
			if err != nil {
				return mapError(err, "failed to check teacher")
			}
			if exists {
				continue
			}
			now := time.Now().UTC()
			record := t
			record.ID = 0
			record.CreatedAt = &now
			record.UpdatedAt = &now
			if _, err := tx.NewInsert().Model(&record).Exec(ctx); err != nil {
				return mapError(err, "failed to create teacher")
			}
			result.Teachers++
		}
		return nil
	})

	return result, err
}
