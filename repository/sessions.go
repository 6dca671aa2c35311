package repository

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-yoga"
)

// Sessions is the bun backed yoga.SessionStore. Members are stored as
// participate rows.
type Sessions struct {
	db *bun.DB
}

var _ yoga.SessionStore = (*Sessions)(nil)

func NewSessions(db *bun.DB) *Sessions {
	return &Sessions{db: db}
}

func (r *Sessions) FindByID(ctx context.Context, id int64) (*yoga.Session, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

func (r *Sessions) FindByIDTx(ctx context.Context, tx bun.IDB, id int64) (*yoga.Session, error) {
	record := &yoga.Session{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapError(err, "failed to find session")
	}

	members, err := r.membersTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	record.Members = members
	return record, nil
}

func (r *Sessions) FindAll(ctx context.Context) ([]*yoga.Session, error) {
	records := []*yoga.Session{}
	err := r.db.NewSelect().
		Model(&records).
		OrderExpr("?TableAlias.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapError(err, "failed to list sessions")
	}
	if len(records) == 0 {
		return records, nil
	}

	ids := make([]int64, 0, len(records))
	for _, s := range records {
		ids = append(ids, s.ID)
	}

	rows := []yoga.SessionParticipant{}
	err = r.db.NewSelect().
		Model(&rows).
		Where("?TableAlias.session_id IN (?)", bun.In(ids)).
		OrderExpr("?TableAlias.session_id ASC, ?TableAlias.user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapError(err, "failed to list session members")
	}

	byID := make(map[int64]*yoga.Session, len(records))
	for _, s := range records {
		s.Members = []int64{}
		byID[s.ID] = s
	}
	for _, row := range rows {
		if s, ok := byID[row.SessionID]; ok {
			s.Members = append(s.Members, row.UserID)
		}
	}
	return records, nil
}

// Save writes the session row and its member set in one transaction.
// Updates only apply when the stored version equals session.Version,
// otherwise yoga.ErrSessionConflict is returned.
func (r *Sessions) Save(ctx context.Context, session *yoga.Session) (*yoga.Session, error) {
	var saved *yoga.Session
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		saved, err = r.SaveTx(ctx, tx, session)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *Sessions) SaveTx(ctx context.Context, tx bun.IDB, session *yoga.Session) (*yoga.Session, error) {
	now := time.Now().UTC()
	record := session.Clone()
	record.UpdatedAt = &now

	if record.ID == 0 {
		record.Version = 0
		record.CreatedAt = &now
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return nil, mapError(err, "failed to create session")
		}
	} else {
		res, err := tx.NewUpdate().
			Model((*yoga.Session)(nil)).
			Set("? = ?", bun.Ident("name"), record.Name).
			Set("? = ?", bun.Ident("date"), record.Date).
			Set("? = ?", bun.Ident("description"), record.Description).
			Set("? = ?", bun.Ident("teacher_id"), record.TeacherID).
			Set("? = ?", bun.Ident("updated_at"), now).
			Set("? = ? + 1", bun.Ident("version"), bun.Ident("version")).
			Where("? = ?", bun.Ident("id"), record.ID).
			Where("? = ?", bun.Ident("version"), record.Version).
			Exec(ctx)
		if err != nil {
			return nil, mapError(err, "failed to update session")
		}

		n, err := res.RowsAffected()
		if err != nil {
			return nil, mapError(err, "failed to update session")
		}
		if n == 0 {
			exists, err := tx.NewSelect().
				Model((*yoga.Session)(nil)).
				Where("?TableAlias.id = ?", record.ID).
				Exists(ctx)
			if err != nil {
				return nil, mapError(err, "failed to update session")
			}
			if !exists {
				return nil, yoga.ErrRecordNotFound
			}
			return nil, yoga.ErrSessionConflict
		}
		record.Version++
	}

	if err := r.syncMembersTx(ctx, tx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteByID removes the session and its participants
func (r *Sessions) DeleteByID(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*yoga.SessionParticipant)(nil)).
			Where("session_id = ?", id).
			Exec(ctx); err != nil {
			return mapError(err, "failed to delete session participants")
		}

		res, err := tx.NewDelete().
			Model((*yoga.Session)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return mapError(err, "failed to delete session")
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return yoga.ErrRecordNotFound
		}
		return nil
	})
}

func (r *Sessions) membersTx(ctx context.Context, tx bun.IDB, sessionID int64) ([]int64, error) {
	members := []int64{}
	err := tx.NewSelect().
		Model((*yoga.SessionParticipant)(nil)).
		Column("user_id").
		Where("?TableAlias.session_id = ?", sessionID).
		OrderExpr("?TableAlias.user_id ASC").
		Scan(ctx, &members)
	if err != nil {
		return nil, mapError(err, "failed to load session members")
	}
	return members, nil
}

// syncMembersTx applies the difference between the stored member rows and
// record.Members
func (r *Sessions) syncMembersTx(ctx context.Context, tx bun.IDB, record *yoga.Session) error {
	stored, err := r.membersTx(ctx, tx, record.ID)
	if err != nil {
		return err
	}

	want := make(map[int64]struct{}, len(record.Members))
	for _, id := range record.Members {
		want[id] = struct{}{}
	}
	have := make(map[int64]struct{}, len(stored))
	for _, id := range stored {
		have[id] = struct{}{}
	}

	removed := []int64{}
	for _, id := range stored {
		if _, ok := want[id]; !ok {
			removed = append(removed, id)
		}
	}

	added := []yoga.SessionParticipant{}
	for _, id := range record.Members {
		if _, ok := have[id]; !ok {
			added = append(added, yoga.SessionParticipant{SessionID: record.ID, UserID: id})
			have[id] = struct{}{}
		}
	}

	if len(removed) > 0 {
		if _, err := tx.NewDelete().
			Model((*yoga.SessionParticipant)(nil)).
			Where("session_id = ?", record.ID).
			Where("user_id IN (?)", bun.In(removed)).
			Exec(ctx); err != nil {
			return mapError(err, "failed to remove session members")
		}
	}

	if len(added) > 0 {
		if _, err := tx.NewInsert().Model(&added).Exec(ctx); err != nil {
			return mapError(err, "failed to add session members")
		}
	}
	return nil
}
