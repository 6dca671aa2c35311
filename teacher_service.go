package yoga

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// TeacherService is read only
type TeacherService struct {
	teachers TeacherStore
}

func NewTeacherService(teachers TeacherStore) *TeacherService {
	return &TeacherService{teachers: teachers}
}

func (s *TeacherService) FindAll(ctx context.Context) ([]*Teacher, error) {
	teachers, err := s.teachers.FindAll(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list teachers")
	}
	return teachers, nil
}

func (s *TeacherService) FindByID(ctx context.Context, id int64) (*Teacher, error) {
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve teacher")
	}
	return teacher, nil
}
