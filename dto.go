package yoga

import (
	"time"
)

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest payload
type SignupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Message converts the request to the registration message
func (r SignupRequest) Message() RegisterUserMessage {
	return RegisterUserMessage{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
	}
}

// SessionRequest is the create and update payload
type SessionRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	TeacherID   int64   `json:"teacher_id"`
	Description string  `json:"description"`
	Users       []int64 `json:"users"`
}

// Session converts a validated request to a model
func (r SessionRequest) Session() (*Session, error) {
	date, err := ParseSessionDate(r.Date)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Name:        r.Name,
		Date:        date,
		TeacherID:   r.TeacherID,
		Description: r.Description,
	}
	s.SetMembers(r.Users)
	return s, nil
}

// JwtResponse is returned on login
type JwtResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

func NewJwtResponse(r *LoginResult) JwtResponse {
	return JwtResponse{
		Token:     r.Token,
		Type:      r.Type,
		ID:        r.ID,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Admin:     r.Admin,
	}
}

// MessageResponse wraps a single message
type MessageResponse struct {
	Message string `json:"message"`
}

// UserDTO never carries the password hash
type UserDTO struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Admin     bool       `json:"admin"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func NewUserDTO(user *User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Admin:     user.Admin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type TeacherDTO struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func NewTeacherDTO(teacher *Teacher) TeacherDTO {
	return TeacherDTO{
		ID:        teacher.ID,
		FirstName: teacher.FirstName,
		LastName:  teacher.LastName,
		CreatedAt: teacher.CreatedAt,
		UpdatedAt: teacher.UpdatedAt,
	}
}

func NewTeacherDTOs(teachers []*Teacher) []TeacherDTO {
	out := make([]TeacherDTO, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, NewTeacherDTO(t))
	}
	return out
}

type SessionDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Date        time.Time  `json:"date"`
	TeacherID   int64      `json:"teacher_id"`
	Description string     `json:"description"`
	Users       []int64    `json:"users"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func NewSessionDTO(session *Session) SessionDTO {
	users := append([]int64{}, session.Members...)
	return SessionDTO{
		ID:          session.ID,
		Name:        session.Name,
		Date:        session.Date,
		TeacherID:   session.TeacherID,
		Description: session.Description,
		Users:       users,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}

func NewSessionDTOs(sessions []*Session) []SessionDTO {
	out := make([]SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewSessionDTO(s))
	}
	return out
}
