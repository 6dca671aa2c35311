package yoga

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the account model. Email doubles as the login username.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	PasswordHash  string     `bun:"password,notnull" json:"-"`
	Admin         bool       `bun:"admin,notnull" json:"admin"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Username returns the login name
func (u *User) Username() string {
	return u.Email
}

// Teacher leads sessions
type Teacher struct {
	bun.BaseModel `bun:"table:teachers,alias:tch"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Session is a scheduled class. Members holds user ids and behaves as a set,
// it is persisted through SessionParticipant rows.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:ses"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Date          time.Time  `bun:"date,notnull" json:"date"`
	Description   string     `bun:"description,notnull" json:"description,omitempty"`
	TeacherID     int64      `bun:"teacher_id,notnull" json:"teacher_id,omitempty"`
	Members       []int64    `bun:"-" json:"users"`
	Version       int64      `bun:"version,notnull,default:0" json:"version"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// HasMember reports whether userID is part of the session
func (s *Session) HasMember(userID int64) bool {
	for _, id := range s.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMember adds userID to the member set, it returns false if it
// was already there
func (s *Session) AddMember(userID int64) bool {
	if s.HasMember(userID) {
		return false
	}
	s.Members = append(s.Members, userID)
	return true
}

// RemoveMember removes userID from the member set, it returns false if
// it was not there
func (s *Session) RemoveMember(userID int64) bool {
	for i, id := range s.Members {
		if id == userID {
			s.Members = append(s.Members[:i:i], s.Members[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the member slice
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Members = append([]int64(nil), s.Members...)
	return &c
}

// SessionParticipant links a user to a session. The pair is the primary key.
type SessionParticipant struct {
	bun.BaseModel `bun:"table:participate,alias:prt"`
	SessionID     int64 `bun:"session_id,pk" json:"session_id"`
	UserID        int64 `bun:"user_id,pk" json:"user_id"`
}

// SetMembers replaces the member set, dropping duplicates and keeping order
func (s *Session) SetMembers(ids []int64) {
	s.Members = s.Members[:0:0]
	for _, id := range ids {
		s.AddMember(id)
	}
}
