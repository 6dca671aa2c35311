package yoga

import (
	"testing"
)

func TestSessionMembersBehaveAsSet(t *testing.T) {
	s := &Session{}

	if !s.AddMember(2) {
		t.Fatalf("expected first add to succeed")
	}
	if s.AddMember(2) {
		t.Fatalf("expected duplicate add to be rejected")
	}
	if !s.HasMember(2) {
		t.Fatalf("expected member 2")
	}
	if len(s.Members) != 1 {
		t.Fatalf("expected one member, got %v", s.Members)
	}

	if !s.RemoveMember(2) {
		t.Fatalf("expected remove to succeed")
	}
	if s.RemoveMember(2) {
		t.Fatalf("expected second remove to report absence")
	}
	if s.HasMember(2) {
		t.Fatalf("member 2 still present")
	}
}

func TestSessionSetMembersDropsDuplicates(t *testing.T) {
	s := &Session{}
	s.SetMembers([]int64{3, 1, 3, 2, 1})

	want := []int64{3, 1, 2}
	if len(s.Members) != len(want) {
		t.Fatalf("expected %v, got %v", want, s.Members)
	}
	for i := range want {
		if s.Members[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, s.Members)
		}
	}
}

func TestSessionCloneDoesNotShareMembers(t *testing.T) {
	s := &Session{ID: 1, Members: []int64{1, 2}}
	c := s.Clone()
	c.AddMember(3)
	c.RemoveMember(1)

	if len(s.Members) != 2 || s.Members[0] != 1 || s.Members[1] != 2 {
		t.Fatalf("original mutated: %v", s.Members)
	}

	var nilSession *Session
	if nilSession.Clone() != nil {
		t.Fatalf("expected nil clone")
	}
}

func TestRemoveMemberKeepsBackingArray(t *testing.T) {
	backing := []int64{1, 2, 3}
	s := &Session{Members: backing}
	s.RemoveMember(1)

	if backing[0] != 1 || backing[1] != 2 || backing[2] != 3 {
		t.Fatalf("remove wrote through shared slice: %v", backing)
	}
}

func TestUserUsernameIsEmail(t *testing.T) {
	u := &User{Email: "yoga@studio.com"}
	if u.Username() != "yoga@studio.com" {
		t.Fatalf("unexpected username %q", u.Username())
	}
}
