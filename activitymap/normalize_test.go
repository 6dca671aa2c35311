package activitymap_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-yoga"
	"github.com/goliatone/go-yoga/activitymap"
)

func TestNormalizeParticipation(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	event := yoga.ActivityEvent{
		EventType:  yoga.ActivityEventParticipationJoined,
		UserID:     2,
		SessionID:  1,
		OccurredAt: ts,
	}

	out := activitymap.Normalize(event)

	if out.ActorID != "2" {
		t.Fatalf("expected actor_id 2, got %q", out.ActorID)
	}
	if out.Verb != string(yoga.ActivityEventParticipationJoined) {
		t.Fatalf("expected verb %q, got %q", yoga.ActivityEventParticipationJoined, out.Verb)
	}
	if out.ObjectType != activitymap.ObjectTypeSession || out.ObjectID != "1" {
		t.Fatalf("expected session 1, got %s %q", out.ObjectType, out.ObjectID)
	}
	if out.Channel != activitymap.ChannelBooking {
		t.Fatalf("expected channel booking, got %q", out.Channel)
	}
	if !out.OccurredAt.Equal(ts) {
		t.Fatalf("expected occurred_at %v, got %v", ts, out.OccurredAt)
	}
	if out.Metadata[activitymap.MetadataKeySessionID] != int64(1) {
		t.Fatalf("expected metadata session_id 1, got %#v", out.Metadata[activitymap.MetadataKeySessionID])
	}
}

func TestNormalizeLoginFailure(t *testing.T) {
	t.Parallel()

	event := yoga.ActivityEvent{
		EventType: yoga.ActivityEventLoginFailure,
		Username:  "ghost@studio.com",
		Metadata:  map[string]any{"reason": "unknown user"},
	}
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	out := activitymap.Normalize(event, activitymap.WithClock(func() time.Time { return now }))

	if out.ActorID != "ghost@studio.com" {
		t.Fatalf("expected username as actor, got %q", out.ActorID)
	}
	if out.ObjectType != "" || out.ObjectID != "" {
		t.Fatalf("expected no object, got %s %q", out.ObjectType, out.ObjectID)
	}
	if out.Channel != activitymap.ChannelAuth {
		t.Fatalf("expected channel auth, got %q", out.Channel)
	}
	if !out.OccurredAt.Equal(now) {
		t.Fatalf("expected clock time, got %v", out.OccurredAt)
	}
	if out.Metadata["reason"] != "unknown user" || out.Metadata[activitymap.MetadataKeyUsername] != "ghost@studio.com" {
		t.Fatalf("unexpected metadata %+v", out.Metadata)
	}
	if len(event.Metadata) != 1 {
		t.Fatalf("expected source metadata to remain unchanged, got %+v", event.Metadata)
	}
}

func TestNormalizeActorFallbackChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		event  yoga.ActivityEvent
		opts   []activitymap.Option
		expect string
	}{
		{
			name:   "uses user id when present",
			event:  yoga.ActivityEvent{UserID: 7, Username: "a@b.com"},
			expect: "7",
		},
		{
			name:   "uses username when id missing",
			event:  yoga.ActivityEvent{Username: "a@b.com"},
			expect: "a@b.com",
		},
		{
			name:   "uses default fallback",
			event:  yoga.ActivityEvent{},
			expect: "anonymous",
		},
		{
			name:   "uses configured fallback",
			event:  yoga.ActivityEvent{},
			opts:   []activitymap.Option{activitymap.WithActorFallback("job")},
			expect: "job",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := activitymap.Normalize(tc.event, tc.opts...)
			if out.ActorID != tc.expect {
				t.Fatalf("expected actor_id %q, got %q", tc.expect, out.ActorID)
			}
		})
	}
}

func TestNormalizedFields(t *testing.T) {
	t.Parallel()

	out := activitymap.Normalize(yoga.ActivityEvent{
		EventType: yoga.ActivityEventUserDeleted,
		UserID:    3,
	}, activitymap.WithChannel("admin"))

	fields := out.Fields()
	if len(fields)%2 != 0 {
		t.Fatalf("expected key/value pairs, got %v", fields)
	}
	if out.Channel != "admin" || out.ObjectType != activitymap.ObjectTypeUser {
		t.Fatalf("unexpected normalization %+v", out)
	}
}
