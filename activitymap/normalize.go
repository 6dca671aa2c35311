// Package activitymap flattens yoga activity events into a shape that log
// pipelines and audit stores can index without knowing the yoga types.
package activitymap

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-yoga"
)

const (
	// MetadataKeyUsername stores the username seen on the event
	MetadataKeyUsername = "username"
	// MetadataKeySessionID stores the session for participation events
	MetadataKeySessionID = "session_id"
)

const (
	ChannelAuth    = "auth"
	ChannelBooking = "booking"

	ObjectTypeUser    = "user"
	ObjectTypeSession = "session"

	defaultActorID = "anonymous"
)

// Normalized is a transport-agnostic activity shape for downstream systems.
type Normalized struct {
	ActorID    string         `json:"actor_id"`
	Verb       string         `json:"verb"`
	ObjectType string         `json:"object_type,omitempty"`
	ObjectID   string         `json:"object_id,omitempty"`
	Channel    string         `json:"channel,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Option customizes normalization behavior.
type Option func(*normalizeOptions)

type normalizeOptions struct {
	channel       string
	actorFallback string
	clock         func() time.Time
}

// Normalize converts a yoga.ActivityEvent into the generic shape.
// Participation events point at the session, every other event at the user.
func Normalize(event yoga.ActivityEvent, opts ...Option) Normalized {
	options := normalizeOptions{
		actorFallback: defaultActorID,
		clock:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	objectType, objectID := resolveObject(event)

	channel := options.channel
	if channel == "" {
		channel = channelFor(event.EventType)
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = options.clock().UTC()
	}

	return Normalized{
		ActorID:    firstNonEmpty(formatID(event.UserID), strings.TrimSpace(event.Username), options.actorFallback),
		Verb:       string(event.EventType),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    channel,
		Metadata:   normalizeMetadata(event),
		OccurredAt: occurredAt,
	}
}

// WithChannel forces the channel instead of deriving it from the event type
func WithChannel(channel string) Option {
	return func(opts *normalizeOptions) {
		opts.channel = strings.TrimSpace(channel)
	}
}

// WithActorFallback sets the actor id used when the event has neither a
// user id nor a username.
func WithActorFallback(actorID string) Option {
	return func(opts *normalizeOptions) {
		if actorID = strings.TrimSpace(actorID); actorID != "" {
			opts.actorFallback = actorID
		}
	}
}

// WithClock sets the clock used for events without a timestamp
func WithClock(clock func() time.Time) Option {
	return func(opts *normalizeOptions) {
		if clock != nil {
			opts.clock = clock
		}
	}
}

// Fields renders n as key/value pairs for a yoga.Logger
func (n Normalized) Fields() []any {
	args := []any{
		"actor_id", n.ActorID,
		"verb", n.Verb,
		"channel", n.Channel,
		"occurred_at", n.OccurredAt,
	}
	if n.ObjectType != "" {
		args = append(args, "object_type", n.ObjectType, "object_id", n.ObjectID)
	}
	if len(n.Metadata) > 0 {
		args = append(args, "metadata", n.Metadata)
	}
	return args
}

func isParticipation(t yoga.ActivityEventType) bool {
	return t == yoga.ActivityEventParticipationJoined || t == yoga.ActivityEventParticipationLeft
}

func channelFor(t yoga.ActivityEventType) string {
	if isParticipation(t) {
		return ChannelBooking
	}
	return ChannelAuth
}

func resolveObject(event yoga.ActivityEvent) (string, string) {
	if isParticipation(event.EventType) {
		return ObjectTypeSession, formatID(event.SessionID)
	}
	if id := formatID(event.UserID); id != "" {
		return ObjectTypeUser, id
	}
	return "", ""
}

func normalizeMetadata(event yoga.ActivityEvent) map[string]any {
	metadata := cloneMap(event.Metadata)

	if username := strings.TrimSpace(event.Username); username != "" {
		if metadata == nil {
			metadata = map[string]any{}
		}
		if _, exists := metadata[MetadataKeyUsername]; !exists {
			metadata[MetadataKeyUsername] = username
		}
	}

	if isParticipation(event.EventType) && event.SessionID > 0 {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata[MetadataKeySessionID] = event.SessionID
	}

	return metadata
}

func formatID(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
