// Package usersink bridges setting change events into a go-users
// ActivitySink so platform activity feeds can surface configuration changes.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-settings/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// ObjectType is the record object type used for setting changes.
const ObjectType = "setting"

// Hook adapts change events to a go-users ActivitySink.
type Hook struct {
	Sink    usertypes.ActivitySink
	Channel string
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := activity.NormalizeEvent(event)
	if normalized.Verb == "" || normalized.Key == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	record := usertypes.ActivityRecord{
		ActorID:    parseUUID(normalized.ActorID),
		UserID:     parseUUID(normalized.UserID),
		TenantID:   parseUUID(normalized.TenantID),
		Verb:       normalized.Verb,
		ObjectType: ObjectType,
		ObjectID:   normalized.Key,
		Channel:    h.channel(),
		Data:       cloneMap(normalized.Metadata),
		OccurredAt: normalized.OccurredAt,
	}
	if record.Data == nil {
		record.Data = map[string]any{}
	}
	record.Data["scope"] = normalized.Scope
	record.Data["value"] = normalized.Value

	return h.Sink.Log(ctx, record)
}

func (h Hook) channel() string {
	if h.Channel != "" {
		return h.Channel
	}
	return "settings"
}

func parseUUID(input string) uuid.UUID {
	value := strings.TrimSpace(input)
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
