package infrastructure

import (
	"fmt"

	"warden/domain/events"
)

// Subject roots published by the bot
const (
	subjectModeration    = "warden.moderation"
	subjectAudit         = "warden.audit"
	subjectConfigUpdated = "warden.config.updated"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch e := event.(type) {
	case events.ModerationActionEvent:
		return fmt.Sprintf("%s.%s", subjectModeration, e.Action)
	case events.AuditEntryEvent:
		return fmt.Sprintf("%s.%s", subjectAudit, e.Kind)
	case events.GuildConfigUpdatedEvent:
		return subjectConfigUpdated
	default:
		return fmt.Sprintf("warden.unknown.%s", event.Type())
	}
}

// GetAllSubjects returns the subject filters the domain event stream captures
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		subjectModeration + ".*",
		subjectAudit + ".*",
		subjectConfigUpdated,
	}
}
