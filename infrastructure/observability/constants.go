package observability

// Metric name prefixes
const (
	MetricPrefix = "warden"
)

// Metric names
const (
	// Discord metrics
	GatewayEventsTotal = MetricPrefix + ".gateway.events_total"
	CommandsTotal      = MetricPrefix + ".commands.total"

	// Moderation metrics
	ModerationActionsTotal = MetricPrefix + ".moderation.actions_total"
	AuditEntriesTotal      = MetricPrefix + ".audit.entries_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Database metrics
	DatabaseQueriesTotal  = MetricPrefix + ".database.queries_total"
	DatabaseQueryDuration = MetricPrefix + ".database.query_duration"
)

// Label keys
const (
	// Common labels
	LabelType      = "type"
	LabelEventType = "event_type"

	// Command labels
	LabelCommand = "command"
	LabelOutcome = "outcome"

	// Moderation labels
	LabelAction = "action"
	LabelKind   = "kind"

	// Database labels
	LabelRepository = "repository"
	LabelMethod     = "method"
)

// Command outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
