package order

import (
	"time"

	"clearance/internal/core/domain/model/kernel"
)

// EffectKind classifies a side effect emitted by a transition.
type EffectKind int

const (
	// EffectAppendLog appends an entry to the audit log sink.
	EffectAppendLog EffectKind = iota + 1

	// EffectNotifyActor sends a notification to a participant.
	EffectNotifyActor

	// EffectScheduleExpiryReminder schedules the deferred expiry-reminder job.
	EffectScheduleExpiryReminder

	// EffectCancelScheduledJobs cancels previously scheduled jobs by handle.
	EffectCancelScheduledJobs
)

// Effect is a side-effect record emitted by a transition. Effects are carried
// out by the application layer after the state change commits; their failure is
// logged and never rolls the transition back.
type Effect struct {
	Kind EffectKind

	// Message is the audit-log text or notification template kind.
	Message string

	// Notes carries supplementary audit text (e.g. a rejection reason).
	Notes string

	// Recipient is the notification or reminder target.
	Recipient kernel.UUID

	// FireAt and Deadline parameterize EffectScheduleExpiryReminder.
	FireAt   time.Time
	Deadline time.Time

	// Handles lists the jobs to cancel for EffectCancelScheduledJobs.
	Handles []kernel.UUID
}

func logEffect(message string) Effect {
	return Effect{Kind: EffectAppendLog, Message: message}
}

func logEffectWithNotes(message, notes string) Effect {
	return Effect{Kind: EffectAppendLog, Message: message, Notes: notes}
}

func notifyEffect(recipient kernel.UUID, templateKind string) Effect {
	return Effect{Kind: EffectNotifyActor, Recipient: recipient, Message: templateKind}
}

func cancelJobsEffect(handles ...kernel.UUID) Effect {
	return Effect{Kind: EffectCancelScheduledJobs, Handles: handles}
}
