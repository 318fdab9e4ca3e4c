// Package events defines the workflow lifecycle notifications published on the event bus.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

// Topic carries every workflow lifecycle event.
const Topic = "qubeflow.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	WorkflowValidatedEvent       EventType = "workflow.validated"
	WorkflowVersionCreatedEvent  EventType = "workflow.version.created"
	WorkflowVersionPromotedEvent EventType = "workflow.version.promoted"
	WorkflowVersionArchivedEvent EventType = "workflow.version.archived"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NewBaseEvent stamps a fresh id and the current time.
func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
	}
}

func (b BaseEvent) GetID() string {
	return b.ID
}

// WorkflowValidated is published after a stored workflow has been validated.
type WorkflowValidated struct {
	BaseEvent

	Valid      bool     `json:"valid"`
	IssueCodes []string `json:"issue_codes"`
}

func (w WorkflowValidated) GetType() EventType {
	return WorkflowValidatedEvent
}

type WorkflowVersionCreated struct {
	BaseEvent

	VersionID       string  `json:"version_id"`
	ParentVersionID *string `json:"parent_version_id,omitempty"`
	Label           string  `json:"label"`
}

func (w WorkflowVersionCreated) GetType() EventType {
	return WorkflowVersionCreatedEvent
}

// WorkflowVersionPromoted reports a version going live. ArchivedVersionID is empty when
// no version was live before.
type WorkflowVersionPromoted struct {
	BaseEvent

	VersionID         string `json:"version_id"`
	ArchivedVersionID string `json:"archived_version_id,omitempty"`
}

func (w WorkflowVersionPromoted) GetType() EventType {
	return WorkflowVersionPromotedEvent
}

type WorkflowVersionArchived struct {
	BaseEvent

	VersionID string `json:"version_id"`
}

func (w WorkflowVersionArchived) GetType() EventType {
	return WorkflowVersionArchivedEvent
}
