package entity

import (
	"encoding/json"
	"time"
)

// Operation is the kind of change an activity log entry records.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// LogTarget names the table an activity log entry refers to.
type LogTarget string

const (
	LogTargetArticle LogTarget = "article"
	LogTargetComment LogTarget = "comment"
	LogTargetUser    LogTarget = "user"
)

// ActivityLog is an append-only audit record. Business logic never reads it.
type ActivityLog struct {
	ID         int64
	UserID     *int64
	TargetType LogTarget
	TargetID   int64
	Operation  Operation
	Payload    json.RawMessage
	CreatedAt  time.Time
}
