package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserCreated       = "user.created"
	EventTypeUserUpdated       = "user.updated"
	EventTypeUserDeleted       = "user.deleted"
	EventTypeUserPasswordReset = "user.password_reset"
)

type UserCreatedEvent struct {
	BaseEvent
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	EmpID    string `json:"emp_id"`
	Role     string `json:"role"`
}

func NewUserCreatedEvent(userID int64, username, empID, role string) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":  userID,
				"username": username,
				"emp_id":   empID,
				"role":     role,
			},
		},
		UserID:   userID,
		Username: username,
		EmpID:    empID,
		Role:     role,
	}
}

type UserUpdatedEvent struct {
	BaseEvent
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewUserUpdatedEvent(userID int64, username, role string) *UserUpdatedEvent {
	return &UserUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserUpdated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":  userID,
				"username": username,
				"role":     role,
			},
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}
}

type UserDeletedEvent struct {
	BaseEvent
	UserID    int64 `json:"user_id"`
	DeletedBy int64 `json:"deleted_by"`
}

func NewUserDeletedEvent(userID, deletedBy int64) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":    userID,
				"deleted_by": deletedBy,
			},
		},
		UserID:    userID,
		DeletedBy: deletedBy,
	}
}

// UserPasswordResetEvent is published after an admin reset so a notifier can
// tell the affected user. Mail delivery itself is outside this service.
type UserPasswordResetEvent struct {
	BaseEvent
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	ResetBy int64  `json:"reset_by"`
}

func NewUserPasswordResetEvent(userID int64, email string, resetBy int64) *UserPasswordResetEvent {
	return &UserPasswordResetEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserPasswordReset,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":  userID,
				"email":    email,
				"reset_by": resetBy,
			},
		},
		UserID:  userID,
		Email:   email,
		ResetBy: resetBy,
	}
}
