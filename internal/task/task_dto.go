package task

import (
	"time"

	"go-ems/internal/user"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"

	// UnassignedSentinel clears the assignee.
	UnassignedSentinel = "unassigned"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     string `json:"dueDate"`
	AssigneeID  string `json:"assigneeId"`
}

// UpdateTaskRequest is a partial patch. An empty dueDate clears it and the
// "unassigned" assigneeId removes the assignee.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Status      *string `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	DueDate     *string `json:"dueDate"`
	AssigneeID  *string `json:"assigneeId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

type ListFilter struct {
	// ParticipantID limits results to tasks created by or assigned to the user.
	ParticipantID *uuid.UUID
	AssigneeID    *uuid.UUID
	Unassigned    bool
	Status        Status
	Priority      Priority
	StartDate     string
	EndDate       string
	Search        string
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TaskResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	Priority    Priority     `json:"priority"`
	DueDate     *string      `json:"dueDate"`
	Overdue     bool         `json:"overdue"`
	CreatedBy   *UserSummary `json:"createdBy,omitempty"`
	Assignee    *UserSummary `json:"assignee"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func summarize(u *user.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}

func mapToResponse(t Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedBy:   summarize(t.CreatedBy),
		Assignee:    summarize(t.Assignee),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		d := t.DueDate.Format(dateLayout)
		resp.DueDate = &d
		resp.Overdue = !t.Status.IsTerminal() && t.DueDate.Before(startOfDay(now))
	}
	return resp
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
