package notification

import "time"

type MarkReadRequest struct {
	All bool     `json:"all"`
	IDs []string `json:"ids" binding:"omitempty,dive,uuid"`
}

type BroadcastRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Message string `json:"message" binding:"required"`
	Link    string `json:"link"`
	Role    string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
}

type NotificationResponse struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Link      string     `json:"link,omitempty"`
	IsRead    bool       `json:"isRead"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ListResult struct {
	Items  []NotificationResponse
	Total  int64
	Unread int64
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

type BroadcastResponse struct {
	Recipients int `json:"recipients"`
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
