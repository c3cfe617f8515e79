package events

import "time"

const (
	NotificationRequestedTopic = "ems.notification.requested"
	NotificationRequestedType  = "notification.requested"
)

type NotificationRecipient struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

type NotificationRequestedEvent struct {
	EventType     string                  `json:"event_type"`
	RequestID     string                  `json:"request_id,omitempty"`
	Notifications []NotificationRecipient `json:"notifications"`
	OccurredAt    time.Time               `json:"occurred_at"`
}
