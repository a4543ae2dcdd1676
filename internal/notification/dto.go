package notification

// NotificationResponse represents a notification in the API
type NotificationResponse struct {
	ID        int64  `json:"id"`
	Type      Type   `json:"type"`
	Message   string `json:"message"`
	RelatedID *int64 `json:"related_id,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// UnreadCountResponse reports how many notifications are still unread
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// ToResponse converts a Notification model to its DTO
func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		RelatedID: n.RelatedID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
