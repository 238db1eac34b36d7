package notification

type NotificationResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	RelatedEntity *string `json:"related_entity,omitempty"`
	Read          bool    `json:"read"`
	CreatedAt     string  `json:"created_at"`
}
