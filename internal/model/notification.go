package model

// swagger:model Notification
type Notification struct {
	ID        uint64 `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	IsRead    bool   `json:"isRead"`
}
