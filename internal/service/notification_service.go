package service

import (
	"study_portal_backend/internal/model"
	"sync"
)

// NotificationFeed 通知列表和未读数
type NotificationFeed struct {
	Items       []model.Notification `json:"items"`
	UnreadCount int                  `json:"unreadCount"`
}

// NotificationService 全站共用的通知，只保存在内存中
type NotificationService struct {
	mu    sync.RWMutex
	items []model.Notification
}

func NewNotificationService(items []model.Notification) *NotificationService {
	return &NotificationService{items: append([]model.Notification(nil), items...)}
}

func (s *NotificationService) Feed() NotificationFeed {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feed := NotificationFeed{Items: make([]model.Notification, len(s.items))}
	copy(feed.Items, s.items)
	for _, n := range s.items {
		if !n.IsRead {
			feed.UnreadCount++
		}
	}
	return feed
}
