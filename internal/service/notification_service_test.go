package service

import (
	"study_portal_backend/internal/model"
	"study_portal_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationService_Feed(t *testing.T) {
	s := NewNotificationService(database.SeedNotifications())

	feed := s.Feed()
	assert.Len(t, feed.Items, 3)
	assert.Equal(t, 2, feed.UnreadCount)

	feed.Items[0].IsRead = true
	assert.Equal(t, 2, s.Feed().UnreadCount)

	empty := NewNotificationService(nil).Feed()
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.UnreadCount)

	allRead := NewNotificationService([]model.Notification{{ID: 1, IsRead: true}}).Feed()
	assert.Zero(t, allRead.UnreadCount)
}
