package repositories

import (
	"github.com/arefin88/chirp/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipient(toUser string) ([]models.Notification, error)
	GetUnreadCount(toUser string) (int64, error)
	MarkAllAsRead(toUser string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new Postgres-backed repository
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipient(toUser string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("to_user = ?", toUser).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(toUser string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("to_user = ? AND is_read = false", toUser).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAllAsRead(toUser string) error {
	return r.db.Model(&models.Notification{}).Where("to_user = ? AND is_read = false", toUser).Update("is_read", true).Error
}
