package store

// Alerts returns the HR alert feed, newest first.
func (s *Store) Alerts() ([]Alert, error) {
	var alerts []Alert
	err := s.db.Order("created_at DESC").Limit(100).Find(&alerts).Error
	return alerts, err
}

func (s *Store) CreateAlert(alertType, message, sender string, targetUserID *uint) (Alert, error) {
	alert := Alert{
		Type:         alertType,
		Message:      message,
		Sender:       sender,
		TargetUserID: targetUserID,
	}
	if err := s.db.Create(&alert).Error; err != nil {
		return Alert{}, err
	}
	return alert, nil
}

// NotificationsForUser returns one user's notifications, newest
// first.
func (s *Store) NotificationsForUser(userID uint) ([]Notification, error) {
	var notifications []Notification
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (s *Store) CreateNotification(userID uint, message, notifType string, relatedTaskID *uint) (Notification, error) {
	notification := Notification{
		UserID:        userID,
		Message:       message,
		Type:          notifType,
		RelatedTaskID: relatedTaskID,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return Notification{}, err
	}
	return notification, nil
}

// MarkNotificationRead sets the read flag; the only mutation a
// notification ever receives.
func (s *Store) MarkNotificationRead(id uint) error {
	result := s.db.Model(&Notification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
