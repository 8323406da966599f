package models

// Like records that a user liked a message.
type Like struct {
	UserID    uint    `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	MessageID uint    `json:"message_id" gorm:"primaryKey;autoIncrement:false;index"`
	User      User    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Message   Message `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
