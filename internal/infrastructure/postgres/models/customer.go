package models

import "time"

type CustomerModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	MessengerID string `gorm:"uniqueIndex;not null"`
	Phone       string
	Address     string `gorm:"type:text"`
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CustomerModel) TableName() string {
	return "customers"
}
