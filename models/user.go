package models

import "time"

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Role       string    `gorm:"type:enum('founder','investor','admin');default:'founder'" json:"role"`
	Name       string    `gorm:"size:100" json:"name"`
	Company    string    `gorm:"size:150" json:"company,omitempty"`
	Bio        string    `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL  string    `gorm:"size:500" json:"avatar_url,omitempty"`
	Phone      string    `gorm:"size:30" json:"phone,omitempty"`
	Location   string    `gorm:"size:100" json:"location,omitempty"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
