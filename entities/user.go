package entities

type User struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"size:50;not null;uniqueIndex:users_username_key" json:"username"`
	Email          string `gorm:"size:255;not null;uniqueIndex:users_email_key" json:"email"`
	HashedPassword string `gorm:"column:hashed_password;not null" json:"-"`
	IsActive       bool   `gorm:"not null;default:true" json:"is_active"`
	IsVerified     bool   `gorm:"not null;default:false" json:"is_verified"`

	Timestamp
}

func (User) TableName() string {
	return "users"
}
