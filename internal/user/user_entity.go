package user

import (
	"time"

	"go-ems/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"column:name;type:varchar(255);not null"`
	Email     string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Password  string         `gorm:"column:password;type:text;not null"`
	Role      domain.Role    `gorm:"column:role;type:varchar(20);not null;default:EMPLOYEE;index"`
	Phone     string         `gorm:"column:phone;type:varchar(50)"`
	Address   string         `gorm:"column:address;type:text"`
	AvatarURL string         `gorm:"column:avatar_url;type:text"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

func (u User) SessionUser() domain.SessionUser {
	return domain.SessionUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
