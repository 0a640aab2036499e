package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a partner account.
type User struct {
	ID              uint           `gorm:"primarykey" json:"id"`                        // primary key
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`           // login email
	PasswordHash    string         `gorm:"not null" json:"-"`                           // password hash, never rendered
	DisplayName     string         `gorm:"default:''" json:"display_name"`              // partner display name
	CompanyName     string         `gorm:"default:''" json:"company_name"`              // partner company
	Phone           string         `gorm:"type:varchar(32);default:''" json:"phone"`    // contact phone
	Status          string         `gorm:"default:'active';index" json:"status"`        // account status
	ParentPartnerID *uint          `gorm:"index" json:"parent_partner_id,omitempty"`    // referring partner, self reference
	PartnerLevel    int            `gorm:"not null;default:1" json:"partner_level"`     // depth in the referral tree, 1..3
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`                           // email verification time
	LastLoginAt     *time.Time     `json:"last_login_at"`                               // last login time
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                     // creation time
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                     // update time
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                              // soft delete time

	ParentPartner *User `gorm:"foreignKey:ParentPartnerID" json:"parent_partner,omitempty"` // upline partner
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
