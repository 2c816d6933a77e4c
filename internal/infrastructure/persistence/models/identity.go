package models

import (
	"github.com/streetmart/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	AggregateModel
	Username         string        `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username"`
	PasswordHash     string        `gorm:"type:varchar(255);not null"`
	Role             identity.Role `gorm:"type:varchar(20);not null;index"`
	Name             string        `gorm:"type:varchar(100)"`
	ShopBusinessName string        `gorm:"type:varchar(100)"`
	Locality         string        `gorm:"type:varchar(100)"`
	ContactNumber    string        `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		Profile: identity.Profile{
			Name:             m.Name,
			ShopBusinessName: m.ShopBusinessName,
			Locality:         m.Locality,
			ContactNumber:    m.ContactNumber,
		},
	}
}

// FromDomain populates the persistence model from a domain User.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Name = u.Name
	m.ShopBusinessName = u.ShopBusinessName
	m.Locality = u.Locality
	m.ContactNumber = u.ContactNumber
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
