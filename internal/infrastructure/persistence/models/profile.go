package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/profile"
)

// ProfileModel is the persistence model for the terminal Profile aggregate.
type ProfileModel struct {
	AggregateModel
	Name                 string                `gorm:"type:varchar(100);not null;uniqueIndex"`
	CompanyID            uuid.UUID             `gorm:"type:uuid;not null;index"`
	CompanyName          string                `gorm:"type:varchar(200);not null"`
	Disabled             bool                  `gorm:"not null;default:false"`
	CashMethod           string                `gorm:"type:varchar(100);not null;default:''"`
	PaymentMethods       []PaymentMethodModel  `gorm:"foreignKey:ProfileID;references:ID"`
	Users                []AuthorizedUserModel `gorm:"foreignKey:ProfileID;references:ID"`
	OpeningWindowEnabled bool                  `gorm:"not null;default:false"`
	OpeningWindowStart   string                `gorm:"type:varchar(20);not null;default:''"`
	OpeningWindowEnd     string                `gorm:"type:varchar(20);not null;default:''"`
	ClosingWindowEnabled bool                  `gorm:"not null;default:false"`
	ClosingWindowStart   string                `gorm:"type:varchar(20);not null;default:''"`
	ClosingWindowEnd     string                `gorm:"type:varchar(20);not null;default:''"`
	AutoDeleteDrafts     bool                  `gorm:"not null;default:false"`
	HideExpectedAmounts  bool                  `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "pos_profiles"
}

// ToDomain converts the persistence model to a domain Profile entity.
func (m *ProfileModel) ToDomain() *profile.Profile {
	p := &profile.Profile{
		BaseAggregateRoot:    m.ToDomainAggregateRoot(),
		Name:                 m.Name,
		CompanyID:            m.CompanyID,
		CompanyName:          m.CompanyName,
		Disabled:             m.Disabled,
		CashMethod:           m.CashMethod,
		OpeningWindowEnabled: m.OpeningWindowEnabled,
		OpeningWindowStart:   m.OpeningWindowStart,
		OpeningWindowEnd:     m.OpeningWindowEnd,
		ClosingWindowEnabled: m.ClosingWindowEnabled,
		ClosingWindowStart:   m.ClosingWindowStart,
		ClosingWindowEnd:     m.ClosingWindowEnd,
		AutoDeleteDrafts:     m.AutoDeleteDrafts,
		HideExpectedAmounts:  m.HideExpectedAmounts,
		PaymentMethods:       make([]profile.PaymentMethod, len(m.PaymentMethods)),
		Users:                make([]profile.AuthorizedUser, len(m.Users)),
	}
	for i, pm := range m.PaymentMethods {
		p.PaymentMethods[i] = *pm.ToDomain()
	}
	for i, u := range m.Users {
		p.Users[i] = *u.ToDomain()
	}
	return p
}

// FromDomain populates the persistence model from a domain Profile entity.
func (m *ProfileModel) FromDomain(p *profile.Profile) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.CompanyID = p.CompanyID
	m.CompanyName = p.CompanyName
	m.Disabled = p.Disabled
	m.CashMethod = p.CashMethod
	m.OpeningWindowEnabled = p.OpeningWindowEnabled
	m.OpeningWindowStart = p.OpeningWindowStart
	m.OpeningWindowEnd = p.OpeningWindowEnd
	m.ClosingWindowEnabled = p.ClosingWindowEnabled
	m.ClosingWindowStart = p.ClosingWindowStart
	m.ClosingWindowEnd = p.ClosingWindowEnd
	m.AutoDeleteDrafts = p.AutoDeleteDrafts
	m.HideExpectedAmounts = p.HideExpectedAmounts
	m.PaymentMethods = make([]PaymentMethodModel, len(p.PaymentMethods))
	for i := range p.PaymentMethods {
		m.PaymentMethods[i] = *PaymentMethodModelFromDomain(&p.PaymentMethods[i])
	}
	m.Users = make([]AuthorizedUserModel, len(p.Users))
	for i := range p.Users {
		m.Users[i] = *AuthorizedUserModelFromDomain(&p.Users[i])
	}
}

// ProfileModelFromDomain creates a new persistence model from a domain Profile entity.
func ProfileModelFromDomain(p *profile.Profile) *ProfileModel {
	m := &ProfileModel{}
	m.FromDomain(p)
	return m
}

// PaymentMethodModel is the persistence model for a profile payment method.
type PaymentMethodModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_profile_method,priority:1"`
	Method    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_profile_method,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentMethodModel) TableName() string {
	return "pos_profile_payment_methods"
}

// ToDomain converts the persistence model to a domain PaymentMethod entity.
func (m *PaymentMethodModel) ToDomain() *profile.PaymentMethod {
	return &profile.PaymentMethod{
		ID:        m.ID,
		ProfileID: m.ProfileID,
		Method:    m.Method,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PaymentMethodModelFromDomain creates a new persistence model from a domain PaymentMethod entity.
func PaymentMethodModelFromDomain(pm *profile.PaymentMethod) *PaymentMethodModel {
	return &PaymentMethodModel{
		ID:        pm.ID,
		ProfileID: pm.ProfileID,
		Method:    pm.Method,
		CreatedAt: pm.CreatedAt,
		UpdatedAt: pm.UpdatedAt,
	}
}

// AuthorizedUserModel is the persistence model for a profile cashier grant.
type AuthorizedUserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_profile_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_profile_user,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AuthorizedUserModel) TableName() string {
	return "pos_profile_users"
}

// ToDomain converts the persistence model to a domain AuthorizedUser entity.
func (m *AuthorizedUserModel) ToDomain() *profile.AuthorizedUser {
	return &profile.AuthorizedUser{
		ID:        m.ID,
		ProfileID: m.ProfileID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

// AuthorizedUserModelFromDomain creates a new persistence model from a domain AuthorizedUser entity.
func AuthorizedUserModelFromDomain(u *profile.AuthorizedUser) *AuthorizedUserModel {
	return &AuthorizedUserModel{
		ID:        u.ID,
		ProfileID: u.ProfileID,
		UserID:    u.UserID,
		CreatedAt: u.CreatedAt,
	}
}
