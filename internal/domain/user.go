package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleStaff UserRole = "STAFF"
	RoleQAC   UserRole = "QUALITY_ASSURANCE_COORDINATOR"
	RoleQAM   UserRole = "QUALITY_ASSURANCE_MANAGER"
	RoleAdmin UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleStaff, RoleQAC, RoleQAM, RoleAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
	UserLocked   UserStatus = "LOCKED"
	UserDeleted  UserStatus = "DELETED"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"first_name"    json:"firstName"`
	LastName     string             `bson:"last_name"     json:"lastName"`
	Email        string             `bson:"email"         json:"email"`
	Avatar       string             `bson:"avatar"        json:"avatar"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Status       UserStatus         `bson:"status"        json:"status"`
	Role         UserRole           `bson:"role"          json:"role"`
	Department   primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
	Address      string             `bson:"address"       json:"address"`
	DOB          time.Time          `bson:"dob"           json:"dob"`
	PhoneNumber  string             `bson:"phone_number"  json:"phoneNumber"`
	Gender       string             `bson:"gender"        json:"gender"`
	// одноразовый код: активация аккаунта и сброс пароля используют одно поле
	Code        string             `bson:"code"          json:"-"`
	CodeExpires time.Time          `bson:"code_expires"  json:"-"`
	CreatedAt   time.Time          `bson:"created_at"    json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at"    json:"updatedAt"`
	UpdatedBy   primitive.ObjectID `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
}

// UserRef is the projection of a user embedded in read models.
// Password, code and codeExpires never leave the users collection.
type UserRef struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name"  json:"lastName"`
	Email     string             `bson:"email"      json:"email"`
	Avatar    string             `bson:"avatar"     json:"avatar"`
	Status    UserStatus         `bson:"status"     json:"status"`
	Role      UserRole           `bson:"role"       json:"role"`
}

func (u *User) Ref() UserRef {
	return UserRef{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Status:    u.Status,
		Role:      u.Role,
	}
}

func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

type ProfileUpdate struct {
	FirstName   string
	LastName    string
	Address     string
	DOB         time.Time
	PhoneNumber string
	Gender      string
}

