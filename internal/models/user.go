package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account record keyed by the identity provider uid.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UID      string             `bson:"uid" json:"uid"`
	Email    string             `bson:"email" json:"email"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role     UserRole           `bson:"role,omitempty" json:"role,omitempty"`

	// Profile fields, editable by the owner
	Location   string `bson:"location" json:"location"`
	BloodGroup string `bson:"bloodGroup" json:"bloodGroup"`
	Address    string `bson:"address" json:"address"`

	LastLogIn   time.Time `bson:"last_log_in,omitempty" json:"last_log_in,omitempty"`
	LastUpdated time.Time `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
}

// UserRole gates access to role-scoped endpoints
type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAgent      UserRole = "agent"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super-admin"
	RoleFraud      UserRole = "fraud"
)

// RoleOrDefault returns the stored role, defaulting to RoleUser
func (u *User) RoleOrDefault() UserRole {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}
