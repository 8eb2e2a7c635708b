package model

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// swagger:model User
type User struct {
	UUIDBase
	Email         string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"size:100;not null" json:"-"`
	FirstName     string     `gorm:"size:50;not null" json:"firstName"`
	LastName      string     `gorm:"size:50;not null" json:"lastName"`
	Role          UserRole   `gorm:"size:20;default:'user'" json:"role"`
	Status        UserStatus `gorm:"size:20;default:'active'" json:"status"`
	EmailVerified bool       `gorm:"default:false" json:"emailVerified"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
