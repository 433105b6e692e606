package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/skillboost/core"
)

type Role string

// Roles
const (
	RoleUnset   Role = "unset" // identity without a role, or no identity at all
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

var AllRoles = []Role{RoleStudent, RoleTeacher, RoleAdmin}

func (r Role) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is an Identity: a user record keyed by email.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Photo     string    `json:"photo,omitempty"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// EffectiveRole returns the User's role, RoleUnset if none was ever set.
func (u User) EffectiveRole() Role {
	if u.Role == "" {
		return RoleUnset
	}
	return u.Role
}

// NewUser contains information needed to register a new User.
// Registration never grants a role: new users are students until promoted.
type NewUser struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo" validate:"omitempty,url"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanEmail(nu.Email)
	nu.Photo = core.CleanString(nu.Photo)
	return validate.Struct(nu)
}

// RegisterResult is the outcome of an idempotent registration.
// InsertedID is nil when a User with the same email already exists.
type RegisterResult struct {
	Acknowledged bool    `json:"acknowledged,omitempty"`
	InsertedID   *string `json:"insertedId"`
	Message      string  `json:"message,omitempty"`
}

func (r RegisterResult) AlreadyExists() bool {
	return r.InsertedID == nil
}

// Teacher request statuses
const (
	RequestStatusPending = "pending"
)

// TeacherRequest is a pending request from a User to become a teacher.
type TeacherRequest struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email"`
	Image      string    `json:"image,omitempty"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Experience string    `json:"experience"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"` // UTC
}

// NewTeacherRequest contains information needed to request the teacher role.
type NewTeacherRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"required,email"`
	Image      string `json:"image" validate:"omitempty,url"`
	Title      string `json:"title" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Experience string `json:"experience" validate:"required"`
}

func (nr *NewTeacherRequest) Validate(validate *validator.Validate) error {
	nr.Name = core.CleanString(nr.Name)
	nr.Email = core.CleanEmail(nr.Email)
	nr.Image = core.CleanString(nr.Image)
	nr.Title = core.CleanString(nr.Title)
	nr.Category = core.CleanString(nr.Category)
	nr.Experience = core.CleanString(nr.Experience)
	return validate.Struct(nr)
}
