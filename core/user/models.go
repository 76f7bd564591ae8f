package user

import (
	"context"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/codewisehub/backend/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
	RoleAdmin   = "admin"
)

var AllRoles = []string{RoleStudent, RoleTeacher, RoleParent, RoleAdmin}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash null.Bytes `db:"password_hash" json:"-"` // absent for identity-provider accounts
	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	Role         string     `db:"role" json:"role"`
	Market       string     `db:"market" json:"market"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"` // UTC
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), hashCost)
	if err != nil {
		return err
	}
	u.PasswordHash = null.BytesFrom(hash)
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	if !u.PasswordHash.Valid {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword(u.PasswordHash.Bytes, []byte(pwd))
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsParent() bool  { return u.Role == RoleParent }
func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }

// NewUser contains information needed to sign a new User up.
type NewUser struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,pwdminlen,pwdnospace,pwdnotallnum,pwdtoosim"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role" validate:"omitempty,role"`
	Market    string `json:"market"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.Market = core.CleanString(nu.Market, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Email)
}

// Credentials is a local email/password sign-in request.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return validate.Struct(c)
}

// ExternalAccount is a pre-verified identity-provider assertion; its claims
// are consumed as opaque inputs.
type ExternalAccount struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Market    string
}

// RegisterValidators registers this package's custom validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)

	_ = validate.RegisterValidation(pwdMinLenTag, pwdMinLenValidation)
	core.RegisterCustomTranslation(validate, translator, pwdMinLenTag, pwdMinLenText)

	_ = validate.RegisterValidation(pwdNoSpaceTag, pwdNoSpaceValidation)
	core.RegisterCustomTranslation(validate, translator, pwdNoSpaceTag, pwdNoSpaceText)

	_ = validate.RegisterValidation(pwdNotAllNumTag, pwdNotAllNumValidation)
	core.RegisterCustomTranslation(validate, translator, pwdNotAllNumTag, pwdNotAllNumText)

	_ = validate.RegisterValidation(pwdAttrSimTag, pwdAttrSimValidation)
	core.RegisterCustomTranslation(validate, translator, pwdAttrSimTag, pwdAttrSimText)
}
