package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core"
)

const hashCost = 12

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		// UpsertUser inserts usr or, on ID conflict, overwrites all fields (last-write-wins).
		UpsertUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	Service interface {
		Register(ctx context.Context, nu NewUser) (User, error)
		Authenticate(ctx context.Context, creds Credentials) (User, error)
		SyncExternal(ctx context.Context, acct ExternalAccount) (User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		CheckUniqueness(ctx context.Context, email string, excludedUsers ...User) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService) Service {
	return &service{repo: repo, mailSvc: mailSvc}
}

func (svc *service) CheckUniqueness(ctx context.Context, email string, excludedUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, excludedUsers...); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) Register(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Email:     nu.Email,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
		Role:      nu.Role,
		Market:    nu.Market,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if usr.Role == "" {
		usr.Role = RoleStudent
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeMail(usr)
	return usr, nil
}

// Authenticate resolves local credentials to a User. Unknown email and wrong
// password are indistinguishable to the caller.
func (svc *service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

// SyncExternal upserts a User from identity-provider claims. The first login
// creates the record; later logins overwrite the claim-backed fields.
func (svc *service) SyncExternal(ctx context.Context, acct ExternalAccount) (User, error) {
	now := time.Now().UTC()
	usr, err := svc.repo.GetUserByID(ctx, acct.ID)
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			return User{}, errors.Wrap(err, "finding user by ID")
		}
		usr = User{
			ID:        acct.ID,
			Role:      RoleStudent,
			CreatedAt: now,
		}
	}
	if acct.Email != "" {
		usr.Email = core.CleanString(acct.Email, true /* lower */)
	}
	if acct.FirstName != "" {
		usr.FirstName = acct.FirstName
	}
	if acct.LastName != "" {
		usr.LastName = acct.LastName
	}
	if acct.Market != "" {
		usr.Market = acct.Market
	}
	usr.UpdatedAt = now
	return svc.repo.UpsertUser(ctx, usr)
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

var welcomeMailBody = "Hi %s,\n\n" +
	"Welcome to CodewiseHub! Your account is ready.\n" +
	"Sign in and pick your first course to start coding.\n"

func (svc *service) sendWelcomeMail(usr User) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.FullName(), Address: usr.Email}},
		Subject: "Welcome to CodewiseHub",
		BodyStr: fmt.Sprintf(welcomeMailBody, usr.FirstName),
	})
}

type serviceMock struct {
	service
}

// NewServiceMock behaves like the real service but is safe for tests.
func NewServiceMock(repo Repository, mailSvc core.EmailService) Service {
	return &serviceMock{service: service{repo: repo, mailSvc: mailSvc}}
}
