package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/codewisehub/backend/core"
	"github.com/codewisehub/backend/core/user"
	emailsvc "github.com/codewisehub/backend/services/email"
	dummydb "github.com/codewisehub/backend/storage/database/dummy"
)

func setup(t *testing.T) (user.Service, user.Repository) {
	t.Helper()
	conf := &core.Config{AppName: "CodewiseHub", DefaultFromEmail: "noreply@localhost"}
	repo := dummydb.NewUserRepository(dummydb.NewDB())
	return user.NewServiceMock(repo, emailsvc.NewConsoleServiceMock(conf)), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	sent := len(emailsvc.SentMessages)
	usr, err := svc.Register(ctx, user.NewUser{
		Email:     "awe@test.cd",
		Password:  "tr0ub4dor&3",
		FirstName: "Hello",
		LastName:  "There",
		Market:    "us",
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, user.RoleStudent, usr.Role) // default
	assert.NoError(t, usr.CheckPassword("tr0ub4dor&3"))

	// a welcome email goes out
	if len(emailsvc.SentMessages) != sent+1 {
		t.Fatalf("sent messages = %d; want %d", len(emailsvc.SentMessages), sent+1)
	}
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	assert.Equal(t, "Welcome to CodewiseHub", msg.Subject)
	assert.Equal(t, "awe@test.cd", msg.To[0].Address)
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, user.NewUser{
		Email: "awe@test.cd", Password: "tr0ub4dor&3", FirstName: "Hello", LastName: "There",
	}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	usr, err := svc.Authenticate(ctx, user.Credentials{Email: "awe@test.cd", Password: "tr0ub4dor&3"})
	assert.NoError(t, err)
	assert.Equal(t, "awe@test.cd", usr.Email)

	// unknown email and wrong password yield the very same error value
	_, errUnknown := svc.Authenticate(ctx, user.Credentials{Email: "nope@test.cd", Password: "tr0ub4dor&3"})
	_, errWrongPwd := svc.Authenticate(ctx, user.Credentials{Email: "awe@test.cd", Password: "wr0ngpwd!!"})
	assert.Equal(t, user.ErrInvalidCredentials, errUnknown)
	assert.Equal(t, user.ErrInvalidCredentials, errWrongPwd)
}

func TestService_SyncExternal(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	acct := user.ExternalAccount{
		ID:        uuid.New().String(),
		Email:     "idp@test.cd",
		FirstName: "Ext",
		LastName:  "Ernal",
		Market:    "eu",
	}

	// first login creates the row
	usr, err := svc.SyncExternal(ctx, acct)
	if err != nil {
		t.Fatalf("SyncExternal() failed: %v", err)
	}
	assert.Equal(t, acct.ID, usr.ID)
	assert.Equal(t, user.RoleStudent, usr.Role)
	assert.False(t, usr.PasswordHash.Valid) // no local password

	// later logins refresh the claim-backed fields, last write wins
	acct.FirstName = "Renamed"
	usr, err = svc.SyncExternal(ctx, acct)
	if err != nil {
		t.Fatalf("SyncExternal() failed: %v", err)
	}
	assert.Equal(t, "Renamed", usr.FirstName)

	stored, err := repo.GetUserByID(ctx, acct.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", stored.FirstName)
}

func TestService_CheckUniqueness(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	assert.NoError(t, svc.CheckUniqueness(ctx, "awe@test.cd"))

	if _, err := svc.Register(ctx, user.NewUser{
		Email: "awe@test.cd", Password: "tr0ub4dor&3", FirstName: "Hello", LastName: "There",
	}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	err := svc.CheckUniqueness(ctx, "awe@test.cd")
	if err == nil {
		t.Fatal("expected a validation error")
	}
	var vErr *core.ValidationError
	if !assert.ErrorAs(t, err, &vErr) {
		return
	}
	assert.Equal(t, "email", vErr.Fields[0].Field)
}
