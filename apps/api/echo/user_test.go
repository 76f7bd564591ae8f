package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/codewisehub/backend/core/user"
	testutil "github.com/codewisehub/backend/tests"
)

func Test_authApi_signup(t *testing.T) {
	env := setup(t)

	body := marshallObj(t, map[string]string{
		"email":     "awe@test.cd",
		"password":  "tr0ub4dor&3",
		"firstName": "Hello",
		"lastName":  "There",
		"market":    "us",
	})
	req, rec := newRequest(http.MethodPost, "/api/auth/signup", body)
	env.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if resp.Message != "User created successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.User.ID == "" {
		t.Error("user ID not set")
	}
	if resp.User.Email != "awe@test.cd" {
		t.Errorf("email = %q", resp.User.Email)
	}
	if resp.User.Role != user.RoleStudent {
		t.Errorf("role = %q; want default %q", resp.User.Role, user.RoleStudent)
	}
	if strings.Contains(strings.ToLower(rec.Body.String()), "password") {
		t.Errorf("password material leaked in response: %s", rec.Body.String())
	}

	// a session is established right away
	cookies := rec.Result().Cookies()
	req, rec = newSessionRequest(http.MethodGet, "/api/auth/user", cookies)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("auth/user failed: code = %v", rec.Code)
	}
	var authed user.User
	if err := json.Unmarshal(rec.Body.Bytes(), &authed); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if authed.ID != resp.User.ID {
		t.Errorf("session user = %q; want %q", authed.ID, resp.User.ID)
	}
}

func Test_authApi_signup_validation(t *testing.T) {
	env := setup(t)

	tests := []httpTest{
		{
			name:     "empty body",
			body:     []byte("{}"),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"email":     "this field is required",
				"password":  "this field is required",
				"firstName": "this field is required",
				"lastName":  "this field is required",
			}),
		},
		{
			name: "invalid email",
			body: marshallObj(t, map[string]string{
				"email": "lol", "password": "tr0ub4dor&3", "firstName": "Hello", "lastName": "There",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "invalid role",
			body: marshallObj(t, map[string]string{
				"email": "awe@test.cd", "password": "tr0ub4dor&3",
				"firstName": "Hello", "lastName": "There", "role": "overlord",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"role": "unknown role"}),
		},
		{
			name: "password too short",
			body: marshallObj(t, map[string]string{
				"email": "awe@test.cd", "password": "sh0rt!", "firstName": "Hello", "lastName": "There",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"password": "password must contain at least 8 characters"}),
		},
		{
			name: "password all numeric",
			body: marshallObj(t, map[string]string{
				"email": "awe@test.cd", "password": "1234567890", "firstName": "Hello", "lastName": "There",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"password": "password cannot be entirely numeric"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/signup", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_signup_conflict(t *testing.T) {
	env := setup(t)

	testutil.CreateUser(t, env.usrRepo, "awe@test.cd", "Hello", "There", "tr0ub4dor&3", user.RoleStudent, "us")

	wantData := marshallObj(t, map[string]string{"email": "a user with this email already exists"})

	// rejection is idempotent: the payload differences do not matter
	bodies := [][]byte{
		marshallObj(t, map[string]string{
			"email": "awe@test.cd", "password": "tr0ub4dor&3", "firstName": "Hello", "lastName": "There",
		}),
		marshallObj(t, map[string]string{
			"email": "awe@test.cd", "password": "c0rrecth0rse!", "firstName": "Other", "lastName": "Name", "role": "teacher",
		}),
	}
	for _, body := range bodies {
		req, rec := newRequest(http.MethodPost, "/api/auth/signup", body)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: wantData}, rec)
	}
}

func Test_authApi_signin(t *testing.T) {
	env := setup(t)

	usr := testutil.CreateUser(t, env.usrRepo, "awe@test.cd", "Hello", "There", "tr0ub4dor&3", user.RoleStudent, "us")

	body := marshallObj(t, map[string]string{"email": "awe@test.cd", "password": "tr0ub4dor&3"})
	req, rec := newRequest(http.MethodPost, "/api/auth/signin", body)
	env.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("signin failed: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if resp.User.ID != usr.ID {
		t.Errorf("user = %q; want %q", resp.User.ID, usr.ID)
	}
	if strings.Contains(strings.ToLower(rec.Body.String()), "password") {
		t.Errorf("password material leaked in response: %s", rec.Body.String())
	}
}

// unknown email and wrong password must be indistinguishable on the wire.
func Test_authApi_signin_uniformFailure(t *testing.T) {
	env := setup(t)

	testutil.CreateUser(t, env.usrRepo, "awe@test.cd", "Hello", "There", "tr0ub4dor&3", user.RoleStudent, "us")

	unknownBody := marshallObj(t, map[string]string{"email": "nope@test.cd", "password": "tr0ub4dor&3"})
	req, recUnknown := newRequest(http.MethodPost, "/api/auth/signin", unknownBody)
	env.app.ServeHTTP(recUnknown, req)

	wrongPwdBody := marshallObj(t, map[string]string{"email": "awe@test.cd", "password": "wr0ngpwd!!"})
	req, recWrongPwd := newRequest(http.MethodPost, "/api/auth/signin", wrongPwdBody)
	env.app.ServeHTTP(recWrongPwd, req)

	if recUnknown.Code != http.StatusUnauthorized || recWrongPwd.Code != http.StatusUnauthorized {
		t.Fatalf("codes = %v, %v; want both 401", recUnknown.Code, recWrongPwd.Code)
	}
	if !bytes.Equal(recUnknown.Body.Bytes(), recWrongPwd.Body.Bytes()) {
		t.Errorf("bodies differ: %q vs %q", recUnknown.Body.String(), recWrongPwd.Body.String())
	}
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusUnauthorized,
		wantData: marshallObj(t, httpErr{Message: "invalid email or password"}),
	}, recUnknown)
}

func Test_authApi_logout(t *testing.T) {
	env := setup(t)

	testutil.CreateUser(t, env.usrRepo, "awe@test.cd", "Hello", "There", "tr0ub4dor&3", user.RoleStudent, "us")
	cookies := env.signin(t, "awe@test.cd", "tr0ub4dor&3")

	req, rec := newSessionRequest(http.MethodPost, "/api/auth/logout", cookies)
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marshallObj(t, httpErr{Message: "Logged out successfully"}),
	}, rec)

	// the session cookie is expired
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == env.conf.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie was not expired")
	}

	// the replacement cookie no longer authenticates
	req, rec = newSessionRequest(http.MethodGet, "/api/auth/user", rec.Result().Cookies())
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte("null")}, rec)
}

func Test_authApi_authUser(t *testing.T) {
	env := setup(t)

	usr := testutil.CreateUser(t, env.usrRepo, "awe@test.cd", "Hello", "There", "tr0ub4dor&3", user.RoleStudent, "us")

	t.Run("anonymous gets null", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/auth/user")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte("null")}, rec)
	})

	t.Run("session identity", func(t *testing.T) {
		cookies := env.signin(t, "awe@test.cd", "tr0ub4dor&3")
		req, rec := newSessionRequest(http.MethodGet, "/api/auth/user", cookies)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, usr)}, rec)
	})

	t.Run("bearer identity", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/auth/user", env.getToken(t, usr))
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("auth/user failed: code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var resolved user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &resolved); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		// a claims login refreshes the claim-backed fields, so only compare those
		if resolved.ID != usr.ID || resolved.Email != usr.Email || resolved.Market != usr.Market {
			t.Errorf("resolved = %+v; want %+v", resolved, usr)
		}
	})

	t.Run("bearer with wrong issuer is anonymous", func(t *testing.T) {
		claims := GetUserClaims(env.conf, usr)
		claims.Issuer = "https://evil.test"
		token, err := GenerateToken(env.conf, claims)
		if err != nil {
			t.Fatalf("GenerateToken() failed: %v", err)
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/auth/user", token)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte("null")}, rec)
	})
}

// the first identity-provider login creates the local account from the claims.
func Test_identity_firstLoginSync(t *testing.T) {
	env := setup(t)

	ext := user.User{
		ID:        uuid.New().String(),
		Email:     "idp@test.cd",
		FirstName: "Ext",
		LastName:  "Ernal",
		Market:    "eu",
	}
	req, rec := newAuthRequest(http.MethodGet, "/api/auth/user", env.getToken(t, ext))
	env.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("auth/user failed: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var usr user.User
	if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if usr.ID != ext.ID {
		t.Errorf("ID = %q; want %q", usr.ID, ext.ID)
	}
	if usr.Email != ext.Email || usr.Market != ext.Market {
		t.Errorf("claim-backed fields not synced: %+v", usr)
	}
	if usr.Role != user.RoleStudent {
		t.Errorf("role = %q; want default %q", usr.Role, user.RoleStudent)
	}

	// the row is persisted
	if _, err := env.usrRepo.GetUserByID(req.Context(), ext.ID); err != nil {
		t.Errorf("GetUserByID() failed: %v", err)
	}
}
