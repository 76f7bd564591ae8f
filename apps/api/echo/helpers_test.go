package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codewisehub/backend/core"
	"github.com/codewisehub/backend/core/achievement"
	"github.com/codewisehub/backend/core/course"
	"github.com/codewisehub/backend/core/progress"
	"github.com/codewisehub/backend/core/project"
	"github.com/codewisehub/backend/core/roster"
	"github.com/codewisehub/backend/core/user"
	emailsvc "github.com/codewisehub/backend/services/email"
	dummydb "github.com/codewisehub/backend/storage/database/dummy"
)

var (
	errAuthRequired = httpErr{Message: "authentication required"}
	errForbidden    = httpErr{Message: "permission denied"}
	errNotFound     = httpErr{Message: "not found"}
)

type testEnv struct {
	app  Server
	conf *core.Config

	usrRepo user.Repository
	crsRepo course.Repository
	prgRepo progress.Repository
	prjRepo project.Repository
	achRepo achievement.Repository
	rstRepo roster.Repository
}

func testConfig() *core.Config {
	return &core.Config{
		AppName:           "CodewiseHub",
		Env:               "TEST",
		TestMode:          true,
		SecretKey:         "woo-hoo-so-secret",
		SessionCookieName: "connect.sid",
		SessionMaxAge:     24 * time.Hour,
		DefaultFromEmail:  "noreply@localhost",
		Server: core.ServerConfig{
			IdentityIssuer: "https://identity.test",
			IdentitySecret: "idp-secret",
		},
	}
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := testConfig()
	db := dummydb.NewDB()

	usrRepo := dummydb.NewUserRepository(db)
	crsRepo := dummydb.NewCourseRepository(db)
	prgRepo := dummydb.NewProgressRepository(db)
	prjRepo := dummydb.NewProjectRepository(db)
	achRepo := dummydb.NewAchievementRepository(db)
	rstRepo := dummydb.NewRosterRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	app := NewServer(&Options{
		Conf:           conf,
		Logger:         nopLogger{},
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
		UserSvc:        user.NewServiceMock(usrRepo, mailSvc),
		CourseSvc:      course.NewService(crsRepo),
		ProgressSvc:    progress.NewService(prgRepo),
		ProjectSvc:     project.NewService(prjRepo),
		AchievementSvc: achievement.NewService(achRepo),
		RosterSvc:      roster.NewService(rstRepo),
	})

	return &testEnv{
		app:     app,
		conf:    conf,
		usrRepo: usrRepo,
		crsRepo: crsRepo,
		prgRepo: prgRepo,
		prjRepo: prjRepo,
		achRepo: achRepo,
		rstRepo: rstRepo,
	}
}

type httpErr struct {
	Message string `json:"message"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func newSessionRequest(method, path string, cookies []*http.Cookie, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	req, rec := newRequest(method, path, data...)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req, rec
}

// getToken forges the bearer token an identity provider would issue for usr.
func (env *testEnv) getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(env.conf, GetUserClaims(env.conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

// signin signs usr in via the API and returns the session cookies.
func (env *testEnv) signin(t *testing.T, email, pwd string) []*http.Cookie {
	t.Helper()
	body := marshallObj(t, map[string]string{"email": email, "password": pwd})
	req, rec := newRequest(http.MethodPost, "/api/auth/signin", body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signin() failed: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	return rec.Result().Cookies()
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
