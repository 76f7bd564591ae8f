package echoapi

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/codewisehub/backend/core/roster"
	"github.com/codewisehub/backend/core/user"
	testutil "github.com/codewisehub/backend/tests"
)

func Test_rosterApi_roleGating(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "kid@test.cd", "Kid", "Doe", "tr0ub4dor&3", user.RoleStudent, "us")
	teacher := testutil.CreateUser(t, env.usrRepo, "tea@test.cd", "Tea", "Doe", "tr0ub4dor&3", user.RoleTeacher, "us")
	parent := testutil.CreateUser(t, env.usrRepo, "par@test.cd", "Par", "Doe", "tr0ub4dor&3", user.RoleParent, "us")
	admin := testutil.CreateUser(t, env.usrRepo, "adm@test.cd", "Adm", "Doe", "tr0ub4dor&3", user.RoleAdmin, "us")

	paths := []string{"/api/teacher/students", "/api/teacher/certifications", "/api/parent/children"}
	allowed := map[string]user.User{
		"/api/teacher/students":       teacher,
		"/api/teacher/certifications": teacher,
		"/api/parent/children":        parent,
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			// anonymous
			req, rec := newRequest(http.MethodGet, path)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errAuthRequired)}, rec)

			// every non-matching role is rejected alike
			for _, usr := range []user.User{student, teacher, parent, admin} {
				req, rec := newAuthRequest(http.MethodGet, path, env.getToken(t, usr))
				env.app.ServeHTTP(rec, req)
				if usr.ID == allowed[path].ID {
					if rec.Code != http.StatusOK {
						t.Errorf("%s as %s: code = %v; want 200", path, usr.Role, rec.Code)
					}
					continue
				}
				checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marshallObj(t, errForbidden)}, rec)
			}
		})
	}
}

func Test_rosterApi_queryStudents(t *testing.T) {
	env := setup(t)

	teacher := testutil.CreateUser(t, env.usrRepo, "tea@test.cd", "Tea", "Doe", "tr0ub4dor&3", user.RoleTeacher, "us")
	zoe := testutil.CreateUser(t, env.usrRepo, "zoe@test.cd", "Zoe", "Doe", "tr0ub4dor&3", user.RoleStudent, "us")
	amy := testutil.CreateUser(t, env.usrRepo, "amy@test.cd", "Amy", "Doe", "tr0ub4dor&3", user.RoleStudent, "us")
	testutil.CreateUser(t, env.usrRepo, "oth@test.cd", "Oth", "Doe", "tr0ub4dor&3", user.RoleStudent, "us") // not enrolled

	testutil.Enroll(t, env.rstRepo, teacher.ID, zoe.ID)
	testutil.Enroll(t, env.rstRepo, teacher.ID, amy.ID)

	req, rec := newAuthRequest(http.MethodGet, "/api/teacher/students", env.getToken(t, teacher))
	env.app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marshallObj(t, []user.User{amy, zoe}), // name order
	}, rec)

	if strings.Contains(strings.ToLower(rec.Body.String()), "password") {
		t.Errorf("password material leaked in response: %s", rec.Body.String())
	}
}

func Test_rosterApi_queryChildren(t *testing.T) {
	env := setup(t)

	parent := testutil.CreateUser(t, env.usrRepo, "par@test.cd", "Par", "Doe", "tr0ub4dor&3", user.RoleParent, "us")
	kid := testutil.CreateUser(t, env.usrRepo, "kid@test.cd", "Kid", "Doe", "tr0ub4dor&3", user.RoleStudent, "us")
	testutil.CreateUser(t, env.usrRepo, "oth@test.cd", "Oth", "Doe", "tr0ub4dor&3", user.RoleStudent, "us") // not linked

	testutil.LinkParent(t, env.rstRepo, parent.ID, kid.ID)

	req, rec := newAuthRequest(http.MethodGet, "/api/parent/children", env.getToken(t, parent))
	env.app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marshallObj(t, []user.User{kid}),
	}, rec)
}

func Test_rosterApi_queryCertifications(t *testing.T) {
	env := setup(t)

	teacher := testutil.CreateUser(t, env.usrRepo, "tea@test.cd", "Tea", "Doe", "tr0ub4dor&3", user.RoleTeacher, "us")
	rival := testutil.CreateUser(t, env.usrRepo, "riv@test.cd", "Riv", "Doe", "tr0ub4dor&3", user.RoleTeacher, "us")

	older := testutil.CreateCertification(t, env.rstRepo, teacher.ID, "Scratch Educator", "MIT",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	newer := testutil.CreateCertification(t, env.rstRepo, teacher.ID, "Python Instructor", "",
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	testutil.CreateCertification(t, env.rstRepo, rival.ID, "Robotics Coach", "",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	req, rec := newAuthRequest(http.MethodGet, "/api/teacher/certifications", env.getToken(t, teacher))
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marshallObj(t, []roster.Certification{newer, older}), // newest first
	}, rec)
}
