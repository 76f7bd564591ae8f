package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/codewisehub/backend/core/achievement"
	"github.com/codewisehub/backend/core/user"
	testutil "github.com/codewisehub/backend/tests"
)

func Test_achievementApi_query(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "kid@test.cd", "Kid", "Doe", "tr0ub4dor&3", user.RoleStudent, "us")
	other := testutil.CreateUser(t, env.usrRepo, "oth@test.cd", "Oth", "Doe", "tr0ub4dor&3", user.RoleStudent, "us")

	firstSteps := testutil.CreateAchievement(t, env.achRepo, "First Steps")
	loopMaster := testutil.CreateAchievement(t, env.achRepo, "Loop Master")
	unearned := testutil.CreateAchievement(t, env.achRepo, "Untouched")

	earlier := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	later := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	testutil.Award(t, env.achRepo, student.ID, firstSteps.ID, earlier)
	testutil.Award(t, env.achRepo, student.ID, loopMaster.ID, later)
	testutil.Award(t, env.achRepo, student.ID, uuid.New().String(), later) // orphan join row
	testutil.Award(t, env.achRepo, other.ID, unearned.ID, later)

	tests := []httpTest{
		{
			name:     "anonymous",
			wantCode: http.StatusUnauthorized,
			wantData: marshallObj(t, errAuthRequired),
		},
		{
			name:     "earned only, newest first, orphans dropped",
			token:    env.getToken(t, student),
			wantCode: http.StatusOK,
			wantData: marshallObj(t, []achievement.Earned{
				{Achievement: loopMaster, EarnedAt: later},
				{Achievement: firstSteps, EarnedAt: earlier},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/achievements", tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
