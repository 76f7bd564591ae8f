package echoapi

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core"
	"github.com/codewisehub/backend/core/user"
)

const (
	contextUserKey = "user"

	sessionUserIDKey = "userID"
	sessionAuthedKey = "authenticated"
)

// Claims represents the identity assertions transmitted via an
// identity-provider bearer token. The subject claim is the user ID.
type Claims struct {
	jwt.StandardClaims
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Market    string `json:"market,omitempty"`
}

// identity resolves the caller for each request: the local cookie session is
// consulted first, then an identity-provider bearer token. First match wins.
type identity struct {
	conf   *core.Config
	store  *sessions.CookieStore
	usrSvc user.Service
}

func newIdentity(conf *core.Config, usrSvc user.Service) *identity {
	store := sessions.NewCookieStore([]byte(conf.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(conf.SessionMaxAge.Seconds()),
		HttpOnly: true,
	}
	return &identity{conf: conf, store: store, usrSvc: usrSvc}
}

// middleware runs the resolver chain once per request and stores the resolved
// user in the echo.Context. Anonymous requests proceed; authed routes are
// gated downstream by authedMiddleware / roleMiddleware.
func (idn *identity) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if usr, ok := idn.resolveSession(ctx); ok {
				ctx.Set(contextUserKey, usr)
			} else if usr, ok = idn.resolveClaims(ctx); ok {
				ctx.Set(contextUserKey, usr)
			}
			return next(ctx)
		}
	}
}

func (idn *identity) resolveSession(ctx echo.Context) (user.User, bool) {
	sess, err := idn.store.Get(ctx.Request(), idn.conf.SessionCookieName)
	if err != nil {
		return user.User{}, false
	}
	authed, _ := sess.Values[sessionAuthedKey].(bool)
	id, _ := sess.Values[sessionUserIDKey].(string)
	if !authed || id == "" {
		return user.User{}, false
	}

	usr, err := idn.usrSvc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return user.User{}, false
	}
	return usr, true
}

func (idn *identity) resolveClaims(ctx echo.Context) (user.User, bool) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return user.User{}, false
	}

	claims := new(Claims)
	token, err := jwt.ParseWithClaims(
		strings.TrimPrefix(header, "Bearer "),
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(idn.conf.Server.IdentitySecret), nil
		},
	)
	if err != nil || !token.Valid {
		return user.User{}, false
	}
	if !claims.VerifyIssuer(idn.conf.Server.IdentityIssuer, true) {
		return user.User{}, false
	}

	// upsert from claims: first login creates the row, later logins refresh
	// the claim-backed fields
	usr, err := idn.usrSvc.SyncExternal(ctx.Request().Context(), user.ExternalAccount{
		ID:        claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Market:    claims.Market,
	})
	if err != nil {
		return user.User{}, false
	}
	return usr, true
}

func (idn *identity) establishSession(ctx echo.Context, usr user.User) error {
	sess, _ := idn.store.Get(ctx.Request(), idn.conf.SessionCookieName)
	sess.Values[sessionUserIDKey] = usr.ID
	sess.Values[sessionAuthedKey] = true
	return errors.Wrap(sess.Save(ctx.Request(), ctx.Response()), "saving session")
}

func (idn *identity) destroySession(ctx echo.Context) error {
	sess, _ := idn.store.Get(ctx.Request(), idn.conf.SessionCookieName)
	sess.Values = make(map[interface{}]interface{})
	sess.Options.MaxAge = -1 // expire the cookie
	return errors.Wrap(sess.Save(ctx.Request(), ctx.Response()), "saving session")
}

func getContextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}
	return user.User{}, errAuthenticationRequired
}

// GetUserClaims returns the Claims an identity provider would assert for usr.
func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.Server.IdentityIssuer,
			Subject:   usr.ID,
			ExpiresAt: now.Add(time.Hour).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email:     usr.Email,
		FirstName: usr.FirstName,
		LastName:  usr.LastName,
		Market:    usr.Market,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(conf.Server.IdentitySecret))
	return ss, errors.Wrap(err, "signing token")
}
