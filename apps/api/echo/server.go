package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/codewisehub/backend/core"
	"github.com/codewisehub/backend/core/achievement"
	"github.com/codewisehub/backend/core/course"
	"github.com/codewisehub/backend/core/progress"
	"github.com/codewisehub/backend/core/project"
	"github.com/codewisehub/backend/core/roster"
	"github.com/codewisehub/backend/core/user"
)

type (
	Options struct {
		Addr           string
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool

		UserSvc        user.Service
		CourseSvc      course.Service
		ProgressSvc    progress.Service
		ProjectSvc     project.Service
		AchievementSvc achievement.Service
		RosterSvc      roster.Service
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		opts       *Options
		app        *echo.Echo
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:       opts,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", home)

	idn := newIdentity(conf, s.opts.UserSvc)
	api := s.app.Group("/api", idn.middleware())

	registerAuthAPI(api, idn, s.opts.UserSvc, s.opts.Validate)
	registerCourseAPI(api, s.opts.CourseSvc, s.opts.Validate)
	registerProgressAPI(api, s.opts.ProgressSvc, s.opts.Validate)
	registerProjectAPI(api, s.opts.ProjectSvc, s.opts.Validate)
	registerAchievementAPI(api, s.opts.AchievementSvc)
	registerRosterAPI(api, s.opts.RosterSvc)
}

// signalShutdown is handed to the error handler so an integrity error can
// bring the server down gracefully.
func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) Start() {
	if err := s.app.Start(s.opts.Addr); err != nil && err != http.ErrServerClosed {
		s.errCh <- err
	}
}

func (s *server) Errors() <-chan error {
	return s.errCh
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownCh
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to CodewiseHub API!")
}
