package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/codewisehub/backend/apps/api/echo"
	"github.com/codewisehub/backend/core"
	"github.com/codewisehub/backend/core/achievement"
	"github.com/codewisehub/backend/core/course"
	"github.com/codewisehub/backend/core/progress"
	"github.com/codewisehub/backend/core/project"
	"github.com/codewisehub/backend/core/roster"
	"github.com/codewisehub/backend/core/user"
	emailsvc "github.com/codewisehub/backend/services/email"
	logsvc "github.com/codewisehub/backend/services/logger"
	"github.com/codewisehub/backend/storage/database"
	sqlxrepos "github.com/codewisehub/backend/storage/database/sqlx"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)
	crsSvc := course.NewService(sqlxrepos.NewCourseRepository(db))
	prgSvc := progress.NewService(sqlxrepos.NewProgressRepository(db))
	prjSvc := project.NewService(sqlxrepos.NewProjectRepository(db))
	achSvc := achievement.NewService(sqlxrepos.NewAchievementRepository(db))
	rstSvc := roster.NewService(sqlxrepos.NewRosterRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		&echoapi.Options{
			Addr:           fmt.Sprintf(":%d", conf.Server.Port),
			Conf:           conf,
			Logger:         logger,
			Validate:       validate,
			Translator:     translator,
			UserSvc:        usrSvc,
			CourseSvc:      crsSvc,
			ProgressSvc:    prgSvc,
			ProjectSvc:     prjSvc,
			AchievementSvc: achSvc,
			RosterSvc:      rstSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
