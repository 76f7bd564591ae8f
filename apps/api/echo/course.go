package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewisehub/backend/core"
	"github.com/codewisehub/backend/core/course"
	"github.com/codewisehub/backend/core/user"
)

type courseApi struct {
	svc      course.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, svc course.Service, validate *validator.Validate) {
	api := courseApi{svc: svc, validate: validate}

	cg := g.Group("/courses", authedMiddleware())
	cg.GET("", api.query)
	cg.POST("", api.create, roleMiddleware(user.RoleAdmin))
	cg.GET("/:courseId/lessons", api.queryLessons)

	g.GET("/lessons/:id", api.retrieveLesson, authedMiddleware())
}

// Handlers

// query lists published courses in the caller's market.
func (api *courseApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	filter := course.QueryFilter{
		Market:   usr.Market,
		AgeGroup: core.CleanString(ctx.QueryParam("ageGroup"), true /* lower */),
	}
	courses, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) queryLessons(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	courseID := ctx.Param("courseId")

	if _, err := api.svc.GetByID(rctx, courseID); err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course by ID")
	}

	lessons, err := api.svc.LessonsByCourse(rctx, courseID)
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []course.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *courseApi) retrieveLesson(ctx echo.Context) error {
	lsn, err := api.svc.GetLesson(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == course.ErrLessonNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding lesson by ID")
	}
	return ctx.JSON(http.StatusOK, lsn)
}
