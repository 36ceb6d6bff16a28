package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
	"github.com/abovethehill/churchadmin/core/attendance"
)

type attendanceApi struct {
	service *attendance.Service
}

func registerAttendanceAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *attendance.Service) {
	api := attendanceApi{service: svc}

	ag := g.Group("/attendance", jwt, admin)
	ag.GET("", api.attendanceQuery)
	ag.POST("", api.attendanceCreate)
	ag.GET("/summary", api.attendanceSummary) // register before /:id
	ag.PUT("/:id", api.attendanceUpdate)
	ag.DELETE("/:id", api.attendanceDelete)
	ag.POST("/:id/send", api.attendanceSendReport)
}

func (api *attendanceApi) attendanceQuery(ctx echo.Context) error {
	var filter attendance.Filter
	if date := ctx.QueryParam("date"); date != "" {
		parsed, err := core.ParseDate(date)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date"})
		}
		filter.Date = parsed
	}

	records, err := api.service.Query(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, records)
}

func (api *attendanceApi) attendanceCreate(ctx echo.Context) error {
	data := new(attendance.NewAttendance)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	att, err := api.service.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusCreated, att)
}

func (api *attendanceApi) attendanceSummary(ctx echo.Context) error {
	summary, err := api.service.Summary(ctx.Request().Context())
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, summary)
}

func (api *attendanceApi) attendanceUpdate(ctx echo.Context) error {
	id, err := pathObjectID(ctx, attendance.ErrNotFound)
	if err != nil {
		return err
	}
	data := new(attendance.UpdateAttendance)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	att, err := api.service.Update(ctx.Request().Context(), id, *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, att)
}

func (api *attendanceApi) attendanceDelete(ctx echo.Context) error {
	id, err := pathObjectID(ctx, attendance.ErrNotFound)
	if err != nil {
		return err
	}
	if err := api.service.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(ctx, http.StatusOK, "Attendance record deleted successfully")
}

func (api *attendanceApi) attendanceSendReport(ctx echo.Context) error {
	id, err := pathObjectID(ctx, attendance.ErrNotFound)
	if err != nil {
		return err
	}
	if _, err := api.service.SendReport(ctx.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(ctx, http.StatusOK, "Attendance report sent successfully")
}

// pathObjectID parses the :id path param. A malformed ID is indistinguishable
// from an unknown one to the client, so it maps to the entity's not-found
// sentinel.
func pathObjectID(ctx echo.Context, notFound core.NotFoundError) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return id, nil
}
