package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abovethehill/churchadmin/core/communication"
)

type announcementApi struct {
	service *communication.Service
}

func registerAnnouncementAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *communication.Service) {
	api := announcementApi{service: svc}

	ag := g.Group("/announcements", jwt, admin)
	ag.GET("", api.announcementQuery)
	ag.POST("", api.announcementCreate)
	ag.PUT("/:id", api.announcementUpdate)
	ag.DELETE("/:id", api.announcementDelete)
}

func (api *announcementApi) announcementQuery(ctx echo.Context) error {
	comms, err := api.service.QueryAnnouncements(ctx.Request().Context())
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, comms)
}

func (api *announcementApi) announcementCreate(ctx echo.Context) error {
	data := new(communication.NewAnnouncement)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	comm, err := api.service.CreateAnnouncement(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusCreated, comm)
}

func (api *announcementApi) announcementUpdate(ctx echo.Context) error {
	id, err := pathObjectID(ctx, communication.ErrNotFound)
	if err != nil {
		return err
	}
	data := new(communication.UpdateAnnouncement)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	comm, err := api.service.UpdateAnnouncement(ctx.Request().Context(), id, *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, comm)
}

func (api *announcementApi) announcementDelete(ctx echo.Context) error {
	id, err := pathObjectID(ctx, communication.ErrNotFound)
	if err != nil {
		return err
	}
	if err := api.service.DeleteAnnouncement(ctx.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(ctx, http.StatusOK, "Announcement deleted successfully")
}
