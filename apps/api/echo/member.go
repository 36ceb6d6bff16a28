package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abovethehill/churchadmin/core/member"
)

type memberApi struct {
	service *member.Service
}

func registerMemberAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *member.Service) {
	api := memberApi{service: svc}

	mg := g.Group("/members", jwt, admin)
	mg.GET("", api.memberQuery)
	mg.POST("", api.memberCreate)
	mg.GET("/:id", api.memberGet)
	mg.PUT("/:id", api.memberUpdate)
	mg.DELETE("/:id", api.memberDelete)
}

func (api *memberApi) memberQuery(ctx echo.Context) error {
	members, err := api.service.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, members)
}

func (api *memberApi) memberGet(ctx echo.Context) error {
	id, err := pathObjectID(ctx, member.ErrNotFound)
	if err != nil {
		return err
	}
	mbr, err := api.service.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, mbr)
}

func (api *memberApi) memberCreate(ctx echo.Context) error {
	data := new(member.NewMember)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	mbr, err := api.service.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusCreated, mbr)
}

func (api *memberApi) memberUpdate(ctx echo.Context) error {
	id, err := pathObjectID(ctx, member.ErrNotFound)
	if err != nil {
		return err
	}
	data := new(member.UpdateMember)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	mbr, err := api.service.Update(ctx.Request().Context(), id, *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, mbr)
}

func (api *memberApi) memberDelete(ctx echo.Context) error {
	id, err := pathObjectID(ctx, member.ErrNotFound)
	if err != nil {
		return err
	}
	if err := api.service.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(ctx, http.StatusOK, "Member deleted successfully")
}
