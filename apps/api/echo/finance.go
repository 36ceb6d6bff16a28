package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abovethehill/churchadmin/core"
	"github.com/abovethehill/churchadmin/core/finance"
)

type financeApi struct {
	service *finance.Service
}

func registerFinanceAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *finance.Service) {
	api := financeApi{service: svc}

	fg := g.Group("/finance", jwt, admin)
	fg.GET("", api.financeQuery)
	fg.POST("", api.financeCreate)
	fg.GET("/summary", api.financeSummary) // register before /:id
	fg.PUT("/:id", api.financeUpdate)
	fg.DELETE("/:id", api.financeDelete)
	fg.POST("/:id/send", api.financeSendReport)
}

func (api *financeApi) financeQuery(ctx echo.Context) error {
	var filter finance.Filter
	if date := ctx.QueryParam("date"); date != "" {
		parsed, err := core.ParseDate(date)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date"})
		}
		filter.Date = parsed
	}

	txs, err := api.service.Query(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, txs)
}

func (api *financeApi) financeCreate(ctx echo.Context) error {
	data := new(finance.NewTransaction)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	tx, err := api.service.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusCreated, tx)
}

func (api *financeApi) financeSummary(ctx echo.Context) error {
	summary, err := api.service.Summary(ctx.Request().Context())
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, summary)
}

func (api *financeApi) financeUpdate(ctx echo.Context) error {
	id, err := pathObjectID(ctx, finance.ErrNotFound)
	if err != nil {
		return err
	}
	data := new(finance.UpdateTransaction)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	tx, err := api.service.Update(ctx.Request().Context(), id, *data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, tx)
}

func (api *financeApi) financeDelete(ctx echo.Context) error {
	id, err := pathObjectID(ctx, finance.ErrNotFound)
	if err != nil {
		return err
	}
	if err := api.service.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(ctx, http.StatusOK, "Finance record deleted successfully")
}

func (api *financeApi) financeSendReport(ctx echo.Context) error {
	id, err := pathObjectID(ctx, finance.ErrNotFound)
	if err != nil {
		return err
	}
	if _, err := api.service.SendReport(ctx.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(ctx, http.StatusOK, "Finance report sent successfully")
}
