package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"warranty-console/internal/exports"
	"warranty-console/internal/services"
	"warranty-console/pkg/api"
	apperrors "warranty-console/pkg/errors"
	"warranty-console/pkg/listview"
	"warranty-console/pkg/utils"
)

// ListController exposes one view: its pages, counters, refresh and
// export.
type ListController[T any] struct {
	service   services.ListServiceInterface[T]
	filterLoc *time.Location
	logger    *zap.Logger
}

func NewListController[T any](
	service services.ListServiceInterface[T],
	filterLoc *time.Location,
	logger *zap.Logger,
) *ListController[T] {
	return &ListController[T]{
		service:   service,
		filterLoc: filterLoc,
		logger:    logger.Named(service.View().Name),
	}
}

func (c *ListController[T]) List(ctx echo.Context) error {
	q, err := c.parseQuery(ctx.QueryParams())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page, err := c.service.List(ctx.Request().Context(), q)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.writePage(ctx, page)
}

// parseQuery reads the list parameters and rejects a date range over a
// field that is not a timestamp of this view.
func (c *ListController[T]) parseQuery(params url.Values) (listview.Query, error) {
	q, err := utils.ParseListQuery(params, c.filterLoc)
	if err != nil {
		return q, err
	}
	if !q.Filter.Range.IsZero() && !c.service.View().Schema.IsDateField(q.Filter.Range.Field) {
		return q, apperrors.NewBadRequestError(fmt.Sprintf("date_field %q is not a date field", q.Filter.Range.Field))
	}
	return q, nil
}

func (c *ListController[T]) Refresh(ctx echo.Context) error {
	page, err := c.service.Refresh(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.writePage(ctx, page)
}

func (c *ListController[T]) writePage(ctx echo.Context, page *services.ListPage[T]) error {
	fresh := api.Freshness{Stale: page.Stale, Warning: page.Warning}
	if !page.FetchedAt.IsZero() {
		fresh.FetchedAt = page.FetchedAt.UTC().Format(time.RFC3339)
	}
	return api.SuccessList(ctx, c.service.View().ResourceKey, page.Result, fresh)
}

func (c *ListController[T]) Counts(ctx echo.Context) error {
	facet := ctx.QueryParam("facet")
	if facet == "" {
		facet = "status"
	}

	counts, err := c.service.Counts(ctx.Request().Context(), facet)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"facet":   facet,
		"counts":  counts,
	})
}

// Export answers with the file itself. Query parameters are those of the
// list plus format, fields and type.
func (c *ListController[T]) Export(ctx echo.Context) error {
	params := ctx.QueryParams()
	q, err := c.parseQuery(params)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	format, err := exports.ParseFormat(params.Get("format"))
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(err.Error()), c.logger)
	}
	fields, picked := utils.ParseFields(params)

	file, err := c.service.Export(ctx.Request().Context(), services.ExportRequest{
		Query:   q,
		Format:  format,
		Fields:  fields,
		Picked:  picked,
		Variant: params.Get("type"),
	})
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	h := ctx.Response().Header()
	h.Set(echo.HeaderContentDisposition, "attachment; filename="+strconv.Quote(file.Name))
	h.Set("X-Export-Rows", strconv.Itoa(file.Rows))
	return ctx.Blob(http.StatusOK, file.ContentType, file.Body)
}
