package api

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"warranty-console/pkg/listview"
)

// PaginationMeta is listview.Page plus the page-number window.
type PaginationMeta struct {
	listview.Page
	Pages []int `json:"pages"`
}

// Freshness tells the client whether the records came from a live fetch.
type Freshness struct {
	Stale     bool   `json:"stale,omitempty"`
	Warning   string `json:"warning,omitempty"`
	FetchedAt string `json:"fetchedAt,omitempty"`
}

// ListBody renders as {success, <key>: [...], pagination, stale, warning}.
type ListBody[T any] struct {
	Key        string
	List       []T
	Pagination PaginationMeta
	Freshness  Freshness
}

func (b ListBody[T]) MarshalJSON() ([]byte, error) {
	list := b.List
	if list == nil {
		list = make([]T, 0)
	}
	out := map[string]interface{}{
		"success":    true,
		b.Key:        list,
		"pagination": b.Pagination,
	}
	if b.Freshness.Stale {
		out["stale"] = true
		out["warning"] = b.Freshness.Warning
	}
	if b.Freshness.FetchedAt != "" {
		out["fetchedAt"] = b.Freshness.FetchedAt
	}
	return json.Marshal(out)
}

// SuccessList writes one page of a list view.
func SuccessList[T any](c echo.Context, key string, res listview.Result[T], fresh Freshness) error {
	return c.JSON(http.StatusOK, ListBody[T]{
		Key:        key,
		List:       res.Items,
		Pagination: PaginationMeta{Page: res.Meta, Pages: res.Pages},
		Freshness:  fresh,
	})
}

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// SuccessOne is used for actions and single objects.
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	})
}
