// Package rest holds the helpers every entity handler shares: decoding
// create and patch bodies, mapping store errors onto HTTP status codes and
// paging listings.
package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/pkg/pagination"
)

// Error translates a store or domain error into an echo.HTTPError.
func Error(err error) error {
	if err == nil {
		return nil
	}
	var ve *store.ValidationError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ve.Error())
	case errors.Is(err, store.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}

// Bind decodes a JSON request body into a fresh E. Unknown fields are
// rejected.
func Bind[E any](c echo.Context) (E, error) {
	var rec E
	if err := decodeStrict(c.Request().Body, &rec); err != nil {
		return rec, echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return rec, nil
}

// BindPatch decodes a JSON object of fields to change.
func BindPatch(c echo.Context) (store.Patch, error) {
	var patch store.Patch
	if err := decodeStrict(c.Request().Body, &patch); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if len(patch) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "empty patch")
	}
	return patch, nil
}

func decodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON value")
	}
	return nil
}

// List writes items as a paginated response.
func List[E any](c echo.Context, items []E) error {
	pg := pagination.FromContext(c)
	return c.JSON(http.StatusOK, pagination.Page(items, pg).WithLinks(c.Request().URL.Path))
}

// Query returns a trimmed, lower-cased query parameter.
func Query(c echo.Context, name string) string {
	return strings.ToLower(strings.TrimSpace(c.QueryParam(name)))
}
