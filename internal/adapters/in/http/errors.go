package http

import (
	"errors"
	"net/http"

	"clearance/internal/core/domain/model/bid"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps a use-case error to the HTTP status the API contract
// promises: 404 for missing objects, 409 for illegal transitions and failed
// role guards, 400 for validation failures, 500 otherwise.
func respondError(ctx echo.Context, err error) error {
	return ctx.JSON(statusFor(err), ErrorResponse{
		Code:    statusFor(err),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrCheckpointsIncomplete),
		errors.Is(err, order.ErrActorIsNotAcceptedBroker),
		errors.Is(err, order.ErrActorIsNotOrderRequester),
		errors.Is(err, bid.ErrAlreadyAccepted):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, bid.ErrValueIsNotPositive):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
