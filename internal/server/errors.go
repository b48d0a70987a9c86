package server

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brandonscollins/familymoney/internal/identity"
	"github.com/brandonscollins/familymoney/internal/ledger"
	"github.com/brandonscollins/familymoney/internal/submission"
)

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	LoginPath string `json:"login_path,omitempty"`
}

// ErrorHandler maps domain errors onto HTTP responses so handlers can simply
// return them. Rejections from the submission pipeline keep their code and
// login hint.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var rejection *submission.Rejection
	if errors.As(err, &rejection) {
		return c.Status(statusForRejection(rejection.Code)).JSON(errorResponse{
			Code:      string(rejection.Code),
			Message:   rejection.Message,
			LoginPath: rejection.LoginPath,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(errorResponse{
			Code:    codeForStatus(fiberErr.Code),
			Message: fiberErr.Message,
		})
	}

	switch {
	case errors.Is(err, ledger.ErrValidation):
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Code: "validation_error", Message: err.Error()})
	case errors.Is(err, ledger.ErrUnauthorized):
		return c.Status(http.StatusUnauthorized).JSON(errorResponse{Code: "unauthorized", Message: err.Error()})
	case errors.Is(err, ledger.ErrChildNotFound), errors.Is(err, identity.ErrMemberNotFound):
		return c.Status(http.StatusNotFound).JSON(errorResponse{Code: "not_found", Message: err.Error()})
	case errors.Is(err, ledger.ErrChildHasTransactions):
		return c.Status(http.StatusConflict).JSON(errorResponse{Code: "conflict", Message: err.Error()})
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return c.Status(http.StatusServiceUnavailable).JSON(errorResponse{Code: "store_error", Message: "storage is unavailable, please try again"})
	}

	return c.Status(http.StatusInternalServerError).JSON(errorResponse{Code: "internal_error", Message: "something went wrong"})
}

func statusForRejection(code submission.RejectionCode) int {
	switch code {
	case submission.RejectValidation:
		return http.StatusBadRequest
	case submission.RejectUnauthorized:
		return http.StatusUnauthorized
	case submission.RejectNotFound:
		return http.StatusNotFound
	case submission.RejectStoreError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "rate_limited"
	default:
		return "error"
	}
}
