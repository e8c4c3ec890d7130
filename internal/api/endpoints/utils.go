package endpoints

import (
	"errors"
	"fmt"
	"net/http"

	"kartel-backend/internal/api"
	"kartel-backend/internal/service/fault"
)

type HTTPError = api.HTTPError

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	return api.WriteJSON(w, status, v)
}

func MethodHandler(
	w http.ResponseWriter,
	r *http.Request,
	allowed map[string]func(http.ResponseWriter, *http.Request) error,
) error {
	if handler, ok := allowed[r.Method]; ok {
		return handler(w, r)
	}
	return &HTTPError{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    "Method not allowed.",
		ErrorLog:   fmt.Errorf("method not allowed"),
	}
}

// serviceError maps the shared service taxonomy onto HTTP statuses.
// Validation and token errors surface with their own message; anything
// unrecognised is an opaque 500.
func serviceError(err error) error {
	if err == nil {
		return nil
	}

	var svcErr *fault.Error
	if !errors.As(err, &svcErr) {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   err,
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	switch svcErr.Code {
	case fault.ErrorCodeValidation, fault.ErrorCodeExpired, fault.ErrorCodeAlreadyUsed:
		status = http.StatusBadRequest
		message = svcErr.Message
	case fault.ErrorCodeUnauthorized:
		status = http.StatusUnauthorized
		message = svcErr.Message
	case fault.ErrorCodeForbidden:
		status = http.StatusForbidden
		message = svcErr.Message
	case fault.ErrorCodeNotFound:
		status = http.StatusNotFound
		message = svcErr.Message
	case fault.ErrorCodeConflict:
		status = http.StatusConflict
		message = svcErr.Message
	}

	return &HTTPError{
		StatusCode: status,
		Message:    message,
		ErrorLog:   errorLog,
	}
}

func badRequest(message string, err error) error {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		ErrorLog:   err,
	}
}
