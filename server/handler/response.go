package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"bikeshare/aggregator"
	"bikeshare/queryhandlers"
	dataErrors "bikeshare/workers/errors"
)

const handlerStr = "api"

// Problem body of every error response
// + Status: HTTP status code
// + Title: status text
// + Detail: description of the error
type Problem struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", handlerStr, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", handlerStr, method, message)
}

// WriteJSON writes body as JSON with the given status code
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error(getLogMessage("WriteJSON", "error encoding response", err))
	}
}

// WriteError writes a Problem whose status depends on the kind of err
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error(getLogMessage("WriteError", "request failed", err))
	}
	WriteJSON(w, status, Problem{
		Status: status,
		Title:  http.StatusText(status),
		Detail: err.Error(),
	})
}

// StatusOf maps the errors of the service to HTTP status codes
func StatusOf(err error) int {
	switch {
	case errors.Is(err, queryhandlers.ErrUnknownView), errors.Is(err, aggregator.ErrUnknownTable):
		return http.StatusNotFound
	case errors.Is(err, dataErrors.ErrInvalidSelection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
