package controllers

import (
	"net/http"

	"charsheet-restful/interceptors"
	"charsheet-restful/services"

	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// Envelope is the body of every JSON response except the character list.
type Envelope struct {
	Success  bool `json:"success"`
	Response any  `json:"response"`
}

type CharacterListResponse struct {
	CharacterList []services.CharacterView `json:"characterList"`
}

// statusForKind translates a service error kind to an HTTP status.
func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindValidation, services.KindConflict:
		return http.StatusBadRequest
	case services.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeSuccess(response *restful.Response, status int, payload any) {
	_ = response.WriteHeaderAndJson(status, Envelope{Success: true, Response: payload}, restful.MIME_JSON)
}

func writeFailure(response *restful.Response, status int, message string) {
	_ = response.WriteHeaderAndJson(status, Envelope{Success: false, Response: message}, restful.MIME_JSON)
}

// handleServiceError renders err with the status of its kind. Internal
// errors are logged and replaced by a generic message.
func handleServiceError(logger *zap.Logger, request *restful.Request, response *restful.Response, err error) {
	renderServiceError(logger, request, response, err, statusForKind(services.KindOf(err)))
}

// handleServiceErrorAsBadRequest is used by routes whose published contract
// answers every failure, internal ones included, with 400.
func handleServiceErrorAsBadRequest(logger *zap.Logger, request *restful.Request, response *restful.Response, err error) {
	renderServiceError(logger, request, response, err, http.StatusBadRequest)
}

func renderServiceError(logger *zap.Logger, request *restful.Request, response *restful.Response, err error, status int) {
	kind := services.KindOf(err)
	if kind == services.KindInternal {
		logger.Error("Unhandled service error",
			zap.String("request_id", interceptors.RequestID(request)),
			zap.String("path", request.Request.URL.Path),
			zap.Error(err))
	} else {
		logger.Debug("Request rejected",
			zap.String("request_id", interceptors.RequestID(request)),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
	writeFailure(response, status, services.PublicMessage(err))
}
