package controllers

import (
	"net/http"

	"charsheet-restful/interceptors"
	"charsheet-restful/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// CharacterController serves character sheets.
type CharacterController struct {
	characterService services.CharacterService
	authFilter       restful.FilterFunction
	logger           *zap.Logger
}

// NewCharacterController builds a controller whose create route runs behind
// authFilter.
func NewCharacterController(characterService services.CharacterService, authFilter restful.FilterFunction, logger *zap.Logger) *CharacterController {
	return &CharacterController{characterService: characterService, authFilter: authFilter, logger: logger}
}

func (ctl *CharacterController) RegisterRoutes(ws *restful.WebService) {
	tags := []string{"characters"}

	ws.Route(ws.POST("/new-character").Filter(ctl.authFilter).To(ctl.createCharacterHandler).
		Doc("Create a character sheet").
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Param(ws.HeaderParameter("Authorization", "Access token issued at registration").DataType("string").Required(true)).
		Reads(services.CharacterInput{}).
		Returns(http.StatusCreated, "Character created", services.CharacterView{}).
		Returns(http.StatusBadRequest, "Invalid character", Envelope{}).
		Returns(http.StatusUnauthorized, "Please log in", Envelope{}))

	ws.Route(ws.GET("/character-list").To(ctl.listCharactersHandler).
		Doc("List up to 20 characters").
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Writes(CharacterListResponse{}).
		Returns(http.StatusCreated, "Characters listed", CharacterListResponse{}).
		Returns(http.StatusBadRequest, "Internal server error", Envelope{}))
}

// createCharacterHandler (Handles POST /new-character)
func (ctl *CharacterController) createCharacterHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CharacterInput)
	if err := request.ReadEntity(input); err != nil {
		writeFailure(response, http.StatusBadRequest, services.MsgInvalidCharacter)
		return
	}

	character, err := ctl.characterService.Create(request.Request.Context(), input)
	if err != nil {
		handleServiceError(ctl.logger, request, response, err)
		return
	}

	userID, _ := interceptors.AuthenticatedUserID(request)
	username, _ := interceptors.AuthenticatedUsername(request)
	ctl.logger.Info("Character created",
		zap.Uint("character_id", character.ID),
		zap.Uint("user_id", userID),
		zap.String("created_by", username))
	writeSuccess(response, http.StatusCreated, character)
}

// listCharactersHandler (Handles GET /character-list). The 201 status is
// part of the published API and kept for existing clients.
func (ctl *CharacterController) listCharactersHandler(request *restful.Request, response *restful.Response) {
	characters, err := ctl.characterService.List(request.Request.Context())
	if err != nil {
		handleServiceErrorAsBadRequest(ctl.logger, request, response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusCreated, CharacterListResponse{CharacterList: characters}, restful.MIME_JSON)
}
