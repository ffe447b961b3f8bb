package controllers

import (
	"net/http"

	"charsheet-restful/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// AuthController serves registration and login.
type AuthController struct {
	authService services.AuthService
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

// RegisterRoutes sets up the public account routes on ws.
func (ctl *AuthController) RegisterRoutes(ws *restful.WebService) {
	tags := []string{"accounts"}

	ws.Route(ws.POST("/register").To(ctl.registerHandler).
		Doc("Register a new user").
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Reads(services.RegisterInput{}).
		Returns(http.StatusCreated, "User created successfully", services.UserView{}).
		Returns(http.StatusBadRequest, "Invalid input, username/nickname taken or internal error", Envelope{}))

	ws.Route(ws.POST("/login").To(ctl.loginHandler).
		Doc("Exchange username and password for the access token").
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Reads(services.LoginInput{}).
		Returns(http.StatusOK, "Logged in", services.UserView{}).
		Returns(http.StatusBadRequest, "Credentials didn't match", Envelope{}).
		Returns(http.StatusInternalServerError, "Internal server error", Envelope{}))
}

// registerHandler (Handles POST /register)
func (ctl *AuthController) registerHandler(request *restful.Request, response *restful.Response) {
	input := new(services.RegisterInput)
	if err := request.ReadEntity(input); err != nil {
		writeFailure(response, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := ctl.authService.Register(request.Request.Context(), input)
	if err != nil {
		handleServiceErrorAsBadRequest(ctl.logger, request, response, err)
		return
	}

	ctl.logger.Info("User registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	writeSuccess(response, http.StatusCreated, user)
}

// loginHandler (Handles POST /login)
func (ctl *AuthController) loginHandler(request *restful.Request, response *restful.Response) {
	input := new(services.LoginInput)
	if err := request.ReadEntity(input); err != nil {
		writeFailure(response, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := ctl.authService.Login(request.Request.Context(), input)
	if err != nil {
		// A credential mismatch at login is a bad request, not a missing token.
		if services.KindOf(err) == services.KindAuth {
			writeFailure(response, http.StatusBadRequest, services.PublicMessage(err))
			return
		}
		handleServiceError(ctl.logger, request, response, err)
		return
	}

	writeSuccess(response, http.StatusOK, user)
}
