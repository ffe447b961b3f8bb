package controllers

import (
	"fmt"
	"net/http"

	"charsheet-restful/interceptors"
	"charsheet-restful/metrics"
	"charsheet-restful/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// WelcomeMessage is served on GET /.
const WelcomeMessage = "Hello Player!"

// ContainerOptions carries everything the HTTP API depends on. Metrics and
// Gatherer are optional.
type ContainerOptions struct {
	AuthService      services.AuthService
	CharacterService services.CharacterService
	Logger           *zap.Logger
	Metrics          *metrics.Metrics
	Gatherer         prometheus.Gatherer
}

// NewContainer assembles the go-restful container serving the whole API.
func NewContainer(opts ContainerOptions) *restful.Container {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := restful.NewContainer()
	c.DoNotRecover(false)
	c.RecoverHandler(func(panicReason interface{}, w http.ResponseWriter) {
		logger.Error("Recovered from panic", zap.String("reason", fmt.Sprint(panicReason)), zap.Stack("stack"))
		w.Header().Set("Content-Type", restful.MIME_JSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"response":"` + services.MsgInternal + `"}`))
	})
	c.ServiceErrorHandler(func(serr restful.ServiceError, _ *restful.Request, resp *restful.Response) {
		writeFailure(resp, serr.Code, http.StatusText(serr.Code))
	})

	c.Filter(interceptors.RequestIDFilter())
	c.Filter(interceptors.LoggingFilter(logger))
	if opts.Metrics != nil {
		c.Filter(interceptors.MetricsFilter(opts.Metrics))
	}
	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept", "Authorization", interceptors.RequestIDHeader},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		ExposeHeaders:  []string{interceptors.RequestIDHeader},
		CookiesAllowed: false,
		Container:      c,
	}
	c.Filter(cors.Filter)

	ws := new(restful.WebService)
	ws.Path("/").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.GET("/").To(welcomeHandler).
		Doc("Liveness and welcome text").
		Produces("text/plain").
		Returns(http.StatusOK, "OK", nil))

	authFilter := interceptors.AuthFilter(opts.AuthService, opts.Metrics, logger)
	NewAuthController(opts.AuthService, logger).RegisterRoutes(ws)
	NewCharacterController(opts.CharacterService, authFilter, logger).RegisterRoutes(ws)
	c.Add(ws)

	c.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices:                   []*restful.WebService{ws},
		APIPath:                       "/apidocs.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}))

	if opts.Gatherer != nil {
		c.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return c
}

func welcomeHandler(_ *restful.Request, response *restful.Response) {
	response.AddHeader("Content-Type", "text/plain; charset=utf-8")
	response.WriteHeader(http.StatusOK)
	_, _ = response.Write([]byte(WelcomeMessage))
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Charsheet API",
			Description: "Accounts and role-playing character sheets",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "accounts", Description: "Registration and login"}},
		{TagProps: spec.TagProps{Name: "characters", Description: "Character sheets"}},
	}
}
