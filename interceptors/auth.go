package interceptors

import (
	"net/http"
	"strings"

	"charsheet-restful/metrics"
	"charsheet-restful/services"

	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

const (
	// UserIDAttribute holds the authenticated user's ID on the request.
	UserIDAttribute = "user_id"
	// UsernameAttribute holds the authenticated user's username.
	UsernameAttribute = "username"
)

// AuthFilter only lets requests through whose Authorization header carries
// a known access token. The header holds the raw token; a "Bearer " prefix
// is accepted too.
func AuthFilter(svc services.AuthService, m *metrics.Metrics, logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		token := bearerToken(req.HeaderParameter("Authorization"))

		user, err := svc.Authenticate(req.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			outcome := "denied"
			if services.KindOf(err) == services.KindInternal {
				status = http.StatusInternalServerError
				outcome = "error"
				logger.Error("Access token lookup failed",
					zap.String("request_id", RequestID(req)),
					zap.Error(err))
			}
			recordAuthDecision(m, outcome)
			_ = resp.WriteHeaderAndJson(status, map[string]any{
				"success":  false,
				"response": services.PublicMessage(err),
			}, restful.MIME_JSON)
			return
		}

		recordAuthDecision(m, "granted")
		// Store user information in request attributes for use by subsequent processing functions
		req.SetAttribute(UserIDAttribute, user.ID)
		req.SetAttribute(UsernameAttribute, user.Username)
		chain.ProcessFilter(req, resp)
	}
}

// AuthenticatedUserID returns the user ID set by AuthFilter.
func AuthenticatedUserID(req *restful.Request) (uint, bool) {
	userID, ok := req.Attribute(UserIDAttribute).(uint)
	return userID, ok
}

// AuthenticatedUsername returns the username set by AuthFilter.
func AuthenticatedUsername(req *restful.Request) (string, bool) {
	username, ok := req.Attribute(UsernameAttribute).(string)
	return username, ok
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > len("bearer ") && strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	return header
}

func recordAuthDecision(m *metrics.Metrics, outcome string) {
	if m == nil {
		return
	}
	m.AuthDecisions.WithLabelValues(outcome).Inc()
}
