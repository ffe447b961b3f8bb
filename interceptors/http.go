package interceptors

import (
	"strconv"
	"time"

	"charsheet-restful/metrics"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader    = "X-Request-ID"
	requestIDAttribute = "request_id"
)

// RequestIDFilter tags every request with an ID, reusing the caller's
// X-Request-ID when present, and echoes it in the response.
func RequestIDFilter() restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		id := req.HeaderParameter(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		req.SetAttribute(requestIDAttribute, id)
		resp.AddHeader(RequestIDHeader, id)
		chain.ProcessFilter(req, resp)
	}
}

// RequestID returns the ID assigned by RequestIDFilter, or "".
func RequestID(req *restful.Request) string {
	id, _ := req.Attribute(requestIDAttribute).(string)
	return id
}

// LoggingFilter logs one line per request once it has been handled.
func LoggingFilter(logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		startTime := time.Now()

		// handle requests
		chain.ProcessFilter(req, resp)

		logger.Info("Request",
			zap.String("request_id", RequestID(req)),
			zap.String("client_ip", req.Request.RemoteAddr),
			zap.String("method", req.Request.Method),
			zap.Int("status_code", resp.StatusCode()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("user_agent", req.Request.UserAgent()),
			zap.String("path", req.Request.URL.Path),
		)
	}
}

// MetricsFilter records request counts and latencies per route template.
func MetricsFilter(m *metrics.Metrics) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		startTime := time.Now()

		chain.ProcessFilter(req, resp)

		route := req.SelectedRoutePath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(route, req.Request.Method, strconv.Itoa(resp.StatusCode())).Inc()
		m.RequestDuration.WithLabelValues(route, req.Request.Method).Observe(time.Since(startTime).Seconds())
	}
}
