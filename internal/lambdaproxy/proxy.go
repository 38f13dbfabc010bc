// Package lambdaproxy serves API Gateway HTTP API (payload v2) events with
// the gin engine through the aws-lambda-go-api-proxy adapter.
package lambdaproxy

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultStage = "$default"

type Proxy struct {
	adapter *ginadapter.GinLambdaV2
	log     zerolog.Logger
}

func New(router *gin.Engine, log zerolog.Logger) *Proxy {
	return &Proxy{adapter: ginadapter.NewV2(router), log: log}
}

// Handle is the lambda.Start entry point. Events the adapter cannot convert
// (for example a corrupt base64 body) produce a 400 response rather than an
// invocation error.
func (p *Proxy) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	event.RawPath = StripStage(event.RawPath, event.RequestContext.Stage)
	event.RequestContext.HTTP.Path = StripStage(event.RequestContext.HTTP.Path, event.RequestContext.Stage)

	resp, err := p.adapter.ProxyWithContext(ctx, event)
	if err != nil {
		p.log.Warn().Err(err).
			Str("method", event.RequestContext.HTTP.Method).
			Str("path", event.RawPath).
			Msg("failed to proxy event")
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"invalid request"}`,
		}, nil
	}
	return resp, nil
}

// StripStage removes the "/{stage}" prefix API Gateway keeps in the path
// of named stages. The $default stage has no prefix.
func StripStage(path, stage string) string {
	if stage == "" || stage == defaultStage {
		return path
	}
	prefix := "/" + stage
	if path == prefix {
		return "/"
	}
	if strings.HasPrefix(path, prefix+"/") {
		return strings.TrimPrefix(path, prefix)
	}
	return path
}
