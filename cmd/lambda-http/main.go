package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

// proxy builds the router once per execution environment and forwards API
// Gateway v2 events to it.
type proxy struct {
	build func() (*gin.Engine, error)

	once    sync.Once
	err     error
	adapter *ginadapter.GinLambdaV2
}

func (p *proxy) init() {
	router, err := p.build()
	if err != nil {
		p.err = err
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": err})
		return
	}
	p.adapter = ginadapter.NewV2(router)
}

func (p *proxy) handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	p.once.Do(p.init)
	if p.err != nil || p.adapter == nil {
		return errorResponse("bootstrap_failed", "service is not ready"), nil
	}
	return p.adapter.ProxyWithContext(ctx, req)
}

func errorResponse(code, message string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.ErrorResponse{Error: respond.ErrorBody{Code: code, Message: message}})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func buildRouter() (*gin.Engine, error) {
	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		return nil, err
	}
	telemetry.Info("lambda.ready", map[string]any{"env": cfg.Env, "object_store": cfg.ObjectStoreType})
	return app.Router, nil
}

func main() {
	p := &proxy{build: buildRouter}
	lambda.Start(p.handle)
}
