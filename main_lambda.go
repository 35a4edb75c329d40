//go:build lambda

package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

func handler(ctx context.Context, event json.RawMessage) (events.LambdaFunctionURLResponse, error) {
	cfg, err := LoadConfig("")
	if err != nil {
		return errResp(http.StatusInternalServerError, err.Error()), nil
	}
	return runLambda(ctx, cfg, event), nil
}

func main() {
	lambda.Start(handler)
}
