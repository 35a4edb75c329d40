package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// runLambda serves one scheduled invocation. cfg comes from the environment;
// the event may override channels and day offset. Invalid input answers 400,
// any failure of the run itself 500.
func runLambda(ctx context.Context, cfg Config, event []byte) events.LambdaFunctionURLResponse {
	applyEventOverrides(&cfg, event)
	if err := cfg.Validate(); err != nil {
		return errResp(http.StatusBadRequest, err.Error())
	}

	logger, err := newLogger(cfg.Verbose, "")
	if err != nil {
		return errResp(http.StatusInternalServerError, err.Error())
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("script started", zap.Int("day_offset", cfg.DayOffset))

	ref, err := NewReferee(cfg, logger, io.Discard)
	if err != nil {
		return errResp(http.StatusInternalServerError, err.Error())
	}
	params, err := cfg.Params()
	if err != nil {
		return errResp(http.StatusBadRequest, err.Error())
	}
	rep, err := ref.Run(ctx, params)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return errResp(http.StatusInternalServerError, err.Error())
	}
	logger.Info("script completed", zap.String("run_id", rep.RunID))
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Body: "OK"}
}

func errResp(code int, msg string) events.LambdaFunctionURLResponse {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}
}
