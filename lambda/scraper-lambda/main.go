package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/drewfead/yrc/internal/core"
	"github.com/drewfead/yrc/internal/yrc"
)

type listingsFunc func(ctx context.Context) ([]core.Listing, error)

func handler(scrape listingsFunc) func(context.Context, events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	return func(ctx context.Context, _ events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		listings, err := scrape(ctx)
		if err != nil {
			zap.L().Error("Failed to scrape listings", zap.Error(err))
			return events.LambdaFunctionURLResponse{Body: "error", StatusCode: http.StatusBadGateway}, nil
		}
		if listings == nil {
			listings = []core.Listing{}
		}

		body, err := json.Marshal(listings)
		if err != nil {
			return events.LambdaFunctionURLResponse{}, err
		}
		return events.LambdaFunctionURLResponse{
			Body:       string(body),
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "application/json"},
		}, nil
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err == nil {
		zap.ReplaceGlobals(logger)
	}

	url := os.Getenv("YRC_URL")
	if url == "" {
		url = yrc.DefaultBaseURL
	}
	s := &yrc.Scraper{BaseURL: url}
	lambda.Start(handler(s.Listings))
}
