package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewfead/yrc/internal/core"
	"github.com/drewfead/yrc/internal/yrc"
)

func Test_Unit_Handler(t *testing.T) {
	t.Run("returns listings", func(t *testing.T) {
		listings, err := yrc.Parse(`{"2024-05-01": [{"title": "A"}]}`)
		require.NoError(t, err)

		h := handler(func(context.Context) ([]core.Listing, error) { return listings, nil })
		resp, err := h(context.Background(), events.LambdaFunctionURLRequest{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Body, `"date":"2024-05-01"`)
		assert.Contains(t, resp.Body, `"title":"A"`)
	})

	t.Run("empty listings", func(t *testing.T) {
		h := handler(func(context.Context) ([]core.Listing, error) { return nil, nil })
		resp, err := h(context.Background(), events.LambdaFunctionURLRequest{})
		require.NoError(t, err)
		assert.Equal(t, "[]", resp.Body)
	})

	t.Run("scrape failure", func(t *testing.T) {
		h := handler(func(context.Context) ([]core.Listing, error) { return nil, errors.New("boom") })
		resp, err := h(context.Background(), events.LambdaFunctionURLRequest{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}
