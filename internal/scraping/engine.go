package scraping

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type FetchOption func(*colly.Collector)

// WithRequestTimeout overrides colly's default request timeout. Zero keeps the default.
func WithRequestTimeout(d time.Duration) FetchOption {
	return func(c *colly.Collector) {
		if d > 0 {
			c.SetRequestTimeout(d)
		}
	}
}

// Fetch issues a single GET for url and returns the response body. Transport
// failures and non-2xx responses are returned as errors; nothing is retried.
func Fetch(
	ctx context.Context,
	url string,
	requestHeaders map[string]string,
	opts ...FetchOption,
) ([]byte, error) {
	ctx, span := otel.Tracer("scraping").Start(ctx, "fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	c := colly.NewCollector()
	for _, opt := range opts {
		opt(c)
	}

	var body []byte
	var fetchErr error
	c.OnRequest(InjectRequestHeaders(requestHeaders))
	c.OnRequest(AbortWhenDone(ctx))
	c.OnResponse(LogResponses(c))
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(ReportBadResponses(url, &fetchErr))

	done := make(chan error, 1)
	go func() {
		done <- c.Visit(url)
	}()

	select {
	case <-ctx.Done():
		span.RecordError(ctx.Err())
		return nil, ctx.Err()
	case err := <-done:
		if fetchErr != nil {
			err = fetchErr
		}
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	span.SetAttributes(attribute.Int("body_bytes", len(body)))
	return body, nil
}

func ReportBadResponses(url string, target *error) func(r *colly.Response, err error) {
	return func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			*target = fmt.Errorf("got status code %d from %s: %w", r.StatusCode, url, err)
			return
		}
		*target = fmt.Errorf("failed to fetch %s: %w", url, err)
	}
}

func LogResponses(c *colly.Collector) func(r *colly.Response) {
	return func(r *colly.Response) {
		cookies := c.Cookies(r.Request.URL.String())
		zap.L().Debug("response",
			zap.Int("status", r.StatusCode),
			zap.Int("bytes", len(r.Body)),
			zap.Any("cookies", cookies),
		)
	}
}

func InjectRequestHeaders(headers map[string]string) func(r *colly.Request) {
	return func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	}
}

// AbortWhenDone drops the request if ctx has already ended by the time colly
// is about to send it.
func AbortWhenDone(ctx context.Context) func(r *colly.Request) {
	return func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	}
}
