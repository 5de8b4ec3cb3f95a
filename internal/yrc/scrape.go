package yrc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drewfead/yrc/internal/core"
	"github.com/drewfead/yrc/internal/scraping"
)

const DefaultBaseURL = "https://www.yrccinemas.com/"

type Scraper struct {
	BaseURL string
	Headers map[string]string
	Timeout time.Duration
}

// Listings fetches the homepage and returns its embedded showtimes.
func (s *Scraper) Listings(ctx context.Context) ([]core.Listing, error) {
	ctx, span := otel.Tracer("yrc.scraper").Start(ctx, "listings")
	defer span.End()

	url := s.BaseURL
	if url == "" {
		url = DefaultBaseURL
	}

	page, err := scraping.Fetch(ctx, url, s.Headers, scraping.WithRequestTimeout(s.Timeout))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch homepage: %w", err)
	}

	listings, err := ListingsFromHTML(ctx, string(page))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("dates", len(listings)))
	return listings, nil
}

// ListingsFromHTML runs everything after the fetch: extract, repair and parse.
func ListingsFromHTML(ctx context.Context, page string) ([]core.Listing, error) {
	tracer := otel.Tracer("yrc.scraper")

	_, span := tracer.Start(ctx, "extract")
	literal, err := Extract(page)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("extract movie data: %w", err)
	}

	_, span = tracer.Start(ctx, "repair")
	repaired, err := Repair(literal)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("repair movie data: %w", err)
	}

	_, span = tracer.Start(ctx, "parse")
	listings, err := Parse(repaired)
	span.End()
	if err != nil {
		return nil, err
	}
	return listings, nil
}
