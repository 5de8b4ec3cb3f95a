package yrc

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const themeMarker = "var theme ="

var (
	ErrScriptNotFound    = errors.New("no <script> containing the theme marker")
	ErrMovieDataNotFound = errors.New("movieData assignment not found in script")
)

// movieDataPattern stops at the first "};", so objects with nested "};" are cut short.
var movieDataPattern = regexp.MustCompile(`(?s)movieData\s*=\s*(\{.*?\});`)

// Extract returns the movieData object literal embedded in the homepage's theme script.
func Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	script, ok := findThemeScript(doc)
	if !ok {
		return "", ErrScriptNotFound
	}
	return ExtractMovieData(script)
}

// ExtractMovieData pulls the movieData literal out of a script body.
func ExtractMovieData(script string) (string, error) {
	m := movieDataPattern.FindStringSubmatch(script)
	if m == nil {
		return "", ErrMovieDataNotFound
	}
	return m[1], nil
}

func findThemeScript(doc *goquery.Document) (string, bool) {
	var found string
	var ok bool
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, themeMarker) {
			found, ok = text, true
			return false
		}
		return true
	})
	return found, ok
}
