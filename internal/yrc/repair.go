package yrc

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"
)

const placeholderImage = "https://placeholder.com/image.jpg"

// Rule is one find/replace pass of the repair.
type Rule struct {
	Name  string
	Apply func(string) (string, error)
}

func RegexpRule(name, pattern, replacement string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name: name,
		Apply: func(s string) (string, error) {
			return re.ReplaceAllString(s, replacement), nil
		},
	}
}

// LookaroundRule is a RegexpRule for patterns RE2 cannot express.
func LookaroundRule(name, pattern, replacement string) Rule {
	re := regexp2.MustCompile(pattern, regexp2.None)
	return Rule{
		Name: name,
		Apply: func(s string) (string, error) {
			return re.Replace(s, replacement, -1, -1)
		},
	}
}

func LiteralRule(name, old, replacement string) Rule {
	return Rule{
		Name: name,
		Apply: func(s string) (string, error) {
			return strings.ReplaceAll(s, old, replacement), nil
		},
	}
}

func truncatedImageRule(field string) Rule {
	return RegexpRule(
		"truncated-"+field,
		`"`+field+`":\s*"https:([^/])`,
		`"`+field+`": "`+placeholderImage+`",${1}`,
	)
}

// DefaultRules is the repair pass for the movieData literal, in application order.
// The rules know nothing about JSON structure and can interfere with each other.
var DefaultRules = []Rule{
	// a "//" right after a scheme colon or another slash is part of a URL
	RegexpRule("strip-comments", `(?s)/\*.*?\*/|(^|[^:/])//[^\n]*`, "${1}"),
	RegexpRule("normalize-scheme", `https?:/{2,}`, "https://"),
	truncatedImageRule("image-portrait"),
	truncatedImageRule("image-landscape"),
	RegexpRule("missing-commas", `(["\]}0-9]|true|false|null)(\s*\n\s*")`, "${1},${2}"),
	// apostrophes inside text are rewritten too
	LookaroundRule("single-quotes", `(?<!\\)'`, `"`),
	LiteralRule("double-backslashes", `\\`, `\`),
}

// Repair rewrites a JavaScript-flavoured object literal into (hopefully) strict JSON.
func Repair(src string) (string, error) {
	return ApplyRules(src, DefaultRules)
}

func ApplyRules(src string, rules []Rule) (string, error) {
	out := src
	for _, rule := range rules {
		next, err := rule.Apply(out)
		if err != nil {
			return "", err
		}
		zap.L().Debug("applied repair rule",
			zap.String("rule", rule.Name),
			zap.Bool("changed", next != out),
			zap.Int("delta", len(next)-len(out)),
		)
		out = next
	}
	return out, nil
}
