package redact

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

// Engine selects the regular expression dialect used to compile patterns.
type Engine string

const (
	EngineRE2     Engine = "re2"
	EngineRegexp2 Engine = "regexp2"
)

// Engines lists the supported engines in display order.
var Engines = []Engine{EngineRE2, EngineRegexp2}

// ParseEngine converts a config or flag value to an Engine. Empty means re2.
func ParseEngine(s string) (Engine, error) {
	switch Engine(s) {
	case "", EngineRE2:
		return EngineRE2, nil
	case EngineRegexp2:
		return EngineRegexp2, nil
	default:
		return "", fmt.Errorf("unknown regex engine: %s (want re2 or regexp2)", s)
	}
}

// pass is one compiled pattern. replace substitutes every non-overlapping
// leftmost match with the placeholder.
type pass interface {
	replace(content string) (string, error)
}

type re2Pass struct {
	re *regexp.Regexp
}

func (p re2Pass) replace(content string) (string, error) {
	return p.re.ReplaceAllLiteralString(content, Placeholder), nil
}

type regexp2Pass struct {
	re *regexp2.Regexp
}

func (p regexp2Pass) replace(content string) (string, error) {
	out, err := p.re.ReplaceFunc(content, func(regexp2.Match) string {
		return Placeholder
	}, -1, -1)
	if err != nil {
		// Timeouts are the only match-time failure, and the engine's message
		// quotes the whole input.
		return "", ErrMatchTimeout
	}
	return out, nil
}

func compilePass(engine Engine, pattern string, timeout time.Duration) (pass, error) {
	switch engine {
	case EngineRegexp2:
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, err
		}
		if timeout > 0 {
			re.MatchTimeout = timeout
		}
		return regexp2Pass{re: re}, nil
	default:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		return re2Pass{re: re}, nil
	}
}
