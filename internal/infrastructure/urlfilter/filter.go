// Package urlfilter gates fully assembled destination URLs against the
// globally configured allowlist, denylist, and deny rules.
package urlfilter

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	apperrors "github.com/keygate-dev/keygate/internal/application/errors"
	"github.com/keygate-dev/keygate/internal/domain/urlmatch"
	"github.com/keygate-dev/keygate/internal/infrastructure/system"
)

// Verdict is the outcome of checking one URL.
type Verdict struct {
	Allowed bool
	// Reason names the pattern set and pattern behind a denial.
	// Empty when allowed.
	Reason string
}

type compiledRule struct {
	source  string
	program *vm.Program
}

// Filter evaluates destination URLs against the configured pattern
// lists. It is built once from configuration and read-only afterwards.
type Filter struct {
	allow []string
	deny  []string
	rules []compiledRule
}

// New compiles a filter from configuration. Configuring both an
// allowlist and a denylist is legal but the denylist is ignored; the
// precedence is logged as a configuration warning.
func New(cfg system.FilterConfig) (*Filter, error) {
	if len(cfg.Allow) > 0 && len(cfg.Deny) > 0 {
		slog.Warn("both allow and deny lists configured; allow takes precedence and the deny list is ignored")
	}

	f := &Filter{allow: cfg.Allow, deny: cfg.Deny}

	for _, source := range cfg.Rules {
		program, err := expr.Compile(source, expr.Env(ruleEnv("", nil)), expr.AsBool())
		if err != nil {
			return nil, apperrors.NewConfigurationError("filter", fmt.Sprintf("cannot compile rule %q", source), err)
		}
		f.rules = append(f.rules, compiledRule{source: source, program: program})
	}

	return f, nil
}

// Check evaluates a fully assembled URL. It must run once per request
// after secret substitution and query assembly, never against a partial
// URL.
//
// If an allowlist is configured the URL is allowed iff it matches at
// least one allow pattern. Otherwise a configured denylist denies the
// URL iff any deny pattern matches. With neither configured all URLs
// are allowed. Deny rules, when configured, run after the list logic
// and can only deny.
func (f *Filter) Check(rawURL string) Verdict {
	if len(f.allow) > 0 {
		if !urlmatch.MatchesAny(rawURL, f.allow) {
			return Verdict{Reason: "URL matches no allowlist pattern"}
		}
	} else if len(f.deny) > 0 {
		for _, pattern := range f.deny {
			if urlmatch.Matches(rawURL, pattern) {
				return Verdict{Reason: fmt.Sprintf("URL matches denylist pattern %q", pattern)}
			}
		}
	}

	if len(f.rules) > 0 {
		env := ruleEnv(rawURL, parseURL(rawURL))
		for _, rule := range f.rules {
			denied, err := expr.Run(rule.program, env)
			if err != nil {
				slog.Warn("filter rule evaluation failed", "rule", rule.source, "error", err)
				continue
			}
			if denied.(bool) {
				return Verdict{Reason: fmt.Sprintf("URL denied by filter rule %q", rule.source)}
			}
		}
	}

	return Verdict{Allowed: true}
}

// ruleEnv builds the expression environment rules are evaluated in.
func ruleEnv(rawURL string, u *url.URL) map[string]any {
	env := map[string]any{
		"url":    rawURL,
		"scheme": "",
		"host":   "",
		"path":   "",
	}
	if u != nil {
		env["scheme"] = u.Scheme
		env["host"] = u.Host
		env["path"] = u.Path
	}
	return env
}

func parseURL(rawURL string) *url.URL {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return u
}
