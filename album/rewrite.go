package album

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrNoRewriteRule is returned when an image path matches no rule.
var ErrNoRewriteRule = errors.New("no rewrite rule matches")

// Rule maps a path prefix recorded by the album editor to a local directory.
type Rule struct {
	From string
	To   string
}

// Rewriter turns stored (usually Windows) image paths into local paths.
type Rewriter struct {
	Rules []Rule
}

// NewRewriter returns a rewriter trying rules in order.
func NewRewriter(rules ...Rule) *Rewriter {
	return &Rewriter{Rules: rules}
}

// Resolve applies the first rule whose From prefixes p. Without any rule the
// path is returned with its separators normalised.
func (r *Rewriter) Resolve(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("image path is empty")
	}
	if r == nil || len(r.Rules) == 0 {
		return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/")), nil
	}
	for _, rule := range r.Rules {
		if !strings.HasPrefix(p, rule.From) {
			continue
		}
		rest := strings.TrimLeft(strings.TrimPrefix(p, rule.From), `\`)
		rest = strings.ReplaceAll(rest, `\`, "/")
		return filepath.FromSlash(path.Join(rule.To, rest)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrNoRewriteRule, p)
}
