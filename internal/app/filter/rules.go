package filter

import (
	"fmt"

	"github.com/gobwas/glob"

	"tracev/internal/app/errors"
	"tracev/internal/config"
)

// Rules holds the ordered startup visibility rules from the config file.
// Patterns are globs over `::`-joined module paths with `:` as separator,
// so `db::*` covers direct children of db and `db::**` the whole subtree.
type Rules struct {
	rules []rule
}

type rule struct {
	g       glob.Glob
	enabled bool
}

// NewRules compiles config rules in document order
func NewRules(cfgRules []config.FilterRule) (*Rules, error) {
	r := &Rules{
		rules: make([]rule, 0, len(cfgRules)),
	}

	for _, cr := range cfgRules {
		g, err := glob.Compile(cr.Pattern, ':')
		if err != nil {
			return nil, fmt.Errorf("%w: '%s'", errors.ErrInvalidFilterRule, cr.Pattern)
		}

		r.rules = append(r.rules, rule{g: g, enabled: cr.Enabled})
	}

	return r, nil
}

// Match checks a `::`-joined module path against all rules. Later rules win.
// The second return reports whether any rule matched at all.
func (r *Rules) Match(path string) (enabled, matched bool) {
	for _, ru := range r.rules {
		if ru.g.Match(path) {
			enabled = ru.enabled
			matched = true
		}
	}

	return enabled, matched
}
