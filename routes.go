package authgate

import (
	"sort"
	"strings"
)

// routeRule is one compiled route pattern. Prefix rules come from patterns
// with a trailing "/*"; specificity is the literal pattern length so the
// longest match wins when rules overlap.
type routeRule struct {
	pattern string
	prefix  bool
	roles   []string
}

func (r routeRule) matches(path string) bool {
	if r.prefix {
		return path == r.pattern || strings.HasPrefix(path, r.pattern+"/")
	}
	return path == r.pattern
}

// RouteTable defines a public type used by authgate APIs.
//
// RouteTable instances are compiled once by [Builder.Build] from
// [RouteConfig] and then treated as immutable; lookups are safe for
// concurrent use.
type RouteTable struct {
	public      []routeRule
	required    []routeRule
	defaultRole string
}

func newRouteTable(cfg RouteConfig) *RouteTable {
	table := &RouteTable{
		defaultRole: cfg.DefaultRole,
	}

	for _, pattern := range cfg.PublicRoutes {
		table.public = append(table.public, compileRule(pattern, nil))
	}
	for pattern, roles := range cfg.RequiredRoles {
		table.required = append(table.required, compileRule(pattern, append([]string(nil), roles...)))
	}

	// Most specific rule first, so the first match is the winning match.
	sortRules(table.public)
	sortRules(table.required)

	return table
}

func compileRule(pattern string, roles []string) routeRule {
	rule := routeRule{pattern: pattern, roles: roles}
	if trimmed, ok := strings.CutSuffix(pattern, "/*"); ok {
		rule.pattern = trimmed
		rule.prefix = true
	} else if trimmed, ok := strings.CutSuffix(pattern, "/**"); ok {
		rule.pattern = trimmed
		rule.prefix = true
	}
	return rule
}

func sortRules(rules []routeRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if len(rules[i].pattern) != len(rules[j].pattern) {
			return len(rules[i].pattern) > len(rules[j].pattern)
		}
		// Exact rules beat prefix rules of the same length.
		return !rules[i].prefix && rules[j].prefix
	})
}

// IsPublic reports whether the path is exempt from authentication.
func (t *RouteTable) IsPublic(path string) bool {
	for _, rule := range t.public {
		if rule.matches(path) {
			return true
		}
	}
	return false
}

// RequiredRoles returns the role set a principal must intersect to reach the
// path. Routes without an explicit mapping require the default role.
func (t *RouteTable) RequiredRoles(path string) []string {
	for _, rule := range t.required {
		if rule.matches(path) {
			return rule.roles
		}
	}
	return []string{t.defaultRole}
}

// Authorize applies the role-based access decision for the path: public
// routes bypass entirely, otherwise the principal's role set must intersect
// the route's required role set.
func (t *RouteTable) Authorize(p Principal, path string) bool {
	if t.IsPublic(path) {
		return true
	}
	return p.HasAnyRole(t.RequiredRoles(path))
}
