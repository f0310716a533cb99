// Package redact sanitizes secrets and PII out of session datasets before
// they are served.
package redact

import (
	"fmt"
	"regexp"
)

// Rule detects sensitive data in a string and provides a replacement.
type Rule interface {
	Name() string
	Kind() string
	Detect(s string) []Match
	Replacement(m Match) string
}

// Match represents a detected occurrence within a string.
type Match struct {
	Start int
	End   int
	Value string
}

type regexRule struct {
	name    string
	kind    string
	pattern *regexp.Regexp
}

func (r *regexRule) Name() string { return r.name }
func (r *regexRule) Kind() string { return r.kind }

func (r *regexRule) Detect(s string) []Match {
	locs := r.pattern.FindAllStringIndex(s, -1)
	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = Match{Start: loc[0], End: loc[1], Value: s[loc[0]:loc[1]]}
	}
	return matches
}

func (r *regexRule) Replacement(_ Match) string {
	return fmt.Sprintf("[REDACTED:%s]", r.name)
}

// NewRegexRule builds a rule from a pattern, e.g. for project-specific tokens.
func NewRegexRule(name, kind, pattern string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}
	return &regexRule{name: name, kind: kind, pattern: re}, nil
}

func mustRules(kind string, patterns [][2]string) []Rule {
	rules := make([]Rule, len(patterns))
	for i, p := range patterns {
		rules[i] = &regexRule{name: p[0], kind: kind, pattern: regexp.MustCompile(p[1])}
	}
	return rules
}

// SecretRules returns the built-in secret detection rules.
func SecretRules() []Rule {
	return mustRules("secret", [][2]string{
		{"aws_key", `AKIA[0-9A-Z]{16}`},
		{"api_key", `(?:sk-[a-zA-Z0-9]{32,}|ghp_[a-zA-Z0-9]{36,}|gho_[a-zA-Z0-9]{36,}|glpat-[a-zA-Z0-9\-]{20,})`},
		{"private_key", `-----BEGIN [A-Z ]+PRIVATE KEY-----`},
		{"connection_string", `(?:postgres|mongodb|mysql|redis)://[^\s"'` + "`" + `]+`},
		{"jwt", `eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_.+/=]+`},
		{"bearer_token", `(?i)bearer\s+[a-z0-9\-_.=]{20,}`},
	})
}

// PIIRules returns the built-in PII detection rules.
func PIIRules() []Rule {
	return mustRules("pii", [][2]string{
		{"email", `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`},
		{"ipv4", `\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`},
		{"phone", `(?:\+\d{1,3}[\s\-]?)?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}`},
	})
}
