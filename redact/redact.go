package redact

import (
	"regexp"
	"sort"

	"github.com/sonnes/chatview/core"
)

// Config controls which rules the Redactor applies.
type Config struct {
	Secrets    bool
	PII        bool
	ExtraRules []Rule
	Allowlist  []string // regex patterns to skip
}

// Redactor applies redaction rules to every string in a dataset: session
// names, questions, answers, and string leaves of passthrough fields.
type Redactor struct {
	rules     []Rule
	allowlist []*regexp.Regexp
}

// New creates a Redactor from the given config.
func New(cfg Config) *Redactor {
	var rules []Rule
	if cfg.Secrets {
		rules = append(rules, SecretRules()...)
	}
	if cfg.PII {
		rules = append(rules, PIIRules()...)
	}
	rules = append(rules, cfg.ExtraRules...)

	allowlist := make([]*regexp.Regexp, 0, len(cfg.Allowlist))
	for _, pattern := range cfg.Allowlist {
		if re, err := regexp.Compile(pattern); err == nil {
			allowlist = append(allowlist, re)
		}
	}

	return &Redactor{rules: rules, allowlist: allowlist}
}

// Transform implements core.Transformer.
func (r *Redactor) Transform(sessions []core.Session) error {
	for i := range sessions {
		s := &sessions[i]
		s.Name = r.redactOptional(s.Name)
		s.Extra = r.redactExtra(s.Extra)
		for j := range s.Records {
			rec := &s.Records[j]
			rec.Question = r.redactOptional(rec.Question)
			rec.Answer = r.redactOptional(rec.Answer)
			rec.Extra = r.redactExtra(rec.Extra)
		}
	}
	return nil
}

func (r *Redactor) redactOptional(s *string) *string {
	if s == nil {
		return nil
	}
	out := r.redactString(*s)
	return &out
}

// redactString applies all rules to s. Overlapping matches resolve to
// earliest start, then longest. Allowlisted values are skipped.
func (r *Redactor) redactString(s string) string {
	if len(s) == 0 {
		return s
	}

	type replacement struct {
		start int
		end   int
		text  string
	}

	var reps []replacement
	for _, rule := range r.rules {
		for _, m := range rule.Detect(s) {
			if r.isAllowed(m.Value) {
				continue
			}
			reps = append(reps, replacement{
				start: m.Start,
				end:   m.End,
				text:  rule.Replacement(m),
			})
		}
	}

	if len(reps) == 0 {
		return s
	}

	sort.Slice(reps, func(i, j int) bool {
		if reps[i].start != reps[j].start {
			return reps[i].start < reps[j].start
		}
		return reps[i].end > reps[j].end
	})

	var result []byte
	pos := 0
	for _, rep := range reps {
		if rep.start < pos {
			continue
		}
		result = append(result, s[pos:rep.start]...)
		result = append(result, rep.text...)
		pos = rep.end
	}
	result = append(result, s[pos:]...)
	return string(result)
}

func (r *Redactor) isAllowed(value string) bool {
	for _, re := range r.allowlist {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}
