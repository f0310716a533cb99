package compact

import (
	"regexp"
	"strings"
)

// commandNameRE extracts the slash command name from <command-name>/foo</command-name>.
var commandNameRE = regexp.MustCompile(`<command-name>(/[^<]+)</command-name>`)

// commandArgsRE extracts arguments from <command-args>...</command-args>.
var commandArgsRE = regexp.MustCompile(`<command-args>([^<]*)</command-args>`)

// openTagRE matches an XML opening tag like <tag-name> or <tag_name attr="val">.
var openTagRE = regexp.MustCompile(`<([a-zA-Z_][a-zA-Z0-9_-]*)[^>]*>`)

// StripTags removes tool-injected XML blocks from a question.
//
// Slash commands (containing <command-name>) are shortened to "/name args".
// Every other <tag>...</tag> block is removed with its content; an unclosed
// tag loses only the tag itself.
func StripTags(s string) string {
	if m := commandNameRE.FindStringSubmatch(s); m != nil {
		name := m[1]
		if a := commandArgsRE.FindStringSubmatch(s); a != nil && strings.TrimSpace(a[1]) != "" {
			return name + " " + strings.TrimSpace(a[1])
		}
		return name
	}

	// Go regexp has no backreferences, so closing tags are found by hand.
	for {
		loc := openTagRE.FindStringSubmatchIndex(s)
		if loc == nil {
			break
		}
		closeTag := "</" + s[loc[2]:loc[3]] + ">"
		closeIdx := strings.Index(s[loc[1]:], closeTag)
		if closeIdx < 0 {
			s = s[:loc[0]] + s[loc[1]:]
			continue
		}
		end := loc[1] + closeIdx + len(closeTag)
		s = s[:loc[0]] + s[end:]
	}

	return strings.TrimSpace(s)
}
