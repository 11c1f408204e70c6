// Package replace implements playlist rewrite rules written as
// PATTERN=>REPLACEMENT, e.g. `^M:=>/mnt/music` or `\\=>/`.
//
// PATTERN is a regular expression. A backslash escapes '=' and '\';
// before any other character it is kept, so regexp escapes such as \d
// work unchanged. An '=' not followed by '>' is literal text.
//
// REPLACEMENT is taken verbatim after the first unescaped "=>". It may
// refer to groups as \1 or \g<name>. \0 and three-digit escapes such as
// \101 are octal character codes. '$' has no special meaning.
package replace

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RuleCompileError reports a rule whose pattern or replacement is invalid.
type RuleCompileError struct {
	Rule string
	Err  error
}

func (e *RuleCompileError) Error() string {
	return fmt.Sprintf("invalid replacement rule %q: %v", e.Rule, e.Err)
}

func (e *RuleCompileError) Unwrap() error {
	return e.Err
}

// Rule is one compiled PATTERN=>REPLACEMENT pair.
type Rule struct {
	Source      string
	Pattern     *regexp.Regexp
	Replacement string

	template string // Replacement in regexp.Expand syntax
}

// Compile parses and compiles a single rule.
func Compile(src string) (Rule, error) {
	pattern, replacement := split(src)

	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, &RuleCompileError{Rule: src, Err: err}
	}
	tmpl, err := translateTemplate(replacement)
	if err != nil {
		return Rule{}, &RuleCompileError{Rule: src, Err: err}
	}

	return Rule{
		Source:      src,
		Pattern:     re,
		Replacement: replacement,
		template:    tmpl,
	}, nil
}

// Apply replaces every match of the rule's pattern in line.
func (r Rule) Apply(line string) string {
	return r.Pattern.ReplaceAllString(line, r.template)
}

// Rules is an ordered list of rules. Each rule sees the output of the
// previous one.
type Rules []Rule

// CompileAll compiles sources in order, stopping at the first invalid one.
func CompileAll(sources []string) (Rules, error) {
	rules := make(Rules, 0, len(sources))
	for _, src := range sources {
		r, err := Compile(src)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// ApplyLine runs every rule over line in order.
func (rs Rules) ApplyLine(line string) string {
	for _, r := range rs {
		line = r.Apply(line)
	}
	return line
}

// Apply runs every rule over every line and returns the rewritten lines.
func (rs Rules) Apply(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = rs.ApplyLine(line)
	}
	return out
}

// translateTemplate converts backslash group references into the
// ${name} form understood by regexp.Regexp.ReplaceAllString.
func translateTemplate(repl string) (string, error) {
	if !strings.ContainsAny(repl, `\$`) {
		return repl, nil
	}

	var sb strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c == '$' {
			sb.WriteString("$$")
			continue
		}
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(repl) {
			return "", errors.New("bad escape (end of replacement)")
		}
		i++
		switch c = repl[i]; {
		case c == '\\':
			sb.WriteByte('\\')
		case strings.IndexByte("abfnrtv", c) >= 0:
			sb.WriteByte(controlEscapes[c])
		case c == '0':
			j := i + 1
			for j < len(repl) && j < i+3 && isOctal(repl[j]) {
				j++
			}
			n, _ := strconv.ParseUint(repl[i:j], 8, 8)
			sb.WriteRune(rune(n))
			i = j - 1
		case c >= '1' && c <= '9':
			if i+2 < len(repl) && isOctal(c) && isOctal(repl[i+1]) && isOctal(repl[i+2]) {
				n, err := strconv.ParseUint(repl[i:i+3], 8, 8)
				if err != nil {
					return "", fmt.Errorf(`octal escape value \%s outside of range 0-0o377 at position %d`, repl[i:i+3], i-1)
				}
				sb.WriteRune(rune(n))
				i += 2
				continue
			}
			j := i + 1
			if j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
				j++
			}
			fmt.Fprintf(&sb, "${%s}", repl[i:j])
			i = j - 1
		case c == 'g':
			end := strings.IndexByte(repl[i:], '>')
			if i+1 >= len(repl) || repl[i+1] != '<' || end < 0 {
				return "", fmt.Errorf(`missing group name in \g<...> at position %d`, i-1)
			}
			name := repl[i+2 : i+end]
			if name == "" {
				return "", fmt.Errorf(`missing group name in \g<...> at position %d`, i-1)
			}
			fmt.Fprintf(&sb, "${%s}", name)
			i += end
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			return "", fmt.Errorf(`bad escape \%c at position %d`, c, i-1)
		default:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}

var controlEscapes = map[byte]byte{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }
