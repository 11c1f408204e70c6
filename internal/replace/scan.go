package replace

import "strings"

// scanState is the state of the PATTERN=>REPLACEMENT scanner.
type scanState int

const (
	stateNormal scanState = iota
	stateBackslash
	stateEquals
	stateDone
)

// scanner splits a rule into its pattern and the byte offset where the
// replacement text begins.
type scanner struct {
	pattern strings.Builder
}

// transitions is indexed by the current state. Each entry consumes one
// character and returns the next state.
var transitions = [...]func(s *scanner, c rune) scanState{
	stateNormal: func(s *scanner, c rune) scanState {
		switch c {
		case '\\':
			return stateBackslash
		case '=':
			return stateEquals
		}
		s.pattern.WriteRune(c)
		return stateNormal
	},
	stateBackslash: func(s *scanner, c rune) scanState {
		switch c {
		case '=':
			s.pattern.WriteByte('=')
		case '\\':
			// Escaped backslash: the pattern must match one literal backslash.
			s.pattern.WriteString(`\\`)
		default:
			s.pattern.WriteByte('\\')
			s.pattern.WriteRune(c)
		}
		return stateNormal
	},
	stateEquals: func(s *scanner, c rune) scanState {
		if c == '>' {
			return stateDone
		}
		s.pattern.WriteByte('=')
		s.pattern.WriteRune(c)
		return stateNormal
	},
}

// split scans src and returns the pattern source and the raw
// replacement text. Without a "=>" separator the whole string is the
// pattern and the replacement is empty. A dangling '\' or '=' at the end
// of src contributes nothing.
func split(src string) (pattern, replacement string) {
	var s scanner
	state := stateNormal
	for i, c := range src {
		state = transitions[state](&s, c)
		if state == stateDone {
			return s.pattern.String(), src[i+len(">"):]
		}
	}
	return s.pattern.String(), ""
}
