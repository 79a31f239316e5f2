package simple

import (
	"fmt"

	"github.com/yaklabco/codelint/pkg/engine"
)

type tokenKind uint8

const (
	tokenWord tokenKind = iota
	tokenPunct
)

// token is a code token with its byte offset. Comments and string
// contents are consumed by the scanner and never surface as tokens;
// depth is the bracket nesting depth at the token's position.
type token struct {
	kind   tokenKind
	text   string
	offset int
	depth  int
}

type openBracket struct {
	char   byte
	offset int
}

var bracketPairs = map[byte]byte{')': '(', ']': '[', '}': '{'}

// scan tokenizes source text and reports structural errors: unbalanced
// brackets, unterminated strings, and unterminated block comments.
func scan(text string) ([]token, []*engine.AnalysisError) {
	var tokens []token
	var errs []*engine.AnalysisError
	var stack []openBracket

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			for i < len(text) && text[i] != '\n' {
				i++
			}

		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			start := i
			i += 2
			closed := false
			for i+1 < len(text) {
				if text[i] == '*' && text[i+1] == '/' {
					i += 2
					closed = true
					break
				}
				i++
			}
			if !closed {
				i = len(text)
				errs = append(errs, structuralError("unterminated block comment", start, 2))
			}

		case c == '\'' || c == '"' || c == '`':
			start := i
			i++
			closed := false
			for i < len(text) {
				if text[i] == '\\' && i+1 < len(text) {
					i += 2
					continue
				}
				if text[i] == c {
					i++
					closed = true
					break
				}
				// Plain strings do not span lines; templates do.
				if text[i] == '\n' && c != '`' {
					break
				}
				i++
			}
			if !closed {
				errs = append(errs, structuralError("unterminated string literal", start, 1))
			}

		case c == '(' || c == '[' || c == '{':
			stack = append(stack, openBracket{char: c, offset: i})
			i++

		case c == ')' || c == ']' || c == '}':
			want := bracketPairs[c]
			if len(stack) == 0 || stack[len(stack)-1].char != want {
				errs = append(errs, structuralError(fmt.Sprintf("unexpected closing %q", string(c)), i, 1))
			} else {
				stack = stack[:len(stack)-1]
			}
			i++

		case isWordStart(c):
			start := i
			for i < len(text) && isWordPart(text[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenWord, text: text[start:i], offset: start, depth: len(stack)})

		case c == '.' || c == ';' || c == '=':
			tokens = append(tokens, token{kind: tokenPunct, text: string(c), offset: i, depth: len(stack)})
			i++

		default:
			i++
		}
	}

	for _, open := range stack {
		errs = append(errs, structuralError(fmt.Sprintf("unclosed %q", string(open.char)), open.offset, 1))
	}
	return tokens, errs
}

func structuralError(message string, offset, length int) *engine.AnalysisError {
	return &engine.AnalysisError{
		Severity: engine.SeverityError,
		Code:     "parse",
		Message:  message,
		Labels:   []engine.LabeledSpan{{Offset: offset, Length: length, Message: message}},
	}
}

func isWordStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordPart(c byte) bool {
	return isWordStart(c) || (c >= '0' && c <= '9')
}
