package lexer

import "github.com/funvibe/enumc/internal/token"

// Stream adapts a Lexer into a pipeline.TokenStream by eagerly buffering
// every token up front — source files are small enough that lookahead
// via a slice index is simpler than a sliding window, and it lets Peek(n)
// look arbitrarily far ahead (the parser needs this to tell a generic
// struct literal `Name<T>{...}` apart from comparison operators).
type Stream struct {
	tokens []token.Token
	pos    int
}

// NewStream drains l completely and returns a Stream over its tokens.
func NewStream(l *Lexer) *Stream {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return &Stream{tokens: tokens}
}

func (s *Stream) Next() token.Token {
	tok := s.current()
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return tok
}

func (s *Stream) Peek(n int) []token.Token {
	start := s.pos
	end := start + n
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	if start >= end {
		return nil
	}
	return s.tokens[start:end]
}

func (s *Stream) current() token.Token {
	return s.tokens[s.pos]
}
