package document

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"

	"github.com/cmmoran/langgen/pkg/tokens"
)

const (
	escapeToken = iota
	symbolToken
	quotedToken
	newlineToken
	textToken
)

var (
	escapeMatcher  = parsly.NewToken(escapeToken, "##", matcher.NewFragment("##"))
	symbolMatcher  = parsly.NewToken(symbolToken, "#{symbol}", matcher.NewSeqBlock("#{", "}"))
	quotedMatcher  = parsly.NewToken(quotedToken, `#"quoted"`, &quotedMatch{})
	newlineMatcher = parsly.NewToken(newlineToken, "Newline", matcher.NewByte('\n'))
	textMatcher    = parsly.NewToken(textToken, "Text", &textMatch{})
)

// textMatch matches a run of bytes up to the next directive or line break.
// A '#' that does not open a directive is plain text.
type textMatch struct{}

func (m *textMatch) Match(cursor *parsly.Cursor) int {
	in := cursor.Input
	pos := cursor.Pos
	for pos < cursor.InputSize {
		b := in[pos]
		if b == '\n' {
			break
		}
		if b == '#' && pos+1 < cursor.InputSize && isDirective(in[pos+1]) {
			break
		}
		pos++
	}
	return pos - cursor.Pos
}

func isDirective(b byte) bool {
	return b == '{' || b == '"' || b == '#'
}

// quotedMatch matches #"..." on a single line, honoring backslash escapes.
type quotedMatch struct{}

func (m *quotedMatch) Match(cursor *parsly.Cursor) int {
	in := cursor.Input
	pos := cursor.Pos
	if pos+1 >= cursor.InputSize || in[pos] != '#' || in[pos+1] != '"' {
		return 0
	}
	for i := pos + 2; i < cursor.InputSize; i++ {
		switch in[i] {
		case '\\':
			i++
		case '\n':
			return 0
		case '"':
			return i + 1 - pos
		}
	}
	return 0
}

type segmentKind int

const (
	segText segmentKind = iota
	segSymbol
	segQuoted
	segPush
	segLine
)

type segment struct {
	kind segmentKind
	text string
}

// scanBody splits a body template into segments. Lines holding only
// whitespace become a single blank line marker.
func scanBody(body string) ([]segment, error) {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	cursor := parsly.NewCursor("", []byte(body), 0)

	var out, line []segment
	endLine := func(eof bool) {
		if isBlank(line) {
			if !eof {
				out = append(out, segment{kind: segLine})
			}
		} else {
			if last := &line[len(line)-1]; last.kind == segText {
				last.text = strings.TrimRight(last.text, " \t")
			}
			out = append(out, line...)
			if !eof {
				out = append(out, segment{kind: segPush})
			}
		}
		line = line[:0]
	}

	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAny(escapeMatcher, symbolMatcher, quotedMatcher, newlineMatcher, textMatcher)
		switch matched.Code {
		case escapeToken:
			line = appendText(line, "#")
		case symbolToken:
			text := matched.Text(cursor)
			name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "#{"), "}"))
			if name == "" {
				return nil, errors.Wrapf(ErrInvalid, "body: empty symbol reference at offset %d", cursor.Pos-len(text))
			}
			line = append(line, segment{kind: segSymbol, text: name})
		case quotedToken:
			text := matched.Text(cursor)
			s, err := strconv.Unquote(text[1:])
			if err != nil {
				return nil, errors.Wrapf(ErrInvalid, "body: bad quoted string %s: %v", text, err)
			}
			line = append(line, segment{kind: segQuoted, text: s})
		case newlineToken:
			endLine(false)
		case textToken:
			line = appendText(line, matched.Text(cursor))
		default:
			return nil, errors.Wrapf(ErrInvalid, "body: %v", cursor.NewError(escapeMatcher, symbolMatcher, quotedMatcher))
		}
	}
	endLine(true)
	return out, nil
}

func appendText(line []segment, s string) []segment {
	if n := len(line); n > 0 && line[n-1].kind == segText {
		line[n-1].text += s
		return line
	}
	return append(line, segment{kind: segText, text: s})
}

func isBlank(line []segment) bool {
	for _, seg := range line {
		if seg.kind != segText || strings.TrimSpace(seg.text) != "" {
			return false
		}
	}
	return true
}

// References returns the distinct symbol names referenced by body, in order
// of first appearance.
func References(body string) ([]string, error) {
	segs, err := scanBody(body)
	if err != nil {
		return nil, err
	}
	var names []string
	seen := make(map[string]bool)
	for _, seg := range segs {
		if seg.kind == segSymbol && !seen[seg.text] {
			seen[seg.text] = true
			names = append(names, seg.text)
		}
	}
	return names, nil
}

// appendBody appends segs to toks, looking up symbols with lookup.
func appendBody[S any](toks *tokens.Tokens[S], segs []segment, lookup func(name string) (tokens.Item[S], error)) error {
	for _, seg := range segs {
		switch seg.kind {
		case segText:
			toks.Literal(seg.text)
		case segSymbol:
			it, err := lookup(seg.text)
			if err != nil {
				return err
			}
			toks.Append(it)
		case segQuoted:
			toks.Quoted(seg.text)
		case segPush:
			toks.Push()
		case segLine:
			toks.Line()
		}
	}
	return nil
}
