package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferPool = buffer.NewPool()

const (
	tokenLiteral = iota
	tokenTime
	tokenName
	tokenLevel
	tokenMessage
)

type token struct {
	kind int
	text string
}

// parseFormat splits a "%(field)s" template into an ordered token list.
// Literal text between fields is preserved verbatim; unrecognized fields
// are kept as literals.
func parseFormat(format string) []token {
	var tokens []token
	for len(format) > 0 {
		start := strings.Index(format, "%(")
		if start < 0 {
			tokens = append(tokens, token{kind: tokenLiteral, text: format})
			break
		}
		end := strings.Index(format[start:], ")s")
		if end < 0 {
			tokens = append(tokens, token{kind: tokenLiteral, text: format})
			break
		}
		end += start
		if start > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, text: format[:start]})
		}
		field := format[start+2 : end]
		switch field {
		case "asctime":
			tokens = append(tokens, token{kind: tokenTime})
		case "name":
			tokens = append(tokens, token{kind: tokenName})
		case "levelname":
			tokens = append(tokens, token{kind: tokenLevel})
		case "message":
			tokens = append(tokens, token{kind: tokenMessage})
		default:
			tokens = append(tokens, token{kind: tokenLiteral, text: format[start : end+2]})
		}
		format = format[end+2:]
	}
	return tokens
}

// lineEncoder renders records as plain text lines following a formatter
// template. Structured key/value context is appended after the templated
// portion as sorted key=value pairs.
type lineEncoder struct {
	*zapcore.MapObjectEncoder
	tokens     []token
	dateLayout string
}

var _ zapcore.Encoder = (*lineEncoder)(nil)

func newLineEncoder(f Formatter) *lineEncoder {
	format := f.Format
	if format == "" {
		format = DefaultFormat
	}
	layout := f.DateFormat
	if layout == "" {
		layout = DefaultDateFormat
	}
	return &lineEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		tokens:           parseFormat(format),
		dateLayout:       layout,
	}
}

func (e *lineEncoder) Clone() zapcore.Encoder {
	clone := &lineEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		tokens:           e.tokens,
		dateLayout:       e.dateLayout,
	}
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (e *lineEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := bufferPool.Get()

	for _, tok := range e.tokens {
		switch tok.kind {
		case tokenTime:
			line.AppendString(ent.Time.Format(e.dateLayout))
		case tokenName:
			line.AppendString(ent.LoggerName)
		case tokenLevel:
			line.AppendString(levelName(ent.Level))
		case tokenMessage:
			line.AppendString(ent.Message)
		default:
			line.AppendString(tok.text)
		}
	}

	if len(e.Fields) > 0 || len(fields) > 0 {
		extra := zapcore.NewMapObjectEncoder()
		for k, v := range e.Fields {
			extra.Fields[k] = v
		}
		for i := range fields {
			fields[i].AddTo(extra)
		}
		keys := make([]string, 0, len(extra.Fields))
		for k := range extra.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line.AppendByte(' ')
			line.AppendString(k)
			line.AppendByte('=')
			fmt.Fprintf(line, "%v", extra.Fields[k])
		}
	}

	line.AppendString(zapcore.DefaultLineEnding)
	return line, nil
}

// levelName reports the spelling used in emitted lines. WARNING is spelled
// out in full; everything else follows the upper-case zap name.
func levelName(l zapcore.Level) string {
	if l == zapcore.WarnLevel {
		return "WARNING"
	}
	return l.CapitalString()
}
