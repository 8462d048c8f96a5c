package corpus

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseList 解析列表字面量形式的列，如 `['tomato', "red onion"]` 或 JSON 数组。
// 只接受由带引号字符串组成的列表，不会执行任何表达式。
// 空串、NaN、`[]` 都返回空列表。
func ParseList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "[]":
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("list literal: expected [...], got %q", s)
	}

	p := &listParser{src: s[1 : len(s)-1]}
	var out []string
	for {
		p.skipSpace()
		if p.done() {
			break
		}
		item, err := p.quoted()
		if err != nil {
			return nil, err
		}
		out = append(out, item)

		p.skipSpace()
		if p.done() {
			break
		}
		if p.src[p.pos] != ',' {
			return nil, fmt.Errorf("list literal: expected ',' at offset %d", p.pos+1)
		}
		p.pos++
	}
	return out, nil
}

type listParser struct {
	src string
	pos int
}

func (p *listParser) done() bool { return p.pos >= len(p.src) }

func (p *listParser) skipSpace() {
	for !p.done() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *listParser) quoted() (string, error) {
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", fmt.Errorf("list literal: expected quoted string at offset %d", p.pos+1)
	}
	p.pos++

	var b strings.Builder
	for !p.done() {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
	return "", fmt.Errorf("list literal: unterminated string")
}

func (p *listParser) escape(b *strings.Builder) error {
	p.pos++
	if p.done() {
		return fmt.Errorf("list literal: dangling escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '\\', '\'', '"', '/':
		b.WriteByte(c)
	case 'u':
		if p.pos+4 > len(p.src) {
			return fmt.Errorf("list literal: short \\u escape")
		}
		code, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
		if err != nil {
			return fmt.Errorf("list literal: bad \\u escape: %w", err)
		}
		b.WriteRune(rune(code))
		p.pos += 4
	default:
		// 未知转义按字面保留
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}
