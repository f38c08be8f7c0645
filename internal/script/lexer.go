package script

import (
	"fmt"
	"strconv"
	"strings"
)

// Lex classifies one line of script text into nodes.
func Lex(src, file string, number int) (*Line, error) {
	line := &Line{File: file, Number: number}
	src = stripComment(src)
	for i := 0; i < len(src); {
		ch := src[i]
		switch {
		case isSpace(ch):
			i++
		case isDigit(ch) || (ch == '.' && i+1 < len(src) && isDigit(src[i+1])):
			n, next, err := lexNumber(src, i)
			if err != nil {
				return nil, line.Errorf("%v", err)
			}
			line.Nodes = append(line.Nodes, n)
			i = next
		case ch == ':' && i+1 < len(src) && isDigit(src[i+1]):
			end := scanTimestamp(src, i)
			line.Nodes = append(line.Nodes, Node{Kind: Timestamp, Text: src[i:end]})
			i = end
		case isAlpha(ch) || ch == '_':
			word, next := parseWordToken(src, i)
			i = next
			kind, ok := Keyword(word)
			if !ok {
				line.Nodes = append(line.Nodes, Node{Kind: String, Text: word})
				continue
			}
			if kind == Loop {
				j := skipSpaces(src, i)
				label := ""
				if j < len(src) && (isAlpha(src[j]) || src[j] == '_') {
					label, i = parseWordToken(src, j)
				}
				line.Nodes = append(line.Nodes, Node{Kind: Loop, Text: label})
				continue
			}
			line.Nodes = append(line.Nodes, Node{Kind: kind})
		case ch == '"':
			end := strings.IndexByte(src[i+1:], '"')
			if end < 0 {
				return nil, line.Errorf("unterminated filename at %d", i)
			}
			line.Nodes = append(line.Nodes, Node{Kind: Filename, Text: src[i+1 : i+1+end]})
			i += end + 2
		default:
			kind, ok := punctuation[ch]
			if !ok {
				return nil, line.Errorf("unexpected character %q at %d", ch, i)
			}
			line.Nodes = append(line.Nodes, Node{Kind: kind})
			i++
		}
	}
	return line, nil
}

var punctuation = map[byte]Kind{
	',': Comma,
	'=': Assign,
	'+': Plus,
	'-': Minus,
	'*': Mult,
	'/': Div,
	'%': Mod,
}

func stripComment(src string) string {
	for i := 0; i < len(src); i++ {
		switch {
		case src[i] == '"':
			if end := strings.IndexByte(src[i+1:], '"'); end >= 0 {
				i += end + 1
			}
		case src[i] == '#':
			return src[:i]
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			return src[:i]
		}
	}
	return src
}

func lexNumber(src string, at int) (Node, int, error) {
	i := at
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == ':' && i+1 < len(src) && isDigit(src[i+1]) {
		end := scanTimestamp(src, at)
		return Node{Kind: Timestamp, Text: src[at:end]}, end, nil
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	v, err := strconv.ParseFloat(src[at:i], 64)
	if err != nil {
		return Node{}, at, fmt.Errorf("bad number %q at %d", src[at:i], at)
	}
	if i < len(src) && src[i] == '%' {
		return Node{Kind: Number, Value: v / 100}, i + 1, nil
	}
	if i < len(src) && isAlpha(src[i]) {
		unit, next := parseWordToken(src, i)
		switch strings.ToLower(unit) {
		case "hz", "s":
		case "ms":
			v /= 1000
		case "p":
			if v != 0 {
				v = 1 / v
			} else {
				v = 1
			}
		default:
			return Node{}, at, fmt.Errorf("unknown unit %q at %d", unit, i)
		}
		i = next
	}
	return Node{Kind: Number, Value: v}, i, nil
}

func scanTimestamp(src string, at int) int {
	i := at
	for i < len(src) && (isDigit(src[i]) || src[i] == ':' || src[i] == '.') {
		i++
	}
	return i
}

// TimestampSeconds converts h:m:s, m:s or :s into seconds.
func TimestampSeconds(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("bad timestamp %q", ts)
	}
	total := 0.0
	for _, p := range parts {
		v := 0.0
		if p != "" {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return 0, fmt.Errorf("bad timestamp %q", ts)
			}
			v = f
		}
		total = total*60 + v
	}
	return total, nil
}

func parseWordToken(src string, at int) (string, int) {
	i := at
	for i < len(src) {
		ch := src[i]
		if isAlpha(ch) || isDigit(ch) || ch == '_' {
			i++
			continue
		}
		break
	}
	return src[at:i], i
}

func skipSpaces(src string, at int) int {
	for at < len(src) && isSpace(src[at]) {
		at++
	}
	return at
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isSpace(b byte) bool { return b == ' ' || b == '\n' || b == '\r' || b == '\t' }
