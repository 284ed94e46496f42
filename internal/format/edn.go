package format

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes EDN: maps with keyword keys, vectors, strings, numbers,
// booleans and nil. Values go through JSON first so struct tags decide the
// keys.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	e := ednEncoder{buf: &buf, pretty: pretty}
	e.value(x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	buf    *bytes.Buffer
	pretty bool
}

const ednIndent = "  "

func (e ednEncoder) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("nil")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case string:
		e.buf.WriteString(strconv.Quote(t))
	case float64:
		if t == float64(int64(t)) {
			e.buf.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		e.buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		e.seq('[', ']', len(t), depth, func(i int) { e.value(t[i], depth+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.seq('{', '}', len(keys), depth, func(i int) {
			e.buf.WriteString(ednKeyword(keys[i]))
			e.buf.WriteByte(' ')
			e.value(t[keys[i]], depth+1)
		})
	default:
		e.buf.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

// seq writes n elements between open and close. Pretty output puts one
// element per line.
func (e ednEncoder) seq(open, close byte, n, depth int, elem func(int)) {
	e.buf.WriteByte(open)
	if n == 0 {
		e.buf.WriteByte(close)
		return
	}
	for i := 0; i < n; i++ {
		switch {
		case e.pretty:
			e.buf.WriteByte('\n')
			e.buf.WriteString(strings.Repeat(ednIndent, depth+1))
		case i > 0:
			e.buf.WriteByte(' ')
		}
		elem(i)
	}
	if e.pretty {
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat(ednIndent, depth))
	}
	e.buf.WriteByte(close)
}

// ednKeyword turns a JSON key into a keyword, replacing characters EDN
// symbols cannot hold with '-'.
func ednKeyword(k string) string {
	var b strings.Builder
	b.WriteByte(':')
	for _, r := range strings.TrimSpace(k) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("*+!-_?.<>=", r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('-')
	}
	if b.Len() == 1 {
		b.WriteByte('_')
	}
	return b.String()
}
