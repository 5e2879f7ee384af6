// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package pfmt implements the concatenative printf described in
// §4.6: a directive walker that special-cases a handful of verbs
// (%P, %D, %?, %I*, %U*) and forwards every other verb to the stdlib
// fmt formatter, writing everything through a stream.Stream.
package pfmt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/SnellerInc/pstring"
	"github.com/SnellerInc/pstring/stream"
)

// Fprintf writes a formatted string to w, returning the number of
// bytes written. format's literal runs are copied verbatim; each '%'
// directive is dispatched one at a time, exactly as a single pass.
func Fprintf(w stream.Stream, format string, args ...any) (int, error) {
	p := &printer{w: w, format: format, args: args}
	return p.run()
}

type printer struct {
	w      stream.Stream
	format string
	args   []any
	argi   int
	total  int
}

func (p *printer) next() (any, error) {
	if p.argi >= len(p.args) {
		return nil, pstring.ErrInvalidArg
	}
	v := p.args[p.argi]
	p.argi++
	return v, nil
}

func (p *printer) write(b []byte) error {
	n, err := p.w.Write(b)
	p.total += n
	return err
}

func (p *printer) writeString(s string) error {
	return p.write([]byte(s))
}

func (p *printer) run() (int, error) {
	i := 0
	f := p.format
	for i < len(f) {
		if f[i] != '%' {
			j := i
			for j < len(f) && f[j] != '%' {
				j++
			}
			if err := p.write([]byte(f[i:j])); err != nil {
				return p.total, err
			}
			i = j
			continue
		}
		if i+1 < len(f) && f[i+1] == '%' {
			if err := p.write([]byte{'%'}); err != nil {
				return p.total, err
			}
			i += 2
			continue
		}
		var err error
		i, err = p.directive(i)
		if err != nil {
			return p.total, err
		}
	}
	return p.total, nil
}

// directive dispatches the directive starting at format[i] == '%'
// and returns the index just past it.
func (p *printer) directive(i int) (int, error) {
	f := p.format
	start := i
	i++ // skip '%'
	if i >= len(f) {
		return i, p.writeString(f[start:])
	}
	switch f[i] {
	case 'P':
		v, err := p.next()
		if err != nil {
			return i, err
		}
		s, ok := v.(*pstring.String)
		if !ok {
			return i, pstring.ErrInvalidArg
		}
		return i + 1, p.write(s.Bytes())
	case 'D':
		layout, err := p.next()
		if err != nil {
			return i, err
		}
		tv, err := p.next()
		if err != nil {
			return i, err
		}
		ls, ok := layout.(string)
		tm, ok2 := tv.(time.Time)
		if !ok || !ok2 {
			return i, pstring.ErrInvalidArg
		}
		return i + 1, p.writeString(tm.Format(ls))
	case '?':
		tv, err := p.next()
		if err != nil {
			return i, err
		}
		t, ok := tv.(stream.TypeID)
		if !ok {
			return i, pstring.ErrInvalidArg
		}
		val, err := p.next()
		if err != nil {
			return i, err
		}
		return i + 1, p.w.Serialize(t, val)
	case 'I':
		return p.intWidth(i+1, true)
	case 'U':
		return p.intWidth(i+1, false)
	default:
		return p.stdlibVerb(start, i)
	}
}

// intWidth handles the width letter following %I or %U.
func (p *printer) intWidth(i int, signed bool) (int, error) {
	f := p.format
	if i >= len(f) {
		return i, pstring.ErrInvalidArg
	}
	width := f[i]
	v, err := p.next()
	if err != nil {
		return i, err
	}
	if signed {
		n, err := asInt64(v)
		if err != nil {
			return i, err
		}
		if _, ok := signedWidths[width]; !ok {
			return i, pstring.ErrInvalidArg
		}
		return i + 1, p.writeString(strconv.FormatInt(n, 10))
	}
	n, err := asUint64(v)
	if err != nil {
		return i, err
	}
	if _, ok := unsignedWidths[width]; !ok {
		return i, pstring.ErrInvalidArg
	}
	return i + 1, p.writeString(strconv.FormatUint(n, 10))
}

// signed width letters: b/w/d/q/m/p/P for 8/16/32/64/intmax/intptr/ptrdiff.
var signedWidths = map[byte]bool{'b': true, 'w': true, 'd': true, 'q': true, 'm': true, 'p': true, 'P': true}

// unsigned width letters: b/w/d/q/m/p/s for 8/16/32/64/intmax/intptr/size_t.
var unsignedWidths = map[byte]bool{'b': true, 'w': true, 'd': true, 'q': true, 'm': true, 'p': true, 's': true}

// stdlibVerb forwards an unrecognized directive to fmt.Sprintf. Go's
// Sprintf always sizes its own result buffer correctly, so unlike the
// C snprintf-then-retry pattern this never needs a second pass.
func (p *printer) stdlibVerb(start, i int) (int, error) {
	f := p.format
	for i < len(f) && !isVerbLetter(f[i]) {
		i++
	}
	if i >= len(f) {
		return len(f), p.writeString(f[start:])
	}
	i++ // include the verb letter
	token := f[start:i]
	v, err := p.next()
	if err != nil {
		return i, err
	}
	return i, p.writeString(fmt.Sprintf(token, v))
}

func isVerbLetter(c byte) bool {
	switch c {
	case 'v', 'T', 't', 'b', 'c', 'd', 'o', 'O', 'q', 'x', 'X', 'U',
		'e', 'E', 'f', 'F', 'g', 'G', 's', 'p':
		return true
	}
	return false
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, pstring.ErrInvalidArg
	}
}

func asUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case uintptr:
		return uint64(n), nil
	default:
		return 0, pstring.ErrInvalidArg
	}
}
