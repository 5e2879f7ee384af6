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

package pfmt

import (
	"testing"
	"time"

	"github.com/SnellerInc/pstring"
	"github.com/SnellerInc/pstring/stream"
)

func render(t *testing.T, format string, args ...any) string {
	t.Helper()
	s := pstring.NewString("", nil)
	ss := stream.NewStringStream(s)
	if _, err := Fprintf(ss, format, args...); err != nil {
		t.Fatalf("Fprintf(%q): %v", format, err)
	}
	return s.String()
}

func TestLiteralRunsAndPercentEscape(t *testing.T) {
	t.Parallel()
	got := render(t, "no directives here")
	if got != "no directives here" {
		t.Fatalf("got %q", got)
	}
	got = render(t, "100%% done")
	if got != "100% done" {
		t.Fatalf("got %q", got)
	}
}

func TestPercentP(t *testing.T) {
	t.Parallel()
	payload := pstring.NewString("payload-bytes", nil)
	got := render(t, "value=%P!", payload)
	if got != "value=payload-bytes!" {
		t.Fatalf("got %q", got)
	}
}

func TestPercentD(t *testing.T) {
	t.Parallel()
	tm := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	got := render(t, "%D", "2006-01-02", tm)
	if got != "2024-03-05" {
		t.Fatalf("got %q", got)
	}
}

func TestIntWidthDirectives(t *testing.T) {
	t.Parallel()
	got := render(t, "%Iq/%Ub", int64(-7), uint8(250))
	if got != "-7/250" {
		t.Fatalf("got %q", got)
	}
}

func TestStdlibVerbForwarding(t *testing.T) {
	t.Parallel()
	got := render(t, "%05d|%s|%x", 42, "str", 255)
	if got != "00042|str|ff" {
		t.Fatalf("got %q", got)
	}
}

func TestMixedDirectiveSequence(t *testing.T) {
	t.Parallel()
	s := pstring.NewString("inner", nil)
	got := render(t, "[%P] count=%Id size=%s", s, int32(3), "tail")
	if got != "[inner] count=3 size=tail" {
		t.Fatalf("got %q", got)
	}
}

func TestMissingArgReportsInvalidArg(t *testing.T) {
	t.Parallel()
	ss := stream.NewStringStream(pstring.NewString("", nil))
	_, err := Fprintf(ss, "%d")
	if err != pstring.ErrInvalidArg {
		t.Fatalf("err = %v, want ErrInvalidArg", err)
	}
}
