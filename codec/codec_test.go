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

package codec

import (
	"testing"

	"github.com/SnellerInc/pstring"
)

func fresh() *pstring.String { return pstring.NewString("", nil) }

func TestHexRoundTrip(t *testing.T) {
	t.Parallel()
	enc := fresh()
	if err := EncodeHex(enc, []byte("Hi!")); err != nil {
		t.Fatalf("EncodeHex: %v", err)
	}
	if enc.String() != "486921" {
		t.Fatalf("EncodeHex = %q", enc.String())
	}
	dec := fresh()
	if err := DecodeHex(dec, enc.Bytes()); err != nil {
		t.Fatalf("DecodeHex: %v", err)
	}
	if dec.String() != "Hi!" {
		t.Fatalf("DecodeHex = %q", dec.String())
	}
}

func TestHexRejectsOddLengthAndBadDigit(t *testing.T) {
	t.Parallel()
	if err := DecodeHex(fresh(), []byte("abc")); err != pstring.ErrInvalidArg {
		t.Fatalf("odd length err = %v", err)
	}
	if err := DecodeHex(fresh(), []byte("zz")); err != pstring.ErrInvalidArg {
		t.Fatalf("bad digit err = %v", err)
	}
}

func TestURLRoundTrip(t *testing.T) {
	t.Parallel()
	enc := fresh()
	if err := EncodeURL(enc, []byte("a b/c~d.e_f-g")); err != nil {
		t.Fatalf("EncodeURL: %v", err)
	}
	if enc.String() != "a%20b%2Fc~d.e_f-g" {
		t.Fatalf("EncodeURL = %q", enc.String())
	}
	dec := fresh()
	if err := DecodeURL(dec, enc.Bytes()); err != nil {
		t.Fatalf("DecodeURL: %v", err)
	}
	if dec.String() != "a b/c~d.e_f-g" {
		t.Fatalf("DecodeURL = %q", dec.String())
	}
}

func TestURLDecodeTrailingOrphanPercent(t *testing.T) {
	t.Parallel()
	dec := fresh()
	if err := DecodeURL(dec, []byte("abc%")); err != nil {
		t.Fatalf("trailing %%: %v", err)
	}
	if dec.String() != "abc%" {
		t.Fatalf("got %q", dec.String())
	}
}

func TestURLDecodeInvalidSequenceErrors(t *testing.T) {
	t.Parallel()
	if err := DecodeURL(fresh(), []byte("%zz rest")); err != pstring.ErrInvalidArg {
		t.Fatalf("err = %v, want ErrInvalidArg", err)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	t.Parallel()
	cases := [][]byte{[]byte(""), []byte("f"), []byte("fo"), []byte("foo"), []byte("foob"), []byte("fooba"), []byte("foobar")}
	want := []string{"", "Zg==", "Zm8=", "Zm9v", "Zm9vYg==", "Zm9vYmE=", "Zm9vYmFy"}
	for idx, c := range cases {
		enc := fresh()
		if err := EncodeBase64(enc, c); err != nil {
			t.Fatalf("EncodeBase64(%q): %v", c, err)
		}
		if enc.String() != want[idx] {
			t.Fatalf("EncodeBase64(%q) = %q, want %q", c, enc.String(), want[idx])
		}
		dec := fresh()
		if err := DecodeBase64(dec, enc.Bytes()); err != nil {
			t.Fatalf("DecodeBase64: %v", err)
		}
		if dec.String() != string(c) {
			t.Fatalf("DecodeBase64 round trip = %q, want %q", dec.String(), c)
		}
	}
}

func TestBase64URLAlphabetDiffers(t *testing.T) {
	t.Parallel()
	src := []byte{0xfb, 0xff, 0xbf}
	std := fresh()
	EncodeBase64(std, src)
	url := fresh()
	EncodeBase64URL(url, src)
	if std.String() == url.String() {
		t.Fatalf("expected std/url alphabets to diverge for %x", src)
	}
}

func TestCStringRoundTrip(t *testing.T) {
	t.Parallel()
	src := []byte("tab\tnl\n\x01hi\\\"")
	enc := fresh()
	if err := EncodeCString(enc, src); err != nil {
		t.Fatalf("EncodeCString: %v", err)
	}
	dec := fresh()
	if err := DecodeCString(dec, enc.Bytes()); err != nil {
		t.Fatalf("DecodeCString(%q): %v", enc.String(), err)
	}
	if dec.String() != string(src) {
		t.Fatalf("round trip = %q, want %q", dec.String(), src)
	}
}

func TestCStringDecodeUnicodeEscapes(t *testing.T) {
	t.Parallel()
	dec := fresh()
	if err := DecodeCString(dec, []byte(`é\U0001F600`)); err != nil {
		t.Fatalf("DecodeCString: %v", err)
	}
	if dec.String() != "é\U0001F600" {
		t.Fatalf("got %q", dec.String())
	}
}

func TestCStringDecodeRejectsSurrogate(t *testing.T) {
	t.Parallel()
	if err := DecodeCString(fresh(), []byte(`\ud800`)); err != pstring.ErrInvalidArg {
		t.Fatalf("err = %v, want ErrInvalidArg", err)
	}
}

func TestUTF8DecodeSanitizesIllFormed(t *testing.T) {
	t.Parallel()
	src := []byte{'a', 0xff, 'b'}
	dec := fresh()
	if err := DecodeUTF8(dec, src); err != nil {
		t.Fatalf("DecodeUTF8: %v", err)
	}
	want := "a�b"
	if dec.String() != want {
		t.Fatalf("got %q, want %q", dec.String(), want)
	}
}

func TestUTF8EncodeRejectsSurrogate(t *testing.T) {
	t.Parallel()
	if err := EncodeUTF8(fresh(), []rune{0xd800}); err != pstring.ErrInvalidArg {
		t.Fatalf("err = %v, want ErrInvalidArg", err)
	}
}

func TestUTF8EncodeDecodeRunesRoundTrip(t *testing.T) {
	t.Parallel()
	codepoints := []rune{0x24, 0x40, 0x1234, 0x10FFFF}
	enc := fresh()
	if err := EncodeUTF8(enc, codepoints); err != nil {
		t.Fatalf("EncodeUTF8: %v", err)
	}
	if enc.String() != "\x24\x40ሴ\U0010FFFF" {
		t.Fatalf("encoded = %q", enc.String())
	}
	got, err := DecodeUTF8Runes(enc.Bytes())
	if err != nil {
		t.Fatalf("DecodeUTF8Runes: %v", err)
	}
	if len(got) != len(codepoints) {
		t.Fatalf("DecodeUTF8Runes = %v, want %v", got, codepoints)
	}
	for i := range codepoints {
		if got[i] != codepoints[i] {
			t.Fatalf("DecodeUTF8Runes[%d] = %U, want %U", i, got[i], codepoints[i])
		}
	}
}

func TestUTF8DecodeRunesRejectsIllFormed(t *testing.T) {
	t.Parallel()
	if _, err := DecodeUTF8Runes([]byte{'a', 0xff, 'b'}); err != pstring.ErrInvalidArg {
		t.Fatalf("err = %v, want ErrInvalidArg", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	src := []byte("line1\nline2\t\"quoted\"\\")
	enc := fresh()
	if err := EncodeJSON(enc, src); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	dec := fresh()
	if err := DecodeJSON(dec, enc.Bytes()); err != nil {
		t.Fatalf("DecodeJSON(%q): %v", enc.String(), err)
	}
	if dec.String() != string(src) {
		t.Fatalf("round trip = %q, want %q", dec.String(), src)
	}
}

func TestJSONDecodeSurrogatePair(t *testing.T) {
	t.Parallel()
	dec := fresh()
	escaped := []byte{'\\', 'u', 'D', '8', '3', 'D', '\\', 'u', 'D', 'E', '0', '0'}
	if err := DecodeJSON(dec, escaped); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if dec.String() != "\U0001F600" {
		t.Fatalf("got %q", dec.String())
	}
}

func TestXMLRoundTrip(t *testing.T) {
	t.Parallel()
	src := []byte(`<a href="x">T & Co's</a>`)
	enc := fresh()
	if err := EncodeXML(enc, src); err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}
	dec := fresh()
	if err := DecodeXML(dec, enc.Bytes()); err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	if dec.String() != string(src) {
		t.Fatalf("round trip = %q, want %q", dec.String(), src)
	}
}

func TestXMLDecodeIdempotentForPlainText(t *testing.T) {
	t.Parallel()
	dec := fresh()
	plain := []byte("just plain text, no entities")
	if err := DecodeXML(dec, plain); err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	if dec.String() != string(plain) {
		t.Fatalf("got %q, want unchanged %q", dec.String(), plain)
	}
}

func TestXMLDecodeNumericEntities(t *testing.T) {
	t.Parallel()
	dec := fresh()
	if err := DecodeXML(dec, []byte("&#65;&#x42;")); err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	if dec.String() != "AB" {
		t.Fatalf("got %q", dec.String())
	}
}

func TestContentHashDeterministic(t *testing.T) {
	t.Parallel()
	a := ContentHash([]byte("same input"))
	b := ContentHash([]byte("same input"))
	if a != b {
		t.Fatalf("ContentHash not deterministic")
	}
	c := ContentHash([]byte("different input"))
	if a == c {
		t.Fatalf("ContentHash collided for distinct inputs (suspicious)")
	}
}
