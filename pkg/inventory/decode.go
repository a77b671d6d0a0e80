// Copyright 2026 The OS-IAR-perms Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inventory

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type decoding struct {
	name string
	enc  encoding.Encoding // nil means strict UTF-8
}

// fallbackDecodings are tried in order until one yields text that parses as
// well-formed XML. Encoding declarations inside the files are unreliable, so
// the actual bytes decide. Latin-1 accepts any byte sequence, which means
// the chain as a whole only rejects files that never parse.
var fallbackDecodings = []decoding{
	{name: "utf-8"},
	{name: "utf-16", enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{name: "latin-1", enc: charmap.ISO8859_1},
	{name: "cp1252", enc: charmap.Windows1252},
}

// decodeAttempt decodes raw under one fallback entry. A leading byte-order
// mark belongs to the encoding and is consumed, never surfaced as content.
func decodeAttempt(d decoding, raw []byte) (string, bool) {
	if d.enc == nil {
		raw = bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(raw) {
			return "", false
		}
		return string(raw), true
	}
	out, err := d.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// splitDeclaration separates a leading XML declaration, including its line
// terminator, from the document body. The declaration is kept verbatim so
// output can reproduce it byte for byte; parsing only the body sidesteps
// parser complaints about declarations that disagree with the real encoding.
func splitDeclaration(text string) (decl, body string) {
	if !strings.HasPrefix(text, "<?xml") {
		return "", text
	}
	end := strings.Index(text, "?>")
	if end < 0 {
		// unterminated declaration, let the parser report it
		return "", text
	}
	end += len("?>")
	switch rest := text[end:]; {
	case strings.HasPrefix(rest, "\r\n"):
		end += 2
	case strings.HasPrefix(rest, "\n"):
		end++
	}
	return text[:end], text[end:]
}
