package corpus

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// lineBreakTags open a new line in the flattened text. Header cells start
// relic refinement blocks, rotation labels, and mission names in the upstream
// document, so breaking on them puts each block on its own line while plain
// data cells glue together — preserving the no-space convention the
// extraction patterns rely on ("Lith A10 RelicUncommon (14.29%)").
var lineBreakTags = map[string]struct{}{
	"th":    {},
	"table": {},
	"tbody": {},
	"h1":    {},
	"h2":    {},
	"h3":    {},
	"h4":    {},
	"h5":    {},
	"h6":    {},
	"p":     {},
	"br":    {},
}

// skippedTags contribute no text.
var skippedTags = map[string]struct{}{
	"script": {},
	"style":  {},
	"head":   {},
}

// Flatten reduces the drop-table HTML to the flattened text the parsing core
// operates on. Text nodes are trimmed of surrounding whitespace so source
// formatting does not introduce lines of its own.
func Flatten(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	var b strings.Builder
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return b.String(), nil
			}
			return "", eris.Wrap(z.Err(), "corpus: tokenize html")

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if _, ok := skippedTags[tag]; ok {
				skip++
				continue
			}
			if _, ok := lineBreakTags[tag]; ok {
				b.WriteByte('\n')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if _, ok := skippedTags[string(name)]; ok && skip > 0 {
				skip--
			}

		case html.TextToken:
			if skip > 0 {
				continue
			}
			if text := strings.TrimSpace(string(z.Text())); text != "" {
				b.WriteString(text)
			}
		}
	}
}
