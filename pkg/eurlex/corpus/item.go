package corpus

import (
	"strings"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/formex"
)

// legvalAbsent marks a missing legal value in the headers export.
const legvalAbsent = "None"

// Item is one corpus element: a metadata document paired with its main
// body document and, when sub-document materialization is enabled, the
// parsed sub documents. Each Item exclusively owns its documents.
type Item struct {
	Meta *formex.MetaDoc
	Main *formex.DataDoc
	Subs []*formex.DataDoc
}

// Date returns the effective date of the item, the first date of its main
// document. Main.Dates is never empty.
func (it *Item) Date() string {
	return it.Main.Dates[0]
}

// Header renders the one-line summary used by the headers export:
// path, authors joined by underscores, collection code, legal value (or
// the absent marker) and the effective date, comma-joined.
func (it *Item) Header() string {
	legval := it.Meta.LegalValue
	if legval == "" {
		legval = legvalAbsent
	}
	fields := []string{
		it.Meta.Path,
		strings.Join(it.Meta.Authors, "_"),
		it.Meta.Coll,
		legval,
		it.Date(),
	}
	return strings.Join(fields, ",")
}

// Text renders the item as a human-readable multi-field block.
func (it *Item) Text() string {
	var b strings.Builder
	b.WriteString("FILE_PATH: " + it.Meta.Path + "\n\n")
	b.WriteString("DATE: " + it.Date() + "\n\n")
	b.WriteString("TITLE: " + it.Meta.Title + "\n\n")
	b.WriteString("LEGVAL: " + it.Meta.LegalValue + "\n\n")
	b.WriteString("COLL: " + it.Meta.Coll + "\n\n")
	for _, author := range it.Meta.Authors {
		b.WriteString("AUTHOR: " + author + "\n\n")
	}
	b.WriteString("TEXT: " + it.Main.Text + "\n\n")
	b.WriteString("TOKENS: " + strings.Join(it.Main.Tokens, " ") + "\n\n")
	return b.String()
}
