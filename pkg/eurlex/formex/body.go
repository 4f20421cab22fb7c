package formex

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/internalerr"
)

// dateSentinel replaces the whole date list when any date fails to
// normalize. DataDoc.Dates is never empty.
const dateSentinel = "None"

// Tokenizer splits raw text into word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// LocationMatcher counts geographic-name mentions in text.
type LocationMatcher interface {
	Match(text string) map[string]int
}

// ExtractOptions selects the optional passes run while building a DataDoc.
type ExtractOptions struct {
	Tokenizer  Tokenizer       // nil disables tokenization
	Locations  LocationMatcher // nil disables location matching
	LegalBases bool            // run the VISA citation pass
}

// DataDoc holds the extracted content of one Formex body document.
// Immutable after ParseData returns.
type DataDoc struct {
	Path       string
	Text       string   // all character data in document order
	Dates      []string // yyyy/mm/dd, or the sentinel list ["None"]
	Tokens     []string
	LegalBases []string
	Locations  map[string]int
}

// ParseData reads a body document, concatenates its text content and
// normalizes the instance dates, then runs whichever optional extractors
// are configured.
func ParseData(path string, opts ExtractOptions) (*DataDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}

	d, err := readData(f, path)
	f.Close()
	if err != nil {
		return nil, err
	}

	if opts.LegalBases {
		bases, err := ParseLegalBases(path)
		if err != nil {
			return nil, err
		}
		d.LegalBases = bases
	}
	if opts.Tokenizer != nil {
		d.Tokens = opts.Tokenizer.Tokenize(d.Text)
	}
	if opts.Locations != nil {
		d.Locations = opts.Locations.Match(d.Text)
	}

	return d, nil
}

func readData(r io.Reader, path string) (*DataDoc, error) {
	d := &DataDoc{Path: path}

	dec := xml.NewDecoder(r)

	var (
		stack    []string
		bufs     []*strings.Builder
		segments []string
		rawDates []string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrParse, path, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			bufs = append(bufs, &strings.Builder{})

		case xml.CharData:
			segments = append(segments, string(t))
			if len(bufs) > 0 {
				bufs[len(bufs)-1].Write(t)
			}

		case xml.EndElement:
			// One document can carry several instance dates.
			if t.Name.Local == tagDate && len(stack) == 3 && stack[1] == tagBibInstance {
				rawDates = append(rawDates, bufs[len(bufs)-1].String())
			}
			stack = stack[:len(stack)-1]
			bufs = bufs[:len(bufs)-1]
		}
	}

	d.Text = strings.Join(segments, "\n")
	d.Dates = normalizeDates(rawDates)
	return d, nil
}

// normalizeDates converts compact yyyymmdd dates to yyyy/mm/dd. A single
// unparsable date discards the whole list in favor of the sentinel; the
// list is never repaired partially and never left empty.
func normalizeDates(raw []string) []string {
	if len(raw) == 0 {
		return []string{dateSentinel}
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		t, err := time.Parse("20060102", r)
		if err != nil {
			return []string{dateSentinel}
		}
		out[i] = t.Format("2006/01/02")
	}
	return out
}
