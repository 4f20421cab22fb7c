// Package formex extracts metadata and text from Formex-encoded EU legal
// documents. Metadata documents are parsed in a single streaming pass with
// an explicit element-name stack, so even very large documents stay cheap.
package formex

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/internalerr"
)

// Formex tag vocabulary used by the extraction state machine.
const (
	tagTitle       = "TITLE"
	tagPaper       = "PAPER"
	tagAuthor      = "AUTHOR"
	tagCom         = "COM"
	tagColl        = "COLL"
	tagLegalValue  = "LEGAL.VALUE"
	tagRefPhys     = "REF.PHYS"
	tagMainPub     = "DOC.MAIN.PUB"
	tagSubPub      = "DOC.SUB.PUB"
	tagBibInstance = "BIB.INSTANCE"
	tagDate        = "DATE"
	tagVisa        = "VISA"

	attrFile = "FILE"
)

// MetaDoc holds the bibliographic fields of one Formex metadata document.
// It is fully constructed by ParseMeta and never mutated afterwards.
type MetaDoc struct {
	Path       string
	Authors    []string // document order, duplicates allowed
	Com        string   // classification code
	Coll       string   // collection code
	LegalValue string   // only when carried by the main publication
	Title      string
	MainPub    string   // main body document, resolved against Path's directory
	SubPubs    []string // sub body documents, document order
}

// ParseMeta reads a metadata document and extracts the fields of interest.
func ParseMeta(path string) (*MetaDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}
	defer f.Close()

	return readMeta(f, path)
}

func readMeta(r io.Reader, path string) (*MetaDoc, error) {
	m := &MetaDoc{Path: path}
	dir := filepath.Dir(path)

	dec := xml.NewDecoder(r)

	var (
		stack []string
		bufs  []*strings.Builder // direct character data per open element
		title strings.Builder
		// Stack depth at which the currently captured TITLE element was
		// opened; 0 when no capture is active.
		titleAt int
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

			switch t.Name.Local {
			case tagTitle:
				// Titles only count when nested anywhere under the
				// publication header.
				if titleAt == 0 && contains(stack[:len(stack)-1], tagPaper) {
					titleAt = len(stack)
				}
			case tagRefPhys:
				file := attr(t, attrFile)
				if file == "" {
					break
				}
				switch parent(stack) {
				case tagMainPub:
					m.MainPub = filepath.Join(dir, file)
				case tagSubPub:
					m.SubPubs = append(m.SubPubs, filepath.Join(dir, file))
				}
			}

		case xml.CharData:
			if len(bufs) > 0 {
				bufs[len(bufs)-1].Write(t)
			}
			if titleAt > 0 {
				title.Write(t)
			}

		case xml.EndElement:
			text := bufs[len(bufs)-1].String()
			switch t.Name.Local {
			case tagAuthor:
				if text != "" {
					m.Authors = append(m.Authors, text)
				}
			case tagCom:
				m.Com = text
			case tagColl:
				m.Coll = text
			case tagLegalValue:
				// Only the main publication's legal value is
				// decision-defining; sub publications carry their own.
				if parent(stack) == tagMainPub {
					m.LegalValue = text
				}
			case tagTitle:
				if titleAt == len(stack) {
					titleAt = 0
				}
			}
			stack = stack[:len(stack)-1]
			bufs = bufs[:len(bufs)-1]
		}
	}

	m.Title = title.String()
	return m, nil
}

// parent returns the name of the enclosing element, given a stack whose top
// is the current element.
func parent(stack []string) string {
	if len(stack) < 2 {
		return ""
	}
	return stack[len(stack)-2]
}

func contains(stack []string, name string) bool {
	for _, s := range stack {
		if s == name {
			return true
		}
	}
	return false
}

func attr(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
