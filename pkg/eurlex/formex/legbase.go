package formex

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/internalerr"
)

// ParseLegalBases extracts the VISA citation blocks of a body document in
// document order. Each citation is the concatenated text of one VISA
// element, nested markup included. Repeated citations are kept as-is.
func ParseLegalBases(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}
	defer f.Close()

	return readLegalBases(f, path)
}

func readLegalBases(r io.Reader, path string) ([]string, error) {
	var (
		bases   []string
		current strings.Builder
		depth   int // element depth, counted only while inside a VISA
		inVisa  bool
	)

	dec := xml.NewDecoder(r)
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
			if inVisa {
				depth++
			} else if t.Name.Local == tagVisa {
				inVisa = true
				depth = 0
				current.Reset()
			}
		case xml.CharData:
			if inVisa {
				current.Write(t)
			}
		case xml.EndElement:
			if !inVisa {
				continue
			}
			if depth == 0 {
				bases = append(bases, current.String())
				inVisa = false
			} else {
				depth--
			}
		}
	}

	return bases, nil
}
