// Package classify implements the two act-level predicates that gate
// inclusion in the corpus: decision-type filtering on the legal value and
// Common Foreign and Security Policy (CFSP) detection.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/formex"
)

// decisionValues are the LEGAL.VALUE codes marking procedural decisions,
// covering the EEA, implementing and delegated spelling variants.
var decisionValues = map[string]struct{}{
	"DEC":      {},
	"DEC.EEA":  {},
	"DEC_IMPL": {},
	"DECIMP":   {},
	"DEC_DEL":  {},
	"DECDEL":   {},
	"DECIMPL":  {},
}

// cfspOverrides lists documents manually marked as CFSP even though they
// satisfy none of the other conditions.
var cfspOverrides = map[string]struct{}{
	"L_2009009EN.01005101.doc.xml": {},
	"L_2010201EN.01003001.doc.xml": {},
	"L_2014014EN.01000101.doc.xml": {},
	"L_2014205EN.01000201.doc.xml": {},
	"L_2016074EN.01000101.doc.xml": {},
	"L_2016300EN.01000101.doc.xml": {},
	"L_2017328EN.01003201.doc.xml": {},
}

// cfspAuthors are the issuing bodies whose acts are CFSP by definition.
var cfspAuthors = map[string]struct{}{
	"PSC":  {},
	"EEAS": {},
	"PESC": {},
}

const (
	cfspTitleMarker = "cfsp"
	cfspComCode     = "CFSP"
)

// IsDecision reports whether the act is a decision-type act. It is the
// cheap pre-filter applied before any body document is parsed.
func IsDecision(m *formex.MetaDoc) bool {
	_, ok := decisionValues[m.LegalValue]
	return ok
}

// IsCFSP reports whether the act falls under the Common Foreign and
// Security Policy. Any single condition is sufficient: the manual override
// list, the title marker, the classification code, or a known issuing body
// among the authors.
func IsCFSP(m *formex.MetaDoc) bool {
	if _, ok := cfspOverrides[filepath.Base(m.Path)]; ok {
		return true
	}
	if strings.Contains(strings.ToLower(m.Title), cfspTitleMarker) {
		return true
	}
	if m.Com == cfspComCode {
		return true
	}
	for _, a := range m.Authors {
		if _, ok := cfspAuthors[a]; ok {
			return true
		}
	}
	return false
}
