package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/formex"
	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/internalerr"
)

func metaDoc(title, author, legval, bodyFile string) string {
	return fmt.Sprintf(`<PUBLICATION>
<BIB.DOC>
<PAPER><TITLE>%s</TITLE></PAPER>
<AUTHOR>%s</AUTHOR>
<COM>CFSP</COM>
<COLL>L</COLL>
<DOC.MAIN.PUB>
<LEGAL.VALUE>%s</LEGAL.VALUE>
<REF.PHYS FILE="%s"/>
</DOC.MAIN.PUB>
</BIB.DOC>
</PUBLICATION>`, title, author, legval, bodyFile)
}

const bodyDoc = `<GENERAL>
<BIB.INSTANCE><DATE>20110413</DATE></BIB.INSTANCE>
<CONTENTS><P>Measures concerning Sudan.</P></CONTENTS>
</GENERAL>`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// buildCorpusDir creates one classifying act, one malformed metadata
// document, one non-decision act and one decision act outside CFSP.
func buildCorpusDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write(t, dir, "L_2011100EN.01000101.doc.xml",
		metaDoc("Council Decision 2011/101", "CONSIL", "DEC", "L_2011100EN.01000101.xml"))
	write(t, dir, "L_2011100EN.01000101.xml", bodyDoc)

	write(t, dir, "L_2011200EN.01000101.doc.xml", `<PUBLICATION><BIB.DOC>`)

	// Regulation: fails the decision pre-filter, its body is never
	// needed (the referenced file does not exist).
	write(t, dir, "L_2011300EN.01000101.doc.xml",
		metaDoc("Council Regulation", "CONSIL", "REG", "missing.xml"))

	// Decision outside CFSP: fails the final gate.
	other := metaDoc("Commission Decision on tariffs", "COM", "DEC", "L_2011400EN.01000101.xml")
	other = strings.Replace(other, "<COM>CFSP</COM>", "<COM>AGRI</COM>", 1)
	write(t, dir, "L_2011400EN.01000101.doc.xml", other)
	write(t, dir, "L_2011400EN.01000101.xml", bodyDoc)

	return dir
}

func TestLoadResilientToBadFiles(t *testing.T) {
	ds, err := Load(buildCorpusDir(t), Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Four candidates discovered, one classifying item kept.
	if len(ds.Files) != 4 {
		t.Errorf("Expected 4 candidate files, got %d", len(ds.Files))
	}
	if ds.Len() != 1 {
		t.Fatalf("Expected a one-item corpus, got %d", ds.Len())
	}

	it := ds.At(0)
	if it.Meta.Title != "Council Decision 2011/101" {
		t.Errorf("Wrong item survived: %q", it.Meta.Title)
	}
	if it.Date() != "2011/04/13" {
		t.Errorf("Effective date = %q", it.Date())
	}
}

func TestLoadManifest(t *testing.T) {
	dir := buildCorpusDir(t)

	manifest := write(t, t.TempDir(), "files.txt",
		"  "+filepath.Join(dir, "L_2011100EN.01000101.doc.xml")+"  \n\n")

	ds, err := Load(manifest, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Manifest lines take precedence over any directory walk: only the
	// listed file is considered.
	if len(ds.Files) != 1 {
		t.Errorf("Expected 1 candidate from the manifest, got %d", len(ds.Files))
	}
	if ds.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", ds.Len())
	}
}

func TestLoadMissingRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent"), Options{})
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadEmptyRoot(t *testing.T) {
	_, err := Load("", Options{})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestHeaderLine(t *testing.T) {
	ds, err := Load(buildCorpusDir(t), Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	header := ds.At(0).Header()
	fields := strings.Split(header, ",")
	if len(fields) != 5 {
		t.Fatalf("Header has %d fields: %q", len(fields), header)
	}
	if fields[1] != "CONSIL" || fields[2] != "L" || fields[3] != "DEC" || fields[4] != "2011/04/13" {
		t.Errorf("Unexpected header: %q", header)
	}
}

func TestHeaderAbsentLegalValue(t *testing.T) {
	it := &Item{
		Meta: &formex.MetaDoc{
			Path:    "L_2011500EN.01000101.doc.xml",
			Authors: []string{"CONSIL", "PSC"},
			Coll:    "L",
		},
		Main: &formex.DataDoc{Dates: []string{"None"}},
	}

	header := it.Header()
	want := "L_2011500EN.01000101.doc.xml,CONSIL_PSC,L,None,None"
	if header != want {
		t.Errorf("Header = %q, want %q", header, want)
	}
}

func TestDumpModes(t *testing.T) {
	ds, err := Load(buildCorpusDir(t), Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var headers strings.Builder
	if err := ds.Dump(&headers, DumpHeaders); err != nil {
		t.Fatalf("Dump headers failed: %v", err)
	}
	if !strings.Contains(headers.String(), "DEC") {
		t.Errorf("Headers dump missing fields: %q", headers.String())
	}

	var text strings.Builder
	if err := ds.Dump(&text, DumpText); err != nil {
		t.Fatalf("Dump text failed: %v", err)
	}
	for _, field := range []string{"FILE_PATH: ", "DATE: 2011/04/13", "TITLE: ", "LEGVAL: DEC", "COLL: L", "AUTHOR: CONSIL", "TEXT: "} {
		if !strings.Contains(text.String(), field) {
			t.Errorf("Text dump missing %q", field)
		}
	}

	if err := ds.Dump(&text, DumpMode("csv")); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Unknown mode should fail with ErrInvalidConfig, got %v", err)
	}
}

func TestDumpToFile(t *testing.T) {
	ds, err := Load(buildCorpusDir(t), Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "stats.csv")
	if err := ds.DumpToFile(out, DumpHeaders); err != nil {
		t.Fatalf("DumpToFile failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("Headers export is empty")
	}
}

func TestSubDocumentsOptIn(t *testing.T) {
	dir := t.TempDir()

	meta := `<PUBLICATION>
<BIB.DOC>
<PAPER><TITLE>Council Decision 2011/101</TITLE></PAPER>
<AUTHOR>PSC</AUTHOR>
<DOC.MAIN.PUB>
<LEGAL.VALUE>DEC</LEGAL.VALUE>
<REF.PHYS FILE="main.xml"/>
</DOC.MAIN.PUB>
<DOC.SUB.PUB>
<REF.PHYS FILE="sub.xml"/>
</DOC.SUB.PUB>
</BIB.DOC>
</PUBLICATION>`
	write(t, dir, "L_2011600EN.01000101.doc.xml", meta)
	write(t, dir, "main.xml", bodyDoc)
	write(t, dir, "sub.xml", bodyDoc)

	ds, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("Expected 1 item, got %d", ds.Len())
	}
	it := ds.At(0)
	// References are retained, but sub documents are not materialized by
	// default.
	if len(it.Meta.SubPubs) != 1 {
		t.Errorf("SubPubs references = %d, want 1", len(it.Meta.SubPubs))
	}
	if len(it.Subs) != 0 {
		t.Errorf("Sub documents materialized without opt-in: %d", len(it.Subs))
	}

	ds, err = Load(dir, Options{IncludeSubDocs: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(ds.At(0).Subs); got != 1 {
		t.Errorf("Sub documents = %d, want 1", got)
	}
}

func TestTextSeparator(t *testing.T) {
	if !strings.Contains(textSeparator, strings.Repeat("%", 50)) {
		t.Error("Item separator should be the fixed visual delimiter")
	}
}
