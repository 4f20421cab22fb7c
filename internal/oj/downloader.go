// Package oj acquires the Official Journal Formex archives published on
// data.europa.eu: it lists the years available for a language, downloads
// the per-year archive and unpacks its two levels of ZIP nesting into the
// directory tree the corpus assembler scans.
package oj

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// defaultBaseURL is the public repository of Official Journal Formex
// archives.
const defaultBaseURL = "http://data.europa.eu/euodp/repository/ec/publ/op-jo-formex/"

// archivePattern matches per-year archive names in the repository index,
// e.g. JOx_FMX_EN_2017.ZIP.
var archivePattern = regexp.MustCompile(`JOx_FMX_[A-Z]{2}_(\d{4})\.ZIP`)

// Downloader fetches Official Journal archives.
type Downloader struct {
	BaseURL string
	Client  *http.Client
}

// New creates a Downloader against the public repository.
func New() *Downloader {
	return &Downloader{
		BaseURL: defaultBaseURL,
		Client:  http.DefaultClient,
	}
}

// AvailableYears lists the years for which archives exist for the given
// language, in ascending order.
func (d *Downloader) AvailableYears(lang string) ([]int, error) {
	lang = strings.ToUpper(lang)

	resp, err := d.Client.Get(d.BaseURL + "JOx_FMX_" + lang)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d listing years for %s", resp.StatusCode, lang)
	}

	return parseYears(resp.Body)
}

// parseYears extracts archive years from the repository index page.
func parseYears(r io.Reader) ([]int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key != "href" {
					continue
				}
				if m := archivePattern.FindStringSubmatch(a.Val); m != nil {
					year, err := strconv.Atoi(m[1])
					if err == nil {
						seen[year] = struct{}{}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// Download fetches the archive for one language and year into outDir and
// unpacks it. The parent archive contains one ZIP per journal issue; each
// is extracted and removed, leaving the bare document tree. The parent
// archive itself is kept so interrupted runs can resume without
// re-downloading.
func (d *Downloader) Download(outDir, lang string, year int) error {
	lang = strings.ToUpper(lang)
	stem := fmt.Sprintf("JOx_FMX_%s_%d", lang, year)

	yearDir := filepath.Join(outDir, lang, stem)
	if err := os.MkdirAll(yearDir, 0755); err != nil {
		return err
	}

	parentZip := filepath.Join(outDir, lang, stem+".ZIP")
	if !isZipValid(parentZip) {
		url := d.BaseURL + "JOx_FMX_" + lang + "/" + stem + ".ZIP"
		if err := d.fetch(url, parentZip); err != nil {
			return err
		}
	}

	if err := extractZip(parentZip, yearDir); err != nil {
		return err
	}

	// Second level: one ZIP per journal issue.
	inner, err := filepath.Glob(filepath.Join(yearDir, "*.zip"))
	if err != nil {
		return err
	}
	for _, z := range inner {
		if err := extractZip(z, yearDir); err != nil {
			return err
		}
		if err := os.Remove(z); err != nil {
			return err
		}
	}

	return nil
}

func (d *Downloader) fetch(url, dst string) error {
	resp, err := d.Client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, url)
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// extractZip unpacks src into dst, closing every handle before opening the
// next entry. Entries escaping dst are rejected.
func extractZip(src, dst string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, entry := range zr.File {
		target := filepath.Join(dst, filepath.Clean(entry.Name))
		if !strings.HasPrefix(target, filepath.Clean(dst)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := extractEntry(entry, target); err != nil {
			return err
		}
	}

	return nil
}

func extractEntry(entry *zip.File, target string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// isZipValid reports whether the file exists and is a readable ZIP
// archive, so partially downloaded archives are fetched again.
func isZipValid(path string) bool {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	zr.Close()
	return true
}
