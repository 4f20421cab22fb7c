// Package corpus assembles the filtered collection of EU legal acts: it
// discovers metadata documents, drives the Formex parsers and the two
// classification predicates, and exposes the result for iteration and
// export.
package corpus

import (
	"bufio"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/classify"
	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/formex"
	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/internalerr"
)

// metaSuffix identifies Formex metadata documents during directory walks.
const metaSuffix = ".doc.xml"

// Options selects the optional extraction passes run on each main body
// document, and whether sub documents are materialized at all.
type Options struct {
	Tokenizer  formex.Tokenizer       // nil disables tokenization
	Locations  formex.LocationMatcher // nil disables location matching
	LegalBases bool                   // extract VISA citations

	// IncludeSubDocs materializes the sub-publication documents of each
	// act in addition to the main one. Off by default: the historical
	// pipeline skipped them after repeated sub-document parsing degraded
	// under leaked file handles. Every parse here closes its handle
	// before the next one opens, so enabling this is safe.
	IncludeSubDocs bool
}

// Dataset is the ordered collection of corpus items that passed both
// classification predicates.
type Dataset struct {
	Root  string
	Files []string // candidate metadata documents, discovery order
	items []*Item
}

// Load builds the dataset from root, which is either a directory searched
// recursively for metadata documents or a manifest file listing one path
// per line (the two modes are mutually exclusive; a manifest is never
// merged with a walk). A metadata or body document that fails to parse is
// logged and skipped; one bad file never aborts the run.
func Load(root string, opts Options) (*Dataset, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty corpus root", internalerr.ErrInvalidConfig)
	}

	files, err := listMetaFiles(root)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Root: root, Files: files}

	extract := formex.ExtractOptions{
		Tokenizer:  opts.Tokenizer,
		Locations:  opts.Locations,
		LegalBases: opts.LegalBases,
	}

	for _, f := range files {
		meta, err := formex.ParseMeta(f)
		if err != nil {
			log.Printf("skipping %s: %v", f, err)
			continue
		}

		// Cheap pre-filter: body documents of non-decision acts are
		// never parsed.
		if !classify.IsDecision(meta) {
			continue
		}

		main, err := formex.ParseData(meta.MainPub, extract)
		if err != nil {
			log.Printf("skipping %s: %v", f, err)
			continue
		}

		item := &Item{Meta: meta, Main: main}
		if opts.IncludeSubDocs {
			for _, sub := range meta.SubPubs {
				d, err := formex.ParseData(sub, extract)
				if err != nil {
					log.Printf("skipping sub document %s: %v", sub, err)
					continue
				}
				item.Subs = append(item.Subs, d)
			}
		}

		// Final inclusion gate.
		if classify.IsCFSP(meta) {
			ds.items = append(ds.items, item)
		}
	}

	return ds, nil
}

// Len returns the number of items in the dataset.
func (ds *Dataset) Len() int {
	return len(ds.items)
}

// At returns the i-th item.
func (ds *Dataset) At(i int) *Item {
	return ds.items[i]
}

// Items returns the ordered item collection.
func (ds *Dataset) Items() []*Item {
	return ds.items
}

func listMetaFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, root)
	}

	if !info.IsDir() {
		return readManifest(root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), metaSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func readManifest(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}
	defer f.Close()

	var files []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			files = append(files, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return files, nil
}
