package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/config"
	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/corpus"
	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/store"
	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/store/sqlite"
)

func main() {
	var (
		dataRoot   = flag.String("data", "", "Corpus root: directory or manifest file (required)")
		outDir     = flag.String("out", "./output", "Output directory")
		dbPath     = flag.String("db", "", "SQLite database path (optional)")
		geoPath    = flag.String("geo", "", "Gazetteer table file (enables location matching)")
		stopPath   = flag.String("stoplist", "", "YAML stopword list (used with -tokenize)")
		tokenize   = flag.Bool("tokenize", false, "Tokenize body text")
		legalBases = flag.Bool("legal-bases", false, "Extract legal-basis citations")
		subDocs    = flag.Bool("sub-docs", false, "Materialize sub-publication documents")
	)
	flag.Parse()

	if *dataRoot == "" {
		log.Fatal("--data required")
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal("Failed to create output directory:", err)
	}

	loader := config.Loader{
		StoplistPath: *stopPath,
		GeoTablePath: *geoPath,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	opts := corpus.Options{
		LegalBases:     *legalBases,
		IncludeSubDocs: *subDocs,
	}
	if *tokenize {
		opts.Tokenizer = components.Tokenizer
	}
	if components.Locations != nil {
		opts.Locations = components.Locations
	}

	ds, err := corpus.Load(*dataRoot, opts)
	if err != nil {
		log.Fatal("Failed to load corpus:", err)
	}

	log.Printf("Number of documents: %d", ds.Len())

	// Dump all concatenated docs in human readable text
	if err := ds.DumpToFile(filepath.Join(*outDir, "all_txt.txt"), corpus.DumpText); err != nil {
		log.Fatal("Failed to dump text:", err)
	}

	// Dump all document headers
	if err := ds.DumpToFile(filepath.Join(*outDir, "stats.csv"), corpus.DumpHeaders); err != nil {
		log.Fatal("Failed to dump headers:", err)
	}

	if *dbPath != "" {
		if err := persist(ds, *dbPath); err != nil {
			log.Fatal("Failed to persist corpus:", err)
		}
		log.Printf("Persisted %d items to %s", ds.Len(), *dbPath)
	}
}

func persist(ds *corpus.Dataset, dbPath string) error {
	ctx := context.Background()

	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, it := range ds.Items() {
		rec := store.Item{
			Path:       it.Meta.Path,
			Title:      it.Meta.Title,
			Coll:       it.Meta.Coll,
			Com:        it.Meta.Com,
			LegalValue: it.Meta.LegalValue,
			Date:       it.Date(),
			Text:       it.Main.Text,
			Authors:    it.Meta.Authors,
			LegalBases: it.Main.LegalBases,
			Locations:  it.Main.Locations,
		}
		if err := st.SaveItem(ctx, rec); err != nil {
			return err
		}
	}

	return nil
}
