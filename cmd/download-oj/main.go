package main

import (
	"flag"
	"log"
	"strings"

	"github.com/ndrplz/eurlex-toolbox/internal/oj"
)

// validLanguages are the official-language codes published in the Official
// Journal repository.
var validLanguages = map[string]struct{}{
	"BG": {}, "CS": {}, "DA": {}, "DE": {}, "EL": {}, "EN": {}, "ES": {},
	"ET": {}, "FI": {}, "FR": {}, "GA": {}, "HR": {}, "HU": {}, "IT": {},
	"LT": {}, "LV": {}, "MT": {}, "NL": {}, "PL": {}, "PT": {}, "RO": {},
	"SK": {}, "SL": {}, "SV": {},
}

func main() {
	var (
		dataRoot = flag.String("data", "", "Directory that will contain the downloaded data (required)")
		language = flag.String("lang", "EN", "Language of the downloaded journals")
	)
	flag.Parse()

	if *dataRoot == "" {
		log.Fatal("--data required")
	}

	lang := strings.ToUpper(*language)
	if _, ok := validLanguages[lang]; !ok {
		log.Fatalf("Language %q is not valid", *language)
	}

	downloader := oj.New()

	years, err := downloader.AvailableYears(lang)
	if err != nil {
		log.Fatal("Failed to list available years:", err)
	}
	log.Printf("Years available for %s: %v", lang, years)

	for _, year := range years {
		log.Printf("Downloading %s %d...", lang, year)
		if err := downloader.Download(*dataRoot, lang, year); err != nil {
			log.Fatalf("Failed to download %s %d: %v", lang, year, err)
		}
	}

	log.Printf("Done: %d years downloaded to %s", len(years), *dataRoot)
}
