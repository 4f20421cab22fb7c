package corpus

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/internalerr"
)

// DumpMode selects the export format.
type DumpMode string

const (
	// DumpHeaders writes one comma-joined summary line per item.
	DumpHeaders DumpMode = "headers"
	// DumpText writes the full multi-field block of every item, items
	// separated by a visual delimiter.
	DumpText DumpMode = "text"
)

// textSeparator divides items in the full-text export.
var textSeparator = "\n\n" + strings.Repeat("%", 50) + "\n\n\n"

// Dump writes all items to w in the given mode.
func (ds *Dataset) Dump(w io.Writer, mode DumpMode) error {
	parts := make([]string, 0, ds.Len())

	switch mode {
	case DumpHeaders:
		for _, it := range ds.items {
			parts = append(parts, it.Header())
		}
		_, err := io.WriteString(w, strings.Join(parts, "\n"))
		return err
	case DumpText:
		for _, it := range ds.items {
			parts = append(parts, it.Text())
		}
		_, err := io.WriteString(w, strings.Join(parts, textSeparator))
		return err
	default:
		return fmt.Errorf("%w: unknown dump mode %q", internalerr.ErrInvalidConfig, mode)
	}
}

// DumpToFile writes all items to a file, creating or truncating it.
func (ds *Dataset) DumpToFile(path string, mode DumpMode) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ds.Dump(f, mode); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
