// Package pdfdoc checks uploaded manuscripts and renders the program booklet and acceptance letters.
package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"

	pdfreader "github.com/ledongthuc/pdf"
)

// ErrNotPDF is returned when the data is not a readable PDF document
var ErrNotPDF = errors.New("not a readable PDF document")

var pdfMagic = []byte("%PDF-")

// PageCount parses data as a PDF and returns its page count
func PageCount(data []byte) (pages int, err error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return 0, ErrNotPDF
	}

	// The reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("%w: %v", ErrNotPDF, r)
		}
	}()

	r, err := pdfreader.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	n := r.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("%w: document has no pages", ErrNotPDF)
	}
	return n, nil
}
