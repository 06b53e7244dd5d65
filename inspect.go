package mdpdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfInspector reads facts back from rendered PDF bytes.
type pdfInspector interface {
	PageCount(pdf []byte) (int, error)
}

// pdfcpuInspector implements pdfInspector with pdfcpu.
type pdfcpuInspector struct {
	conf *model.Configuration
}

func newPDFCPUInspector() *pdfcpuInspector {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &pdfcpuInspector{conf: conf}
}

// PageCount parses pdf and returns its number of pages.
// Bytes that do not form a readable PDF, or a PDF without pages, are an error.
func (i *pdfcpuInspector) PageCount(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, fmt.Errorf("%w: empty output", ErrInvalidPDF)
	}

	n, err := api.PageCount(bytes.NewReader(pdf), i.conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrInvalidPDF)
	}
	return n, nil
}

var _ pdfInspector = (*pdfcpuInspector)(nil)
