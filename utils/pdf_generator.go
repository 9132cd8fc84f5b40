package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFRenderer turns a complete HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ChromePDF prints HTML to A4 PDF with headless Chrome.
type ChromePDF struct {
	// Settle is how long the page may finish layout before printing.
	Settle time.Duration
}

func (c ChromePDF) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	tmpHTML := filepath.Join(os.TempDir(), fmt.Sprintf("report_%d.html", time.Now().UnixNano()))
	if err := os.WriteFile(tmpHTML, html, 0o600); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	chromeCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	settle := c.Settle
	if settle <= 0 {
		settle = 500 * time.Millisecond
	}

	var pdfBuf []byte
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.Sleep(settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdfBuf, nil
}
