package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"transferadmin/models"
	"transferadmin/utils"
)

type ReportHandler struct {
	*Pages
	PDF utils.PDFRenderer
	// Archive, when set, receives a copy of every generated report.
	Archive utils.Uploader
	// Currency words for the spelled-out revenue; empty means rupees and paise.
	CurrencyUnit    string
	CurrencySubunit string
	Now             func() time.Time
}

type reportData struct {
	GeneratedAt  string
	RevenueWords string
	Stats        *models.Statistics
}

// StatisticsPDF renders the dashboard statistics as an A4 PDF download.
func (h *ReportHandler) StatisticsPDF(w http.ResponseWriter, r *http.Request) {
	stats, err := h.session(r).Statistics(r.Context())
	if err != nil {
		page := h.page(r, "Report", "/")
		page.Content = "The report could not be generated."
		h.fail(w, r, err, "message", page)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	generated := now()

	unit, subunit := h.currency()
	var html bytes.Buffer
	err = h.Views.Render(&html, "report", reportData{
		GeneratedAt:  generated.Format("02 Jan 2006 15:04"),
		RevenueWords: utils.AmountToWords(stats.TotalRevenue, unit, subunit),
		Stats:        stats,
	})
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to render report", "error", err)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	pdfBytes, err := h.PDF.RenderPDF(r.Context(), html.Bytes())
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to generate PDF", "error", err)
		http.Error(w, "failed to generate PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("statistics_%d.pdf", generated.Unix())
	if h.Archive != nil {
		if link, err := h.Archive.Upload(r.Context(), pdfBytes, "reports/"+filename, "application/pdf"); err != nil {
			h.Logger.WarnContext(r.Context(), "failed to archive report", "file", filename, "error", err)
		} else {
			w.Header().Set("X-Report-URL", link)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (h *ReportHandler) currency() (unit, subunit string) {
	unit, subunit = h.CurrencyUnit, h.CurrencySubunit
	if unit == "" {
		unit = utils.DefaultCurrencyUnit
	}
	if subunit == "" {
		subunit = utils.DefaultCurrencySubunit
	}
	return unit, subunit
}
