package handler

import (
	"net/http"

	"github.com/wpo70/RateEdge/internal/rate"

	"github.com/sirupsen/logrus"
)

const maxImportBody = 50 << 20 // 50 MiB, matches the original upload cap

type ImportResponse struct {
	Imported int             `json:"imported"`
	Skipped  int             `json:"skipped"`
	Errors   []rate.RowError `json:"errors,omitempty"`
}

// ImportCSV ingests a multipart CSV upload of observations. Bad rows are
// skipped and reported; good rows are upserted in one batch.
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBody)
	if err := r.ParseMultipartForm(maxImportBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	rates, rowErrs, err := rate.ParseCSV(file, h.validator)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse csv: "+err.Error())
		return
	}
	if len(rates) == 0 {
		writeError(w, http.StatusBadRequest, "no valid rows in upload")
		return
	}

	count, err := h.service.AddBatch(r.Context(), rates)
	if err != nil {
		msg := "failed to store imported rates"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "ImportCSV", "rows": len(rates)}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeData(w, http.StatusOK, ImportResponse{
		Imported: count,
		Skipped:  len(rowErrs),
		Errors:   rowErrs,
	})
}
