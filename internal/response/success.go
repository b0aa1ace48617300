package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

// WriteSuccess writes data as the JSON body. The browser client reads
// resources directly, so there is no envelope.
func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Last-ditch logging; can't return an error now
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
	}
}

// WriteFile sends an attachment download.
func (h *responseHandler) WriteFile(w http.ResponseWriter, r *http.Request, file dto.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(file.Data); err != nil {
		logger.FromContext(r.Context()).Error("failed to write file response", "error", err, "file", file.Name)
	}
}
