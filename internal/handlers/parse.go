package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"passport_parser/internal/adapters/archive"
	"passport_parser/internal/services/parser"
	auth "passport_parser/internal/transport/auth"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type parseRequest struct {
	FilePath string `json:"file_path"`
}

// Parse accepts either multipart/form-data with a `file` ZIP or JSON
// {"file_path": "s3://bucket/key"} and responds with the spreadsheet.
func (h *Handlers) Parse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use POST"})
		return
	}

	client, _ := auth.GetClient(r.Context())

	var (
		res parser.Result
		err error
	)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
		f, fh, ferr := r.FormFile("file")
		if ferr != nil {
			h.Logger.Printf("[PARSE][REQ][ERR] missing file: %v", ferr)
			h.JSON(w, http.StatusBadRequest, map[string]string{"error": "file is required"})
			return
		}
		defer f.Close()

		data, rerr := io.ReadAll(f)
		if rerr != nil {
			h.Logger.Printf("[PARSE][REQ][ERR] read upload: %v", rerr)
			h.JSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "upload too large or unreadable"})
			return
		}
		res, err = h.Parser.ParseArchive(r.Context(), parser.Request{
			Source:  "upload:" + path.Base(fh.Filename),
			UserID:  client,
			Archive: data,
		})

	case "application/json", "":
		var req parseRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		if derr := dec.Decode(&req); derr != nil {
			h.Logger.Printf("[PARSE][REQ][ERR] bad JSON: %v", derr)
			h.JSON(w, http.StatusBadRequest, map[string]string{"error": "bad JSON: " + derr.Error()})
			return
		}
		if strings.TrimSpace(req.FilePath) == "" {
			h.JSON(w, http.StatusBadRequest, map[string]string{"error": "file_path is required"})
			return
		}
		res, err = h.Parser.ParsePath(r.Context(), req.FilePath, client)

	default:
		h.JSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": "use multipart/form-data or application/json"})
		return
	}

	if err != nil {
		h.Logger.Printf("[PARSE][ERR] run=%s: %v", res.RunID, err)
		h.JSON(w, statusFor(err), map[string]string{"error": err.Error(), "run_id": res.RunID})
		return
	}

	stats := res.Table.Stats
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("X-Run-ID", res.RunID)
	w.Header().Set("X-Documents", strconv.Itoa(stats.Documents))
	w.Header().Set("X-Extracted", strconv.Itoa(stats.Extracted))
	w.Header().Set("X-Failed", strconv.Itoa(stats.Failed))
	w.Header().Set("X-Has-Data", strconv.FormatBool(res.Table.HasData()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.XLSX)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, archive.ErrBadArchive), errors.Is(err, archive.ErrNoDocx), errors.Is(err, parser.ErrNoDocuments):
		return http.StatusBadRequest
	case errors.Is(err, parser.ErrArchiveTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
