package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"
)

type healthResp struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

// Health doubles as the keep-alive endpoint polled by the hosting platform.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var errs []string
	if h.Check != nil {
		if err := h.Check(ctx); err != nil {
			errs = strings.Split(err.Error(), "\n")
		}
	}

	resp := healthResp{OK: len(errs) == 0, Errors: errs}
	code := http.StatusOK
	if !resp.OK {
		code = http.StatusInternalServerError
	}
	h.JSON(w, code, resp)
}
