package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"passport_parser/internal/services/parser"
)

// Parser is the pipeline behind POST /parse.
type Parser interface {
	ParseArchive(ctx context.Context, req parser.Request) (parser.Result, error)
	ParsePath(ctx context.Context, filePath, userID string) (parser.Result, error)
}

type Handlers struct {
	Parser Parser
	// Check pings configured backends; nil means nothing to check.
	Check func(ctx context.Context) error
	// MaxUpload bounds multipart bodies.
	MaxUpload int64

	Logger *log.Logger
}

func New(p Parser, check func(ctx context.Context) error, maxUpload int64) *Handlers {
	if maxUpload <= 0 {
		maxUpload = 64 << 20
	}
	return &Handlers{
		Parser:    p,
		Check:     check,
		MaxUpload: maxUpload,
		Logger:    log.Default(),
	}
}

func (h *Handlers) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
