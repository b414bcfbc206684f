package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"go.uber.org/zap"

	xword "crosswarped.com/xword"
	"crosswarped.com/xword/internal/appconfig"
	"crosswarped.com/xword/internal/gcpstore"
	"crosswarped.com/xword/pkg/pagination"
)

type ValidatePuzzleRequest struct {
	Puzzle json.RawMessage `json:"puzzle"`
}

type FindingJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

type ValidatePuzzleResponse struct {
	Success     bool          `json:"success"`
	Publishable bool          `json:"publishable"`
	Findings    []FindingJSON `json:"findings"`
	Error       string        `json:"error,omitempty"`
}

type PuzzleIndexResponse struct {
	Success bool     `json:"success"`
	IDs     []string `json:"ids"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Author  string   `json:"author,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type server struct {
	builder  *pagination.Builder
	profiles *gcpstore.ProfileResolver
	pageSize int
	log      *zap.Logger
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func (s *server) validatePuzzle(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req ValidatePuzzleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ValidatePuzzleResponse{
			Error: fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	p, err := xword.DecodePuzzle(req.Puzzle)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ValidatePuzzleResponse{
			Error: fmt.Sprintf("Invalid puzzle: %v", err),
		})
		return
	}

	findings := xword.ValidateForPublish(p.Grid, p.Clues)
	resp := ValidatePuzzleResponse{
		Success:     true,
		Publishable: !xword.PublishBlocked(findings),
		Findings:    make([]FindingJSON, 0, len(findings)),
	}
	for _, f := range findings {
		resp.Findings = append(resp.Findings, FindingJSON{
			Severity: f.Severity.String(),
			Code:     f.Code,
			Message:  f.Message,
		})
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

func (s *server) puzzleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	dimension := r.URL.Query().Get("dimension")
	if dimension == "" {
		dimension = "featured"
	}
	page := 0
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PuzzleIndexResponse{
				Error: fmt.Sprintf("Invalid page %q", p),
			})
			return
		}
		page = n
	}

	ids, total, err := s.builder.Page(r.Context(), dimension, page, s.pageSize)
	if err != nil {
		s.log.Error("building index page",
			zap.String("dimension", dimension), zap.Int("page", page), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(PuzzleIndexResponse{
			Error: "Failed to build puzzle index",
		})
		return
	}

	if ids == nil {
		ids = []string{}
	}
	resp := PuzzleIndexResponse{
		Success: true,
		IDs:     ids,
		Total:   total,
		Page:    page,
	}
	// Author listings carry the author's display name.
	if id, ok := strings.CutPrefix(dimension, "author:"); ok {
		resp.Author = s.profiles.DisplayName(r.Context(), id)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "creating logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := appconfig.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal("loading config", zap.Error(err))
	}

	ctx := context.Background()

	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		log.Fatal("firestore.NewClient", zap.Error(err))
	}
	defer fsClient.Close()

	source, err := gcpstore.NewBigQuerySource(ctx, cfg.ProjectID, cfg.PuzzleTable, log)
	if err != nil {
		log.Fatal("creating document source", zap.Error(err))
	}
	defer source.Close()

	srv := &server{
		builder: pagination.NewBuilder(
			gcpstore.NewFirestoreIndexStore(fsClient, cfg.IndexCollection),
			source,
			pagination.WithLogger(log),
		),
		profiles: gcpstore.NewProfileResolver(fsClient, cfg.ProfileCollection, nil, log),
		pageSize: cfg.PageSize,
		log:      log,
	}

	funcframework.RegisterHTTPFunction("/validate-puzzle", srv.validatePuzzle)
	funcframework.RegisterHTTPFunction("/puzzle-index", srv.puzzleIndex)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatal("funcframework.StartHostPort", zap.Error(err))
	}
}
