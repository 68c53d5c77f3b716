// Package server exposes alignment and function-word management over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"m2align/internal/align"
	"m2align/internal/annotate"
	"m2align/internal/cache"
	"m2align/internal/lexicon"
	"m2align/internal/logging"
	"m2align/internal/m2"
)

const maxBody = 1 << 20

// Server answers alignment requests with an aligner whose function-word
// lexicon tracks the Redis store.
type Server struct {
	base    *align.Aligner
	current atomic.Pointer[align.Aligner]
	lexicon *lexicon.Store
	cache   *cache.Cache
	log     *slog.Logger
	extra   []string
}

// New builds a Server. c may be nil to disable result caching. extra are
// function words configured outside the store.
func New(base *align.Aligner, lex *lexicon.Store, c *cache.Cache, l *slog.Logger, extra ...string) *Server {
	s := &Server{base: base, lexicon: lex, cache: c, log: l, extra: extra}
	s.current.Store(base.WithLexicon(align.NewWordSet(extra...)))
	return s
}

// Reload rebuilds the aligner from the current lexicon contents.
func (s *Server) Reload(ctx context.Context) error {
	set, err := s.lexicon.Snapshot(ctx, s.extra...)
	if err != nil {
		return fmt.Errorf("load function words: %w", err)
	}
	s.current.Store(s.base.WithLexicon(set))
	return nil
}

// Handler returns the routed API wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/align", s.handleAlign)
	mux.HandleFunc("/api/v1/function-word", s.handleFunctionWords)
	mux.HandleFunc("/api/v1/function-word/", s.handleRemoveFunctionWord)
	return logging.Middleware(s.log, mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// token accepts either a bare string or an annotated token object.
type token align.Token

func (t *token) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &t.Form)
	}
	var v align.Token
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = token(v)
	return nil
}

type alignRequest struct {
	Orig  []token `json:"orig"`
	Cor   []token `json:"cor"`
	Lev   *bool   `json:"lev"`
	Merge string  `json:"merge"`
}

type alignResponse struct {
	Cost   float64      `json:"cost"`
	Edits  []align.Edit `json:"edits"`
	M2     string       `json:"m2"`
	Cached bool         `json:"cached"`
}

// prepare converts request tokens, tagging a sequence server-side when none
// of its tokens carries a part of speech.
func prepare(in []token) []align.Token {
	toks := make([]align.Token, len(in))
	tagged := false
	for i, t := range in {
		toks[i] = align.Token(t)
		toks[i].Index = i
		tagged = tagged || t.Tag != ""
	}
	if tagged {
		return toks
	}
	words := make([]string, len(toks))
	for i, t := range toks {
		words[i] = t.Form
	}
	return annotate.Tag(words)
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req alignRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	for _, seq := range [][]token{req.Orig, req.Cor} {
		for _, t := range seq {
			if strings.TrimSpace(t.Form) == "" {
				writeError(w, http.StatusBadRequest, "empty token")
				return
			}
		}
	}

	a := s.current.Load()
	strategy, plain := a.Strategy(), a.Plain()
	if req.Merge != "" {
		var err error
		if strategy, err = align.ParseStrategy(req.Merge); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Lev != nil {
		plain = *req.Lev
	}
	a, err := a.Variant(strategy, plain)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	log := logging.FromContext(ctx, s.log)
	orig, cor := prepare(req.Orig), prepare(req.Cor)
	origText := make([]string, len(orig))
	for i, t := range orig {
		origText[i] = t.Form
	}

	key := cache.Key(a.Fingerprint(), orig, cor)
	if s.cache != nil {
		e, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("cache lookup failed", "error", err)
		}
		if ok {
			writeJSON(w, http.StatusOK, alignResponse{Cost: e.Cost, Edits: e.Edits, M2: m2.Format(origText, e.Edits, 0), Cached: true})
			return
		}
	}

	res := a.Annotate(align.AsFeatures(orig), align.AsFeatures(cor))
	edits := res.Edits
	if edits == nil {
		edits = []align.Edit{}
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, key, cache.Entry{Cost: res.Cost, Edits: edits}); err != nil {
			log.Warn("cache store failed", "error", err)
		}
	}
	log.Debug("aligned", "orig", len(orig), "cor", len(cor), "edits", len(edits), "strategy", strategy.String())
	writeJSON(w, http.StatusOK, alignResponse{Cost: res.Cost, Edits: edits, M2: m2.Format(origText, edits, 0)})
}

func (s *Server) handleFunctionWords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		words, err := s.lexicon.All(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string][]string{"words": words})
	case http.MethodPost:
		var req struct {
			Word string `json:"word"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := s.lexicon.Add(r.Context(), req.Word); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := s.Reload(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleRemoveFunctionWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	word := strings.TrimPrefix(r.URL.Path, "/api/v1/function-word/")
	if strings.TrimSpace(word) == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	if err := s.lexicon.Remove(r.Context(), word); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
