package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/render/text"
	"github.com/matzehuels/arbor/pkg/tree"
)

const (
	// maxRenderBody bounds request bodies; documents larger than this are
	// rejected before decoding.
	maxRenderBody = 4 << 20

	// renderTTL is how long rendered diagrams stay cached.
	renderTTL = 24 * time.Hour
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	cacheDir string // file cache directory; empty disables caching
	redis    string // redis address; overrides the file cache
}

// serveCommand creates the serve command exposing rendering over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tree rendering over HTTP",
		Long: `Serve a small HTTP endpoint that renders JSON tree documents.

POST /render with a JSON body:

  {"tree": {"a": [1, 2]}, "options": {"depth": 3, "charset": "ascii", "keys": "auto"}}

returns the diagram as text/plain. Results are cached by document hash.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runServe(ctx, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8787", "listen address")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "file cache directory (empty disables caching)")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for a shared cache (host:port)")

	return cmd
}

// runServe builds the cache backend and router, then serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	store, err := buildCache(ctx, opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "initialize cache")
	}
	defer store.Close()

	srv := &server{logger: c.Logger, cache: store}

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	printInfo("Listening on %s", opts.addr)
	printDetail("cache: %s", cacheLabel(opts))
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// buildCache selects the cache backend from the flags. Redis wins over the
// file cache; with neither, caching is disabled.
func buildCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.redis != "" {
		return cache.NewRedisCache(ctx, opts.redis)
	}
	if opts.cacheDir != "" {
		return cache.NewFileCache(opts.cacheDir)
	}
	return cache.NewNullCache(), nil
}

// cacheLabel names the selected cache backend for status output. Keep the
// precedence in sync with buildCache.
func cacheLabel(opts *serveOpts) string {
	switch {
	case opts.redis != "":
		return "redis " + opts.redis
	case opts.cacheDir != "":
		return "file " + opts.cacheDir
	}
	return "disabled"
}

type server struct {
	logger *log.Logger
	cache  cache.Cache
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	return r
}

// requestLogger tags every request with a short id and reports timing to
// the logger and the server hooks.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()[:8]
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.status, elapsed)
		s.logger.Info("request", "id", id, "method", r.Method, "path", r.URL.Path, "status", ww.status, "elapsed", elapsed.Round(time.Millisecond))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// renderRequest is the envelope accepted by POST /render.
type renderRequest struct {
	Tree    json.RawMessage `json:"tree"`
	Options struct {
		Depth      *int   `json:"depth"`
		Charset    string `json:"charset"`
		Keys       string `json:"keys"`
		Truncation *bool  `json:"truncation"`
	} `json:"options"`
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxRenderBody)

	var req renderRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode request"))
		return
	}
	if len(req.Tree) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "missing tree field"))
		return
	}

	opts, key, err := s.renderPlan(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	if out, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		s.writeText(w, out)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	dec := json.NewDecoder(bytes.NewReader(req.Tree))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode tree"))
		return
	}

	rendered, err := text.RenderString(tree.Any(doc), opts...)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeRender, err, "render tree"))
		return
	}

	out := []byte(rendered)
	if err := s.cache.Set(ctx, key, out, renderTTL); err != nil {
		s.logger.Error("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(out))
	}
	s.writeText(w, out)
}

// renderPlan validates request options and derives the engine options plus
// the cache key for the request.
func (s *server) renderPlan(req *renderRequest) ([]text.Option, string, error) {
	charset := req.Options.Charset
	if charset == "" {
		charset = "unicode"
	}
	cs, err := text.Preset(charset)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidCharset, err, "invalid charset: %s", charset)
	}

	keys := req.Options.Keys
	if keys == "" {
		keys = "auto"
	}
	mode, err := parseKeyMode(keys)
	if err != nil {
		return nil, "", err
	}

	depth := text.DefaultMaxDepth
	if req.Options.Depth != nil {
		depth = *req.Options.Depth
	}
	truncation := true
	if req.Options.Truncation != nil {
		truncation = *req.Options.Truncation
	}

	opts := []text.Option{
		text.WithMaxDepth(depth),
		text.WithCharset(cs),
		text.WithKeys(mode),
	}
	if !truncation {
		opts = append(opts, text.WithoutTruncationMarker())
	}

	key := cache.RenderKey(cache.Hash(req.Tree), charset, depth, keys, truncation)
	return opts, key, nil
}

func (s *server) writeText(w http.ResponseWriter, out []byte) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(out)
}

// writeError maps coded errors to HTTP statuses: validation codes become
// 400, everything else 500.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidCharset, errors.ErrCodeInvalidKeyMode,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}
