package main

import (
	"context"
	"flag"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	httpadapter "svw.info/pipeword/internal/adapters/http"
	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/generator"
	"svw.info/pipeword/internal/hint"
	"svw.info/pipeword/internal/infrastructure/storage"
	"svw.info/pipeword/internal/infrastructure/words"
	"svw.info/pipeword/internal/progression"
	"svw.info/pipeword/internal/usecase"
	"svw.info/pipeword/internal/validator"
	"svw.info/pipeword/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

// envOr reads an environment variable with a default, so flags can be
// seeded from .env.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// .env is optional; absence is the normal production case.
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("PIPEWORD_ADDR", ":8080"), "listen address")
	dbPath := flag.String("db", envOr("PIPEWORD_DB", "./pipeword.db"), "progress database path")
	wordList := flag.String("words", envOr("PIPEWORD_WORDS", "./words.txt"), "word list for free play")
	levelStr := flag.String("log-level", envOr("PIPEWORD_LOG_LEVEL", "info"), "debug|info|warn|error")
	rows := flag.Int("rows", 4, "grid rows")
	cols := flag.Int("cols", 7, "grid columns")
	obstacles := flag.Int("obstacles", 5, "obstacle tiles per puzzle")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	layout := domain.LayoutConfig{
		Rows:         *rows,
		Cols:         *cols,
		Padding:      16,
		TileSize:     64,
		Spacing:      8,
		TrayCapacity: 12,
	}
	if err := layout.Validate(); err != nil {
		logger.Error("bad layout", "err", err)
		os.Exit(1)
	}

	store, err := storage.Open(*dbPath)
	if err != nil {
		logger.Error("open progress store", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	// Wire providers → use cases → HTTP adapter
	m := progression.New(progression.DefaultConnections(), store, func() {
		logger.Info("map complete: every connection solved")
	}, logger)
	m.Load(context.Background())

	gen := generator.New(time.Now().UnixNano())
	gen.SetLogger(logger)
	v := validator.New()
	hin := hint.NewNextCell()
	ws := words.NewFileSource(*wordList, time.Now().UnixNano(), logger)
	uc := usecase.NewService(gen, v, hin, ws, m, layout, *obstacles, logger)
	h := httpadapter.New(uc)

	tmpl := web.Templates()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", map[string]any{}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "db", *dbPath, "rows", *rows, "cols", *cols)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
