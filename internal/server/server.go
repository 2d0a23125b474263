// Package server implements the dev-bridge HTTP server: it serves files
// from a local directory, transforming stylesheet- and script-dialect
// sources through a Rewriter on the way out so their asset references
// resolve against the dev asset server. A filesystem watcher broadcasts
// reload events to connected clients over SSE.
//
// The server has no authentication and is meant for local development
// only; bind it to localhost.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/halver/assetbridge"
	"github.com/halver/assetbridge/internal/assets"
)

// Paths reserved by the bridge itself. Everything else under the root is
// served as a file.
const (
	// EventsPath is the SSE endpoint clients subscribe to for reload events.
	EventsPath = "/__assetbridge/events"

	// ClientPath serves the embedded live-reload script. Pages opt in with
	// <script src="/__assetbridge/client.js"></script>.
	ClientPath = "/__assetbridge/client.js"
)

// Defaults applied by Options.withDefaults.
const (
	DefaultAddr     = ":4173"
	DefaultRoot     = "."
	DefaultDebounce = 100 * time.Millisecond

	shutdownTimeout = 5 * time.Second
)

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Addr     string                // Listen address (default ":4173")
	Root     string                // Directory served and watched (default ".")
	Rewriter *assetbridge.Rewriter // Transform applied to dialect files (default assetbridge.New())
	Logger   *slog.Logger          // Request and watcher logging (default slog.Default())
	Debounce time.Duration         // Watch event debounce window (default 100ms)
}

func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	if o.Rewriter == nil {
		o.Rewriter = assetbridge.New()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	return o
}

// Server serves a directory, rewriting dialect sources on the fly and
// pushing reload events when files under the root change.
type Server struct {
	addr     string
	root     string
	rewriter *assetbridge.Rewriter
	logger   *slog.Logger
	debounce time.Duration

	router chi.Router

	// SSE clients for broadcasting reload events.
	clientsMu sync.Mutex
	clients   map[chan string]struct{}
}

// New builds a Server from opts. The returned Server is ready to serve
// via Handler or Run.
func New(opts Options) *Server {
	opts = opts.withDefaults()

	s := &Server{
		addr:     opts.Addr,
		root:     opts.Root,
		rewriter: opts.Rewriter,
		logger:   opts.Logger,
		debounce: opts.Debounce,
		clients:  make(map[chan string]struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get(EventsPath, s.handleEvents)
	r.Get(ClientPath, s.handleClient)
	r.Get("/*", s.handleFile)
	s.router = r

	return s
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP and watches the root until ctx is canceled, then shuts
// down gracefully. Request contexts derive from ctx, so long-lived SSE
// connections unwind during shutdown instead of stalling it.
func (s *Server) Run(ctx context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("serving root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("serving root %q is not a directory", s.root)
	}

	g, ctx := errgroup.WithContext(ctx)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		return s.watch(ctx)
	})

	g.Go(func() error {
		s.logger.Info("dev bridge listening",
			"addr", s.addr,
			"root", s.root,
			"server", s.rewriter.ServerURL(),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// handleFile serves one file under the root. Dialect files are rewritten
// before serving; everything else streams through untouched.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	name := s.resolvePath(chi.URLParam(r, "*"))

	info, err := os.Stat(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		name = filepath.Join(name, "index.html")
		if _, err := os.Stat(name); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	dialect, ok := assetbridge.DialectForFile(name)
	if !ok {
		http.ServeFile(w, r, name)
		return
	}

	data, err := os.ReadFile(name) // #nosec G304 -- path is confined to the root
	if err != nil {
		http.Error(w, "reading file", http.StatusInternalServerError)
		return
	}

	res := s.rewriter.Rewrite(string(data), dialect)
	s.logger.Debug("transformed", "path", name, "dialect", string(dialect), "changed", res.Changed)

	w.Header().Set("Content-Type", contentTypeFor(dialect))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, res.Code)
}

// resolvePath maps a request path to a filesystem path inside the root.
// Cleaning the path as rooted strips any ".." segments, so the result
// cannot escape the root.
func (s *Server) resolvePath(rel string) string {
	rel = path.Clean("/" + rel)[1:]
	if rel == "" {
		rel = "."
	}
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// contentTypeFor returns the type rewritten sources are served as.
// The stdlib mime table is wrong for several of these (.ts maps to
// MPEG transport stream), so the dialect decides.
func contentTypeFor(d assetbridge.Dialect) string {
	if d == assetbridge.DialectStylesheet {
		return "text/css; charset=utf-8"
	}
	return "text/javascript; charset=utf-8"
}

// handleClient serves the embedded live-reload script.
func (s *Server) handleClient(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, assets.ReloadClient())
}

// handleEvents streams reload events to one client over SSE until the
// client disconnects or the server shuts down.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	events := make(chan string, 10)
	s.addClient(events)
	defer s.removeClient(events)

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-events:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

func (s *Server) addClient(ch chan string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[ch] = struct{}{}
}

func (s *Server) removeClient(ch chan string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, ch)
}

// broadcast sends an event to every connected client. A client whose
// buffer is full is skipped rather than blocking the watcher.
func (s *Server) broadcast(event string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for ch := range s.clients {
		select {
		case ch <- event:
		default:
		}
	}
}

// watch observes the root tree and broadcasts a debounced reload event
// when anything changes. New directories are added to the watch as they
// appear; editors writing files in several steps collapse into one event.
func (s *Server) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
		_ = watcher.Close()
	}()

	if err := watchRecursive(watcher, s.root); err != nil {
		return fmt.Errorf("watching %s: %w", s.root, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchRecursive(watcher, event.Name)
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			trigger := event.Name
			debounce = time.AfterFunc(s.debounce, func() {
				s.logger.Debug("broadcasting reload", "trigger", trigger)
				s.broadcast("reload")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchRecursive adds root and every directory below it to the watcher,
// skipping hidden directories and node_modules.
func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDirName(d.Name()) {
			return fs.SkipDir
		}
		return watcher.Add(p)
	})
}

// skipDirName reports whether a directory is excluded from watching.
func skipDirName(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// logRequests logs each request at Info with method, path, status, size,
// and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
