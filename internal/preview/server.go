// Package preview runs the local authoring loop: serve the generated site
// from the output directory, watch the source trees, and trigger a rebuild
// when files change.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-codelab/internal/logging"
	"github.com/goliatone/go-codelab/pkg/interfaces"
)

const (
	defaultPort            = 8080
	defaultDebounce        = 500 * time.Millisecond
	defaultShutdownTimeout = 5 * time.Second
)

// RebuildFunc regenerates the site. The preview server calls it once on
// startup and again, debounced, after every batch of file changes.
type RebuildFunc func(ctx context.Context) error

// Config configures the preview server.
type Config struct {
	// Host defaults to localhost.
	Host string
	// Port defaults to 8080.
	Port int
	// OutputDir is the generated site root served over HTTP.
	OutputDir string
	// WatchDirs are the source trees that trigger rebuilds. Missing
	// directories are skipped with a warning.
	WatchDirs []string
	// Debounce collapses change bursts into one rebuild. Defaults to 500ms.
	Debounce time.Duration
	Logger   interfaces.Logger
}

// Server is the local development server.
type Server struct {
	cfg     Config
	rebuild RebuildFunc
	logger  interfaces.Logger

	mu       sync.Mutex
	lastErr  error
	rebuilds int
}

// NewServer builds a preview server. rebuild may be nil when the caller only
// wants static serving without the watch loop.
func NewServer(cfg Config, rebuild RebuildFunc) (*Server, error) {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, errors.New("preview: output directory is required")
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Server{cfg: cfg, rebuild: rebuild, logger: logger}, nil
}

// Addr returns the host:port the server binds to.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
}

// LastRebuild reports the rebuild count and the error of the most recent
// rebuild, nil when it succeeded.
func (s *Server) LastRebuild() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuilds, s.lastErr
}

// Run performs the initial build, starts the watch loop, and serves the
// output directory until ctx is cancelled. The initial build must succeed;
// later rebuild failures are logged and the previous output keeps serving.
func (s *Server) Run(ctx context.Context) error {
	if s.rebuild != nil {
		s.logger.Info("running initial build")
		if err := s.runRebuild(ctx); err != nil {
			return fmt.Errorf("preview: initial build: %w", err)
		}
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	if s.rebuild != nil && len(s.cfg.WatchDirs) > 0 {
		watcher, err := s.startWatcher(watchCtx)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	server := &http.Server{
		Addr:    s.Addr(),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "url", "http://"+s.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("preview: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview: shutdown: %w", err)
	}
	<-errCh
	return nil
}

// Handler serves the output directory with caching disabled so authors always
// see the latest rebuild.
func (s *Server) Handler() http.Handler {
	fileServer := http.FileServer(http.Dir(s.cfg.OutputDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			indexPath := filepath.Join(s.cfg.OutputDir, filepath.FromSlash(r.URL.Path), "index.html")
			if _, err := os.Stat(indexPath); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		fileServer.ServeHTTP(w, r)
	})
}

func (s *Server) startWatcher(ctx context.Context) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("preview: create watcher: %w", err)
	}

	for _, root := range s.cfg.WatchDirs {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
			s.logger.Warn("watch directory missing, skipping", "dir", root)
			continue
		}
		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if addErr := watcher.Add(path); addErr != nil {
					s.logger.Warn("failed to watch directory", "dir", path, "error", addErr)
				}
			}
			return nil
		})
		if walkErr != nil {
			watcher.Close()
			return nil, fmt.Errorf("preview: watch %s: %w", root, walkErr)
		}
		s.logger.Info("watching for changes", "dir", root)
	}

	go s.watchLoop(ctx, watcher)
	return watcher, nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						s.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.cfg.Debounce, func() {
				s.logger.Info("rebuilding after changes")
				if err := s.runRebuild(ctx); err != nil {
					s.logger.Error("rebuild failed, serving previous output", "error", err)
					return
				}
				s.logger.Info("rebuild complete")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}

func (s *Server) runRebuild(ctx context.Context) error {
	err := s.rebuild(ctx)
	s.mu.Lock()
	s.rebuilds++
	s.lastErr = err
	s.mu.Unlock()
	return err
}
