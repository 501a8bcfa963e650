// Package server publishes the generated calendar over HTTP as an
// iCalendar feed and a JSON document, rebuilding both on a schedule.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tartampluch/go-luach/internal/config"
)

// Feed is one rendering of the calendar in every served format.
type Feed struct {
	ICS  []byte
	JSON []byte
}

// BuildFunc renders a fresh Feed.
type BuildFunc func() (Feed, error)

// cacheItem stores a rendered document and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
	contentType  string
}

// snapshot holds the documents of one build. Both formats are swapped
// together so clients never see an ICS and JSON from different builds.
type snapshot struct {
	ics  *cacheItem
	json *cacheItem
}

// CalendarServer serves the latest Feed.
type CalendarServer struct {
	// cache uses atomic.Pointer for lock-free reads on the hot path.
	cache atomic.Pointer[snapshot]
	Port  int
}

// NewCalendarServer creates a new instance of the server.
func NewCalendarServer(port int) *CalendarServer {
	return &CalendarServer{
		Port: port,
	}
}

// Routes returns the HTTP handler. Only GET and HEAD are accepted.
func (s *CalendarServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	})

	ics := s.serve(func(sn *snapshot) *cacheItem { return sn.ics })
	js := s.serve(func(sn *snapshot) *cacheItem { return sn.json })
	for pattern, h := range map[string]http.HandlerFunc{
		config.RouteICS:    ics,
		config.RouteJSON:   js,
		config.RouteHealth: s.handleHealth,
	} {
		r.Get(pattern, h)
		r.Head(pattern, h)
	}
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port <= 0 || s.Port > 65535 {
		return errors.New(config.ErrPortRange)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + strconv.Itoa(s.Port),
		Handler:      s.Routes(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served content.
func (s *CalendarServer) Update(feed Feed) {
	lastMod := time.Now().UTC().Format(http.TimeFormat)
	sn := &snapshot{
		ics:  newCacheItem(feed.ICS, config.MimeTextCalendar, lastMod),
		json: newCacheItem(feed.JSON, config.MimeJSON, lastMod),
	}
	s.cache.Store(sn)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(feed.ICS)+len(feed.JSON),
		config.LogKeyETag, sn.ics.etag,
	)
}

// Ready reports whether a feed has been published.
func (s *CalendarServer) Ready() bool {
	return s.cache.Load() != nil
}

func newCacheItem(data []byte, contentType, lastMod string) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: lastMod,
		contentType:  contentType,
	}
}

// serve returns a handler for one format of the cached snapshot, with
// HTTP caching support.
func (s *CalendarServer) serve(pick func(*snapshot) *cacheItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sn := s.cache.Load()
		if sn == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}
		item := pick(sn)

		w.Header().Set(config.HeaderContentType, item.contentType)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		w.Header().Set(config.HeaderServer, config.UserAgent)
		w.Header().Set(config.HeaderETag, item.etag)
		w.Header().Set(config.HeaderLastModified, item.lastModified)

		if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		if since := r.Header.Get(config.HeaderIfModSince); since != "" {
			if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
				if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
					if !serverTime.After(clientTime) {
						w.WriteHeader(http.StatusNotModified)
						return
					}
				}
			}
		}

		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
			}
		}
	}
}

// handleHealth answers 200 once a feed is published, 503 before.
func (s *CalendarServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	if !s.Ready() {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	if r.Method == http.MethodGet {
		_, _ = io.WriteString(w, config.HTTPMsgOK)
	}
}
