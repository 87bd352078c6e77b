package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/wa-widget/internal/config"
	"github.com/sells-group/wa-widget/internal/message"
	"github.com/sells-group/wa-widget/internal/page"
	"github.com/sells-group/wa-widget/internal/tracking"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 64 << 10
)

// documentRequest is the page state posted by the widget.
type documentRequest struct {
	URL      string `json:"url"`
	Referrer string `json:"referrer"`
	Cookie   string `json:"cookie"`
	Title    string `json:"title"`
}

func (d documentRequest) document() page.Document {
	return page.Document{URL: d.URL, Referrer: d.Referrer, Cookie: d.Cookie, Title: d.Title}
}

// linkRequest adds optional per-request overrides of the widget config.
type linkRequest struct {
	documentRequest
	Phone   string  `json:"phone"`
	Message *string `json:"message"`
	UTM     *bool   `json:"utm"`
}

type api struct {
	widget   config.WidgetConfig
	resolver *tracking.Resolver
}

// buildRouter wires the link API routes and middleware.
func buildRouter(c *config.Config) http.Handler {
	a := &api{
		widget:   c.Widget,
		resolver: tracking.NewDefaultResolver(resolverOptions(c)...),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: c.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(c.Server.RateLimit), c.Server.RateBurst)))
		r.Post("/resolve", a.handleResolve)
		r.Post("/enrich", a.handleEnrich)
		r.Post("/link", a.handleLink)
	})

	return r
}

func (a *api) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	resolved := a.resolver.Resolve(page.Static(req.document()))
	writeJSON(w, http.StatusOK, map[string]any{"tracking": resolved})
}

func (a *api) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	doc := req.document()
	resolved := a.resolver.Resolve(page.Static(doc))
	writeJSON(w, http.StatusOK, map[string]any{
		"url":      tracking.Enrich(doc.Location(), resolved),
		"tracking": resolved,
	})
}

func (a *api) handleLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	widget := a.widget
	if req.Phone != "" {
		widget.Phone = req.Phone
	}
	if req.Message != nil {
		widget.Message = *req.Message
	}
	if req.UTM != nil {
		widget.UTM = *req.UTM
	}

	b := &message.Builder{Tracking: widget.UTM, Resolver: a.resolver}
	link, err := b.BuildURL(widget.Phone, widget.Message, page.Static(req.document()))
	if errors.Is(err, message.ErrPhoneRequired) {
		writeError(w, http.StatusBadRequest, "phone is required")
		return
	}
	if err != nil {
		zap.L().Error("link build failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"link": link})
}

// pageRequest is a request body carrying page state.
type pageRequest interface {
	document() page.Document
}

// decodeRequest reads the JSON body into dst and checks the page URL.
// It writes a 400 and returns false on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst pageRequest) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validateDocument(dst.document()); err != nil {
		writeError(w, http.StatusBadRequest, "url is required")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger tags each request with an ID (reusing a valid incoming
// X-Request-ID) and logs it once the handler returns.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		zap.L().Info("http request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// rateLimit rejects requests with 429 once the shared limiter is exhausted.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
