package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jredh-dev/velox/internal/catalog"
	"github.com/jredh-dev/velox/internal/countdown"
	"github.com/jredh-dev/velox/internal/insight"
	"github.com/jredh-dev/velox/internal/money"
)

// recentBids is how many bids the lot detail lists.
const recentBids = 5

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store   *catalog.Store
	insight *insight.Provider
	board   *countdown.Board
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Handler.
type Option func(*handlerOptions)

type handlerOptions struct {
	now      func() time.Time
	logger   *slog.Logger
	interval time.Duration
}

// WithClock replaces time.Now for deadlines and bid timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *handlerOptions) { o.now = now }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *handlerOptions) { o.logger = l }
}

// WithCountdownInterval sets how often the catalog time labels are rebuilt.
func WithCountdownInterval(d time.Duration) Option {
	return func(o *handlerOptions) { o.interval = d }
}

// New creates a new Handler and starts its countdown board.
func New(s *catalog.Store, p *insight.Provider, opts ...Option) *Handler {
	o := handlerOptions{now: time.Now, logger: slog.Default(), interval: countdown.DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}
	h := &Handler{
		store:   s,
		insight: p,
		now:     o.now,
		logger:  o.logger,
	}
	h.board = countdown.NewBoard(countdown.SourceFunc(h.deadlines), o.interval, countdown.WithClock(o.now))
	return h
}

// Stop shuts down background work.
func (h *Handler) Stop() {
	h.board.Stop()
}

// Routes mounts the catalog API on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/categories", h.Categories)
	r.Get("/items", h.List)
	r.Get("/items/{id}", h.Get)
	r.Post("/items/{id}/bids", h.PlaceBid)
	r.Get("/items/{id}/insight", h.Insight)
	r.Get("/stats", h.Stats)
}

func (h *Handler) deadlines() []countdown.Deadline {
	items := h.store.List()
	out := make([]countdown.Deadline, 0, len(items))
	for _, it := range items {
		out = append(out, countdown.Deadline{ID: it.ID, EndsAt: it.EndsAt})
	}
	return out
}

type itemView struct {
	catalog.Item
	Lot               string        `json:"lot"`
	Floor             money.Amount  `json:"floor"`
	CurrentBidDisplay string        `json:"current_bid_display"`
	FloorDisplay      string        `json:"floor_display"`
	IncrementDisplay  string        `json:"increment_display"`
	TimeLeft          string        `json:"time_left"`
	Biddable          bool          `json:"biddable"`
	RecentBids        []catalog.Bid `json:"recent_bids,omitempty"`
}

func (h *Handler) view(it catalog.Item, now time.Time, timeLeft string) itemView {
	return itemView{
		Item:              it,
		Lot:               it.LotLabel(),
		Floor:             it.Floor(),
		CurrentBidDisplay: it.CurrentBid.String(),
		FloorDisplay:      it.Floor().String(),
		IncrementDisplay:  it.Increment.String(),
		TimeLeft:          timeLeft,
		Biddable:          it.Biddable(now),
	}
}

func (h *Handler) detail(it catalog.Item, now time.Time) itemView {
	v := h.view(it, now, countdown.Label(now, it.EndsAt, countdown.Fine))
	v.RecentBids = it.LastBids(recentBids)
	return v
}

// Categories handles GET /api/categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, http.StatusOK, catalog.Categories)
}

// List handles GET /api/items?category=&q=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	category := catalog.ParseCategory(r.URL.Query().Get("category"))
	items := h.store.Query(category, r.URL.Query().Get("q"))

	now := h.now()
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, h.view(it, now, h.board.Label(it.ID, it.EndsAt, now)))
	}
	jsonOK(w, http.StatusOK, out)
}

// Get handles GET /api/items/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.bidError(w, r, err)
		return
	}
	jsonOK(w, http.StatusOK, h.detail(it, h.now()))
}

type bidReq struct {
	Amount     money.Amount `json:"amount"`
	BidderName string       `json:"bidder_name"`
}

type bidResp struct {
	Bid      catalog.Bid  `json:"bid"`
	Item     itemView     `json:"item"`
	Previous money.Amount `json:"previous_bid"`
	Message  string       `json:"message"`
}

// PlaceBid handles POST /api/items/{id}/bids
func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	var req bidReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	now := h.now()
	res, err := h.store.PlaceBid(id, req.Amount, req.BidderName, now)
	if err != nil {
		h.bidError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "bid accepted",
		"item", id, "amount", res.Bid.Amount.Centavos(), "bidder", res.Bid.BidderName, "previous", res.Previous.Centavos())

	jsonOK(w, http.StatusCreated, bidResp{
		Bid:      res.Bid,
		Item:     h.detail(res.Item, now),
		Previous: res.Previous,
		Message:  "Lance de " + res.Bid.Amount.String() + " registrado!",
	})
}

// Insight handles GET /api/items/{id}/insight
func (h *Handler) Insight(w http.ResponseWriter, r *http.Request) {
	it, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.bidError(w, r, err)
		return
	}
	text := h.insight.Insight(r.Context(), it.Title, it.CurrentBid)
	jsonOK(w, http.StatusOK, map[string]string{"insight": text})
}

// Stats handles GET /api/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, http.StatusOK, h.store.Stats(h.now()))
}

// bidError maps catalog errors to responses. A rejected bid carries the
// floor so the client can retry at once.
func (h *Handler) bidError(w http.ResponseWriter, r *http.Request, err error) {
	var low *catalog.BidTooLowError
	switch {
	case errors.As(err, &low):
		jsonOK(w, http.StatusUnprocessableEntity, map[string]any{
			"error":         "O lance deve ser no mínimo " + low.Floor.String(),
			"floor":         low.Floor,
			"floor_display": low.Floor.String(),
			"current_bid":   low.Current,
		})
	case errors.Is(err, catalog.ErrBidTooHigh):
		jsonError(w, "O lance excede o máximo de "+money.Max.String(), http.StatusUnprocessableEntity)
	case errors.Is(err, catalog.ErrNotFound):
		jsonError(w, "lote não encontrado", http.StatusNotFound)
	case errors.Is(err, catalog.ErrAuctionClosed):
		jsonError(w, "leilão encerrado", http.StatusConflict)
	default:
		h.logger.ErrorContext(r.Context(), "catalog request failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

// --- helpers ---

func jsonOK(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
