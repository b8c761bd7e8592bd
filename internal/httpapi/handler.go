package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/cart-service/internal/logging"
	"github.com/nikolayk812/cart-service/internal/result"
	"github.com/nikolayk812/cart-service/internal/telemetry"
	"github.com/nikolayk812/cart-service/internal/usecase"
	"github.com/shopspring/decimal"
)

// SessionHeader carries the caller's session ID.
const SessionHeader = "x-session-id"

const (
	opAddItem    = "add_item"
	opGetCart    = "get_cart"
	opRemoveItem = "remove_item"
)

type ItemAdder interface {
	Execute(ctx context.Context, sessionID string, in usecase.AddItemInput) result.Result[usecase.CartOutput]
}

type CartGetter interface {
	Execute(ctx context.Context, sessionID string) result.Result[usecase.CartOutput]
}

type ItemRemover interface {
	Execute(ctx context.Context, sessionID, sku string) result.Result[usecase.CartOutput]
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	add     ItemAdder
	get     CartGetter
	remove  ItemRemover
	db      Pinger
	metrics *telemetry.Metrics
}

// NewHandler wires the cart use cases to HTTP. db and metrics may be nil.
func NewHandler(add ItemAdder, get CartGetter, remove ItemRemover, db Pinger, metrics *telemetry.Metrics) *Handler {
	useJSONFieldNames()

	return &Handler{
		add:     add,
		get:     get,
		remove:  remove,
		db:      db,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.Health)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	g := r.Group("/v1/cart")
	g.GET("", h.GetCart)
	g.PATCH("/items", h.AddItem)
	g.DELETE("/items/:sku", h.RemoveItem)
}

type addItemRequest struct {
	SKU       string           `json:"sku" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,min=1,max=2147483647"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, validationMessages(err))
		return
	}

	in := usecase.AddItemInput{SKU: req.SKU, Quantity: req.Quantity}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			writeValidation(c, []string{"unitPrice must be greater than or equal to 0"})
			return
		}
		in.UnitPrice = *req.UnitPrice
	}

	r := h.add.Execute(c.Request.Context(), c.GetHeader(SessionHeader), in)
	h.respond(c, opAddItem, r, "item added or updated")
}

func (h *Handler) GetCart(c *gin.Context) {
	r := h.get.Execute(c.Request.Context(), c.GetHeader(SessionHeader))
	h.respond(c, opGetCart, r, "cart retrieved")
}

func (h *Handler) RemoveItem(c *gin.Context) {
	r := h.remove.Execute(c.Request.Context(), c.GetHeader(SessionHeader), c.Param("sku"))
	h.respond(c, opRemoveItem, r, "item removed")
}

func (h *Handler) Health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			logging.FromContext(ctx).WarnContext(ctx, "db.Ping failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) respond(c *gin.Context, op string, r result.Result[usecase.CartOutput], message string) {
	if h.metrics != nil {
		h.metrics.CartOperation(op, r.IsSuccess())
	}

	if r.IsFailure() {
		writeFailure(c, r)
		return
	}

	writeSuccess(c, message, r.Value())
}
