package checkout

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/pkg/kit"
)

type Server struct {
	Catalog *catalog.Client
	Log     *zap.Logger
}

type orderItem struct {
	ID string `json:"id"`
	// Quantity arrives as a JSON number and may carry a fraction; it is
	// floored and clamped before use.
	Quantity float64 `json:"quantity"`
}

type placeOrderRequest struct {
	Items []orderItem `json:"items"`

	// Client-computed pricing is advisory only. The server recomputes the
	// total from catalog prices and never trusts these fields.
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Subtotal      int64  `json:"subtotal,omitempty"`
	Shipping      int64  `json:"shipping,omitempty"`
	Tax           int64  `json:"tax,omitempty"`
	Total         int64  `json:"total,omitempty"`
}

// Order is the ephemeral confirmation returned on success. Nothing is
// persisted; retrying the same request creates a second, independent order.
type Order struct {
	Success    bool   `json:"success"`
	OrderID    string `json:"orderId"`
	TotalCents int64  `json:"totalCents"`
}

var (
	errMalformed       = errors.New("invalid request")
	errEmptyCart       = errors.New("cart is empty")
	errUnknownProduct  = errors.New("invalid product id")
	errInvalidQuantity = errors.New("invalid quantity")
	errTotalOverflow   = errors.New("total overflow")
	errCatalogDown     = errors.New("catalog unavailable")
	errCatalogUpstream = errors.New("catalog error")
)

func (s *Server) PlaceOrderHandler() http.HandlerFunc { return s.placeOrder }

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := kit.DecodeStrict(w, r, &req); err != nil {
		// "items" bound to a non-array reads as no sequence at all, which
		// is an empty cart, not a malformed body.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "items" {
			s.writeOrderError(w, r, errEmptyCart)
			return
		}
		s.writeOrderError(w, r, errMalformed)
		return
	}

	totalCents, err := s.validateAndPrice(r, req.Items)
	if err != nil {
		s.writeOrderError(w, r, err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, Order{
		Success:    true,
		OrderID:    "ord_" + uuid.NewString(),
		TotalCents: totalCents,
	})
}

// validateAndPrice walks the submitted lines in order and fails on the
// first violation. The returned total is unit price times normalized
// quantity; shipping and tax stay out of the order contract.
func (s *Server) validateAndPrice(r *http.Request, items []orderItem) (int64, error) {
	if len(items) == 0 {
		return 0, errEmptyCart
	}

	var total int64
	for _, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return 0, fmt.Errorf("%w: %q", errUnknownProduct, it.ID)
		}

		p, err := s.Catalog.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, catalog.ErrNotFound):
				return 0, fmt.Errorf("%w: %s", errUnknownProduct, id)
			case errors.Is(err, catalog.ErrUnavailable):
				return 0, errCatalogDown
			default:
				if s.Log != nil {
					s.Log.Warn("catalog lookup failed", zap.Error(err), zap.String("product_id", id))
				}
				return 0, errCatalogUpstream
			}
		}

		qty := normalizeQuantity(it.Quantity)
		if qty <= 0 {
			return 0, fmt.Errorf("%w for %s", errInvalidQuantity, id)
		}

		line := p.PriceCents * int64(qty)
		if line < 0 || total > math.MaxInt64-line {
			return 0, errTotalOverflow
		}
		total += line
	}

	return total, nil
}

// normalizeQuantity floors to an integer and clamps to [0, 99]. The clamp
// happens in the float domain so a huge JSON number cannot overflow the
// int conversion. NaN and negative values end up at zero, which the
// caller rejects.
func normalizeQuantity(q float64) int {
	if math.IsNaN(q) || q < 0 {
		return 0
	}
	if q > 99 {
		return 99
	}
	return int(math.Floor(q))
}

func (s *Server) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errMalformed),
		errors.Is(err, errEmptyCart),
		errors.Is(err, errUnknownProduct),
		errors.Is(err, errInvalidQuantity),
		errors.Is(err, errTotalOverflow):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, errCatalogDown):
		kit.WriteError(w, r, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, errCatalogUpstream):
		kit.WriteError(w, r, http.StatusBadGateway, err.Error(), nil)
	default:
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}
