package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/internal/checkout"
	"Storefront/internal/pricing"
	"Storefront/pkg/config"
)

// shop is a terminal view of the storefront: it owns a local cart,
// browses the catalog through the gateway, and submits checkout.
type shop struct {
	cart     *cart.Store
	catalog  *catalog.Client
	checkout *checkout.Client
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()

	slot, err := newSlot(ctx, cfg)
	if err != nil {
		fatal(err)
	}

	s := &shop{
		cart:     cart.NewStore(ctx, slot, cart.NewBus(), zap.NewNop()),
		catalog:  catalog.NewClient(cfg.Shop.GatewayURL),
		checkout: checkout.NewClient(cfg.Shop.GatewayURL),
	}
	defer s.cart.Close()

	if err := s.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fatal(err)
	}
}

func newSlot(ctx context.Context, cfg *config.Config) (cart.Slot, error) {
	switch cfg.Cart.Slot {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return cart.NewRedisSlot(client, cfg.Cart.ClientID), nil
	default:
		return cart.NewFileSlot(cfg.Cart.File), nil
	}
}

func (s *shop) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return s.list(ctx)
	case "show":
		return s.show(ctx, args)
	case "add":
		return s.add(ctx, args)
	case "set":
		return s.set(ctx, args)
	case "rm":
		return s.remove(ctx, args)
	case "clear":
		s.cart.Clear(ctx)
		return nil
	case "cart":
		return s.showCart(ctx)
	case "checkout":
		return s.placeOrder(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (s *shop) list(ctx context.Context) error {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	for _, p := range products {
		fmt.Printf("%-22s %10s  %s\n", p.ID, formatCents(p.PriceCents), p.Name)
	}
	return nil
}

func (s *shop) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shop show <product-id>")
	}

	p, err := s.catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n%s\n", p.Name, p.Description, formatCents(p.PriceCents))
	if len(p.Sizes) > 0 {
		fmt.Printf("sizes: %v\n", p.Sizes)
	}
	return nil
}

func (s *shop) add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: shop add <product-id> [qty]")
	}

	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad quantity %q", args[1])
		}
		qty = n
	}

	s.cart.Add(ctx, args[0], qty)
	fmt.Printf("cart now holds %d item(s)\n", s.cart.ItemCount())
	return nil
}

func (s *shop) set(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: shop set <product-id> <qty>")
	}

	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad quantity %q", args[1])
	}

	s.cart.SetQuantity(ctx, args[0], qty)
	return nil
}

func (s *shop) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shop rm <product-id>")
	}
	s.cart.Remove(ctx, args[0])
	return nil
}

func (s *shop) showCart(ctx context.Context) error {
	lines, totals, err := s.project(ctx)
	if err != nil {
		return err
	}

	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}

	for _, l := range lines {
		fmt.Printf("%2d x %-22s %10s\n", l.Quantity, l.Name, formatCents(l.PriceCents*int64(l.Quantity)))
	}
	fmt.Printf("subtotal %s  shipping %s  tax %s  total %s\n",
		formatCents(totals.SubtotalCents),
		formatCents(totals.ShippingCents),
		formatCents(totals.TaxCents),
		formatCents(totals.TotalCents),
	)
	return nil
}

func (s *shop) placeOrder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	method := fs.String("method", "card", "payment method: card, stripe, paypal, googlepay, applepay, cod")
	name := fs.String("name", "", "cardholder name")
	number := fs.String("number", "", "card number")
	expiry := fs.String("expiry", "", "card expiry MM/YY")
	cvc := fs.String("cvc", "", "card CVC")
	if err := fs.Parse(args); err != nil {
		return err
	}

	lines, totals, err := s.project(ctx)
	if err != nil {
		return err
	}

	items := make([]checkout.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, checkout.Item{ID: l.ProductID, Quantity: l.Quantity})
	}

	card := checkout.CardDetails{
		HolderName: *name,
		Number:     *number,
		Expiry:     *expiry,
		CVC:        *cvc,
	}

	order, err := s.checkout.PlaceOrder(ctx, items, checkout.PaymentMethod(*method), card, totals)
	if err != nil {
		return err
	}

	// The cart is cleared exactly once, only after a confirmed order.
	s.cart.Clear(ctx)

	fmt.Printf("order %s placed, total %s\n", order.OrderID, formatCents(order.TotalCents))
	return nil
}

func (s *shop) project(ctx context.Context) ([]cart.Line, pricing.Totals, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, pricing.Totals{}, fmt.Errorf("failed to load products: %w", err)
	}

	lines := cart.Project(s.cart.Entries(), snapshot)
	return lines, pricing.Compute(cart.Subtotal(lines)), nil
}

func formatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shop <command> [args]

commands:
  list                      list catalog products
  show <id>                 show one product
  add <id> [qty]            add to cart
  set <id> <qty>            set quantity (0 removes)
  rm <id>                   remove from cart
  clear                     empty the cart
  cart                      show cart with totals
  checkout [flags]          place the order`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "shop:", err)
	os.Exit(1)
}
