// Package session owns one shopper's catalog, cart and checkout. Every operation goes
// through a CartSession, which serializes access for the concurrent HTTP front end.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	cartdomain "github.com/ridloal/sorav-storefront/internal/cart/domain"
	"github.com/ridloal/sorav-storefront/internal/cart/repository"
	cartservice "github.com/ridloal/sorav-storefront/internal/cart/service"
	catalogdomain "github.com/ridloal/sorav-storefront/internal/catalog/domain"
	catalogservice "github.com/ridloal/sorav-storefront/internal/catalog/service"
	checkoutdomain "github.com/ridloal/sorav-storefront/internal/checkout/domain"
	checkoutservice "github.com/ridloal/sorav-storefront/internal/checkout/service"
	"github.com/ridloal/sorav-storefront/internal/invoice"
	orderdomain "github.com/ridloal/sorav-storefront/internal/order/domain"
	orderservice "github.com/ridloal/sorav-storefront/internal/order/service"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
	"github.com/ridloal/sorav-storefront/internal/pricing"
)

var ErrProductNotFound = errors.New("product not found")

const DefaultStorageKey = "sorav_cart"

type Deps struct {
	Repository      repository.SnapshotRepository
	StorageKey      string
	Scheduler       checkoutservice.Scheduler
	ProcessingDelay time.Duration
	Orders          orderservice.OrderFactory
	Invoices        *invoice.Presenter
}

type CartSession struct {
	mu       sync.Mutex
	registry catalogservice.ProductRegistry
	store    cartservice.CartStore
	orders   orderservice.OrderFactory
	invoices *invoice.Presenter
	checkout checkoutservice.CheckoutFlow

	ownScheduler *checkoutservice.CronScheduler
}

// New builds an empty session. Call Load to restore the persisted cart.
// Without a Scheduler the session runs its own cron scheduler, released by Close.
func New(deps Deps) *CartSession {
	key := deps.StorageKey
	if key == "" {
		key = DefaultStorageKey
	}
	repo := deps.Repository
	if repo == nil {
		repo = repository.NewMemorySnapshotRepository()
	}
	orders := deps.Orders
	if orders == nil {
		orders = orderservice.NewOrderFactory(orderservice.OrderFactoryDeps{})
	}
	invoices := deps.Invoices
	if invoices == nil {
		invoices = invoice.NewPresenter("", "")
	}

	s := &CartSession{
		registry: catalogservice.NewProductRegistry(),
		store:    cartservice.NewCartStore(repo, key),
		orders:   orders,
		invoices: invoices,
	}
	scheduler := deps.Scheduler
	if scheduler == nil {
		s.ownScheduler = checkoutservice.NewCronScheduler()
		scheduler = s.ownScheduler
	}
	s.checkout = checkoutservice.NewCheckoutFlow(checkoutservice.CheckoutFlowDeps{
		Cart:            unlockedCart{s},
		Completer:       s,
		Scheduler:       scheduler,
		ProcessingDelay: deps.ProcessingDelay,
	})
	return s
}

func (s *CartSession) Close() {
	if s.ownScheduler != nil {
		s.ownScheduler.Stop()
	}
}

// unlockedCart is handed to the checkout flow, which only consults it from
// calls the session already holds its lock for.
type unlockedCart struct {
	s *CartSession
}

func (c unlockedCart) IsEmpty() bool {
	return c.s.store.Cart().IsEmpty()
}

func (s *CartSession) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.LoadPersisted(ctx)
}

// Catalog

func (s *CartSession) EnsureProduct(card catalogdomain.CardDescriptor) catalogdomain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.registry.EnsureProduct(card.Name, card.PriceText, card.ImageRef)
	p, _ := s.registry.GetProduct(id)
	return p
}

// ScanCatalog registers every product card in a storefront page and returns the
// products in card order, repeats included.
func (s *CartSession) ScanCatalog(r io.Reader) ([]catalogdomain.Product, error) {
	cards, err := catalogservice.ScanCards(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ids := catalogservice.RegisterCards(s.registry, cards)
	products := make([]catalogdomain.Product, 0, len(ids))
	for _, id := range ids {
		p, _ := s.registry.GetProduct(id)
		products = append(products, p)
	}
	return products, nil
}

func (s *CartSession) Product(id int) (catalogdomain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.GetProduct(id)
}

func (s *CartSession) ProductByName(name string) (catalogdomain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.GetProductByName(name)
}

func (s *CartSession) Products() []catalogdomain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.List()
}

// Cart

// editableLocked rejects cart changes while a payment is processing. The order placed
// when the delay ends is priced from the cart as it was at payment.
func (s *CartSession) editableLocked() error {
	if s.checkout.Status().State == checkoutdomain.StateProcessing {
		return fmt.Errorf("%w: the cart is locked until the order is placed", checkoutservice.ErrCheckoutInProgress)
	}
	return nil
}

// AddItem only accepts ids the registry knows about.
func (s *CartSession) AddItem(ctx context.Context, productID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	if _, ok := s.registry.GetProduct(productID); !ok {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	return s.store.AddItem(ctx, productID, qty)
}

func (s *CartSession) ChangeQuantity(ctx context.Context, productID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	return s.store.ChangeQuantity(ctx, productID, delta)
}

func (s *CartSession) RemoveItem(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	return s.store.RemoveItem(ctx, productID)
}

func (s *CartSession) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	return s.store.Clear(ctx)
}

// CartView is the cart as the storefront drawer shows it.
type CartView struct {
	Entries      []cartdomain.Entry `json:"entries"`
	Items        []pricing.LineItem `json:"items"`
	CountLabel   string             `json:"count_label"`
	Subtotal     int64              `json:"subtotal"`
	SubtotalText string             `json:"subtotal_text"`
}

func (s *CartSession) View() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Cart()
	totals := pricing.ComputeTotals(c, s.registry)
	items := totals.LineItems
	if items == nil {
		items = []pricing.LineItem{}
	}
	return CartView{
		Entries:      c.Entries(),
		Items:        items,
		CountLabel:   CountLabel(c.Len()),
		Subtotal:     totals.Subtotal,
		SubtotalText: invoice.FormatINR(totals.Subtotal),
	}
}

// CountLabel is "1 item" or "N items", counting distinct cart entries.
func CountLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}

func (s *CartSession) Cart() cartdomain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Cart()
}

// Orders

// Preview prices the cart without committing anything. An empty cart is rejected.
func (s *CartSession) Preview() (orderdomain.Order, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Cart()
	if c.IsEmpty() {
		return orderdomain.Order{}, "", checkoutservice.ErrEmptyCart
	}
	order := s.orders.CreatePreview(c, s.registry)
	html, err := s.invoices.Render(order)
	if err != nil {
		return order, "", err
	}
	return order, html, nil
}

// Checkout

func (s *CartSession) BeginCheckout() (checkoutservice.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.checkout.Begin()
	return s.checkout.Status(), err
}

func (s *CartSession) SubmitPayment(details checkoutdomain.PaymentDetails) (checkoutservice.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.checkout.SubmitPayment(details)
	return s.checkout.Status(), err
}

func (s *CartSession) AbandonCheckout() (checkoutservice.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.checkout.Abandon()
	return s.checkout.Status(), err
}

func (s *CartSession) CheckoutStatus() checkoutservice.Status {
	return s.checkout.Status()
}

// WaitCheckout blocks until a pending checkout completes. It must not be called with the session locked.
func (s *CartSession) WaitCheckout(ctx context.Context) (checkoutservice.Status, error) {
	return s.checkout.Wait(ctx)
}

// Complete runs once the processing delay resolves: it creates the order, renders the
// invoice and clears the cart, whatever the outcome of the render or the clear.
func (s *CartSession) Complete(ctx context.Context) checkoutservice.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.orders.CreateOrder(s.store.Cart(), s.registry)
	html, err := s.invoices.Render(order)
	if err != nil {
		logger.Error("invoice render failed", err, zap.String("order_id", order.ID))
	}
	if err := s.store.Clear(ctx); err != nil {
		logger.Error("cart clear after checkout failed", err, zap.String("order_id", order.ID))
	}
	return checkoutservice.Receipt{Order: order, InvoiceHTML: html}
}
