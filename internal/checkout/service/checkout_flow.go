package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ridloal/sorav-storefront/internal/checkout/domain"
	orderdomain "github.com/ridloal/sorav-storefront/internal/order/domain"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout is already processing")
	ErrInvalidTransition  = errors.New("invalid checkout transition")
)

const DefaultProcessingDelay = 1200 * time.Millisecond

// CartInspector reports whether there is anything to check out.
// It is called with the owning session already locked and must not lock it again.
type CartInspector interface {
	IsEmpty() bool
}

// Receipt is what a completed checkout leaves behind.
type Receipt struct {
	Order       orderdomain.Order
	InvoiceHTML string
}

// Completer creates the order, renders its invoice and clears the cart.
// It runs after the processing delay, outside of any flow call.
type Completer interface {
	Complete(ctx context.Context) Receipt
}

type Status struct {
	State       domain.State       `json:"state"`
	Order       *orderdomain.Order `json:"order,omitempty"`
	InvoiceHTML string             `json:"invoice_html,omitempty"`
}

// CheckoutFlow is the Idle -> AwaitingPaymentInput -> Processing -> Completed state machine.
type CheckoutFlow interface {
	Begin() error
	SubmitPayment(details domain.PaymentDetails) error
	Abandon() error
	Status() Status
	Wait(ctx context.Context) (Status, error)
}

type CheckoutFlowDeps struct {
	Cart            CartInspector
	Completer       Completer
	Scheduler       Scheduler
	ProcessingDelay time.Duration
}

type checkoutFlowImpl struct {
	cart      CartInspector
	completer Completer
	scheduler Scheduler
	delay     time.Duration

	mu      sync.Mutex
	state   domain.State
	receipt *Receipt
	done    chan struct{}
}

func NewCheckoutFlow(deps CheckoutFlowDeps) CheckoutFlow {
	delay := deps.ProcessingDelay
	if delay < 0 {
		delay = 0
	}
	return &checkoutFlowImpl{
		cart:      deps.Cart,
		completer: deps.Completer,
		scheduler: deps.Scheduler,
		delay:     delay,
	}
}

// Begin opens the payment step. An empty cart is rejected without a transition.
func (f *checkoutFlowImpl) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case domain.StateProcessing:
		return ErrCheckoutInProgress
	case domain.StateAwaitingPaymentInput:
		return nil
	}
	if f.cart.IsEmpty() {
		return ErrEmptyCart
	}

	f.transition(domain.StateAwaitingPaymentInput)
	f.receipt = nil
	f.done = nil
	return nil
}

// SubmitPayment validates the details and schedules order creation after the processing delay.
// Invalid details leave the flow waiting for input.
func (f *checkoutFlowImpl) SubmitPayment(details domain.PaymentDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case domain.StateAwaitingPaymentInput:
	case domain.StateProcessing:
		return ErrCheckoutInProgress
	default:
		return fmt.Errorf("%w: cannot submit payment while %s", ErrInvalidTransition, f.state)
	}
	if f.cart.IsEmpty() {
		return ErrEmptyCart
	}
	if err := details.Validate(); err != nil {
		return err
	}

	f.transition(domain.StateProcessing)
	done := make(chan struct{})
	f.done = done
	f.scheduler.After(f.delay, func() { f.complete(done) })
	return nil
}

func (f *checkoutFlowImpl) complete(done chan struct{}) {
	receipt := f.completer.Complete(context.Background())

	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipt = &receipt
	f.transition(domain.StateCompleted)
	close(done)
	logger.Info("checkout completed",
		zap.String("order_id", receipt.Order.ID),
		zap.Int64("grand_total", receipt.Order.GrandTotal),
	)
}

// Abandon closes the payment step or dismisses a finished checkout. Nothing is mutated.
func (f *checkoutFlowImpl) Abandon() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case domain.StateProcessing:
		return ErrCheckoutInProgress
	case domain.StateIdle:
		return nil
	}
	f.transition(domain.StateIdle)
	f.receipt = nil
	f.done = nil
	return nil
}

func (f *checkoutFlowImpl) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusLocked()
}

// Wait blocks until a pending completion has run or ctx is done.
func (f *checkoutFlowImpl) Wait(ctx context.Context) (Status, error) {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return f.Status(), ctx.Err()
		}
	}
	return f.Status(), nil
}

func (f *checkoutFlowImpl) statusLocked() Status {
	st := Status{State: f.state}
	if f.receipt != nil {
		order := f.receipt.Order
		st.Order = &order
		st.InvoiceHTML = f.receipt.InvoiceHTML
	}
	return st
}

func (f *checkoutFlowImpl) transition(to domain.State) {
	logger.Info("checkout transition", zap.Stringer("from", f.state), zap.Stringer("to", to))
	f.state = to
}
