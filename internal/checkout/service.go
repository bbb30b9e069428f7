// Package checkout orchestrates one checkout request: validation, charge,
// persistence, numbering, notification — in that order, enforced
// structurally. No step after a failure executes.
package checkout

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tinker-fit/checkout/internal/domain"
	"github.com/tinker-fit/checkout/internal/invoice"
	"github.com/tinker-fit/checkout/internal/linker"
	"github.com/tinker-fit/checkout/internal/mail"
	"github.com/tinker-fit/checkout/internal/payments"
	"github.com/tinker-fit/checkout/internal/pricing"
)

// External messages preserved from the order API contract.
const (
	msgInvalidOrder     = "Invalid order"
	msgInvalidDiscounts = "Order Discounts were invalid"
	msgDiscountLookup   = "Error while validating order discounts"
	msgChargeFailed     = "Error while processing credit card payment"
	msgNotCartOrder     = "Given order was not the users cart order"
	msgSaveFailed       = "Error while saving order"
	msgNotifyFailed     = "Error while sending invoice emails"
)

type OrderStore interface {
	Persist(ctx context.Context, order *domain.Order, id string) (*domain.Order, error)
}

type UserStore interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Persist(ctx context.Context, user *domain.User, id string) (*domain.User, error)
}

type DiscountValidator interface {
	Validate(ctx context.Context, ids []string) (bool, error)
}

// NumberAllocator is the single serialized resource in the system.
type NumberAllocator interface {
	Increment(ctx context.Context) (int, error)
}

type Metrics interface {
	RecordCheckout(ctx context.Context, outcome string)
}

// Config wires the orchestrator's collaborators.
type Config struct {
	Orders            OrderStore
	Users             UserStore
	Discounts         DiscountValidator
	Pricing           pricing.Calculator
	Gateway           payments.Gateway
	Counter           NumberAllocator
	Invoices          invoice.Generator
	Mail              mail.Sender
	Metrics           Metrics
	FromAddr          string
	ManufacturerEmail string
}

type Service struct {
	cfg     Config
	nowFunc func() time.Time
}

func New(cfg Config) *Service {
	return &Service{
		cfg:     cfg,
		nowFunc: time.Now,
	}
}

// Input is one checkout request. SessionUserID is empty for guests; Token
// is the opaque gateway token minted client-side.
type Input struct {
	Order         *domain.Order
	Token         string
	SessionUserID string
}

// Result is the successful response: the session user with refreshed
// identity (nil for guests) and the allocated order number.
type Result struct {
	User     *domain.User
	OrderNum int
}

// Checkout runs the pipeline and records the outcome metric.
func (s *Service) Checkout(ctx context.Context, in Input) (Result, error) {
	res, err := s.run(ctx, in)
	s.cfg.Metrics.RecordCheckout(ctx, outcomeFor(err))
	return res, err
}

func (s *Service) run(ctx context.Context, in Input) (Result, error) {
	order := in.Order

	// Only the allocator may assign an order number.
	order.OrderNum = 0

	totals, err := s.cfg.Pricing.OrderTotal(order)
	if err != nil || !totals.Total.IsPositive() {
		return Result{}, fail(ClassValidation, msgInvalidOrder, err)
	}

	ids, ok := discountIDs(order.Discounts)
	if !ok {
		return Result{}, fail(ClassValidation, msgInvalidDiscounts, nil)
	}
	valid, err := s.cfg.Discounts.Validate(ctx, ids)
	if err != nil {
		// A store failure is not a rejection; the caller must not be told
		// the discounts were invalid.
		return Result{}, fail(ClassPersistence, msgDiscountLookup, err)
	}
	if !valid {
		return Result{}, fail(ClassValidation, msgInvalidDiscounts, nil)
	}

	// Read-only session reconciliation happens before the charge so a
	// stale or foreign cart can never be billed.
	user, err := s.sessionUser(ctx, in.SessionUserID, order)
	if err != nil {
		return Result{}, err
	}

	charge, err := s.charge(ctx, order, totals.Total, in.Token)
	if err != nil {
		return Result{}, err
	}

	// The financially irreversible step is behind us: every failure from
	// here on leaves a successful charge with no compensating refund.
	order.Subtotal, _ = totals.Subtotal.Float64()
	order.Tax, _ = totals.Tax.Float64()
	order.Shipping, _ = totals.Shipping.Float64()
	order.Total, _ = totals.Total.Float64()

	// Only a resolved session user may write at the submitted id: the cart
	// check proved ownership. A guest order always gets a fresh document,
	// whatever id the request body carried.
	persistID := order.ID
	if user == nil {
		order.ID = ""
		order.Rev = ""
		persistID = ""
	}
	persisted, err := s.cfg.Orders.Persist(ctx, order, persistID)
	if err != nil {
		log.Printf("checkout: order persistence failed after charge %q: %v", charge.ID, err)
		return Result{}, fail(ClassPersistence, msgSaveFailed, err)
	}

	if user != nil {
		user.Orders = append(user.Orders, domain.DocRef(persisted))
		user.Cart = nil
		user, err = s.cfg.Users.Persist(ctx, user, user.ID)
		if err != nil {
			log.Printf("checkout: user history update failed after charge %q: %v", charge.ID, err)
			return Result{}, fail(ClassPersistence, msgSaveFailed, err)
		}
	}

	num, err := s.cfg.Counter.Increment(ctx)
	if err != nil {
		log.Printf("checkout: order numbering failed after charge %q: %v", charge.ID, err)
		return Result{}, fail(ClassPersistence, msgSaveFailed, err)
	}

	persisted.OrderNum = num
	persisted.Sent = true
	persisted.SentDate = s.nowFunc().UTC()
	persisted, err = s.cfg.Orders.Persist(ctx, persisted, persisted.ID)
	if err != nil {
		log.Printf("checkout: numbered order write-back failed after charge %q: %v", charge.ID, err)
		return Result{}, fail(ClassPersistence, msgSaveFailed, err)
	}

	if err := s.notify(ctx, persisted); err != nil {
		return Result{}, fail(ClassNotification, msgNotifyFailed, err)
	}

	return Result{User: user, OrderNum: num}, nil
}

// sessionUser resolves the session to a user and asserts the submitted
// order is that user's cart. A failed user fetch falls through to guest
// checkout; a cart mismatch is a hard consistency failure with zero
// mutation.
func (s *Service) sessionUser(ctx context.Context, sessionUserID string, order *domain.Order) (*domain.User, error) {
	if sessionUserID == "" {
		return nil, nil
	}
	user, err := s.cfg.Users.Get(ctx, sessionUserID)
	if err != nil {
		log.Printf("checkout: session user %q not resolved, continuing as guest: %v", sessionUserID, err)
		return nil, nil
	}

	cartID := ""
	if user.Cart != nil {
		cartID = linker.EntryID[domain.Order, *domain.Order](*user.Cart)
	}
	if order.ID == "" || cartID == "" || order.ID != cartID {
		return nil, fail(ClassConsistency, msgNotCartOrder, nil)
	}
	return user, nil
}

func (s *Service) charge(ctx context.Context, order *domain.Order, total decimal.Decimal, token string) (payments.Charge, error) {
	if order.PayMethod != domain.PayMethodCreditCard {
		return payments.Charge{}, nil
	}
	charge, err := s.cfg.Gateway.CreateCharge(ctx, pricing.Cents(total), "usd", token, "Tinker order")
	if err != nil {
		return payments.Charge{}, fail(ClassGateway, msgChargeFailed, err)
	}
	return charge, nil
}

// notify generates the invoice artifact and dispatches the customer and
// manufacturer emails concurrently. Either delivery failing surfaces as
// one aggregate error without per-branch attribution.
func (s *Service) notify(ctx context.Context, order *domain.Order) error {
	path, err := s.cfg.Invoices.Generate(ctx, order)
	if err != nil {
		return err
	}

	customer := mail.Message{
		To:             order.Email,
		From:           s.cfg.FromAddr,
		Subject:        "Per4max Purchase Invoice",
		Body:           "Thank you for using Tinker to purchase your new Wheelchair. We have attached the invoice for your order.",
		AttachmentPath: path,
	}
	manufacturer := mail.Message{
		To:             s.cfg.ManufacturerEmail,
		From:           s.cfg.FromAddr,
		Subject:        "Per4max Purchase Invoice",
		Body:           "An order just been placed, here is a copy of the invoice",
		AttachmentPath: path,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.cfg.Mail.Send(gctx, customer) })
	g.Go(func() error { return s.cfg.Mail.Send(gctx, manufacturer) })
	return g.Wait()
}

func discountIDs(refs []domain.Ref[domain.Discount]) ([]string, bool) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		id := linker.EntryID[domain.Discount, *domain.Discount](ref)
		if id == "" {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func outcomeFor(err error) string {
	if err == nil {
		return "Succeeded"
	}
	if f, ok := err.(*Failure); ok {
		return f.Class.Outcome()
	}
	return "Failed"
}
