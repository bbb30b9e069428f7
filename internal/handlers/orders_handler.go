package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/tinker-fit/checkout/internal/awsx"
	"github.com/tinker-fit/checkout/internal/checkout"
	"github.com/tinker-fit/checkout/internal/discounts"
	"github.com/tinker-fit/checkout/internal/docstore"
	"github.com/tinker-fit/checkout/internal/domain"
	"github.com/tinker-fit/checkout/internal/invoice"
	"github.com/tinker-fit/checkout/internal/mail"
	"github.com/tinker-fit/checkout/internal/metrics"
	"github.com/tinker-fit/checkout/internal/payments"
	"github.com/tinker-fit/checkout/internal/persist"
	"github.com/tinker-fit/checkout/internal/pricing"
	"github.com/tinker-fit/checkout/internal/validation"
)

// Session mechanics are out of scope; the fronting layer authenticates and
// forwards the user id in this header.
const sessionHeader = "X-Session-User"

// HandlerConfig groups dependencies for the checkout handlers.
type HandlerConfig struct {
	DynamoDBClient    awsx.DynamoDBAPI
	SQSClient         awsx.SQSAPI
	CloudWatchClient  awsx.CloudWatchAPI
	UsersTable        string
	OrdersTable       string
	DesignsTable      string
	DiscountsTable    string
	CountersTable     string
	MailQueueURL      string
	StripeSecretKey   string
	FromAddr          string
	ManufacturerEmail string
	RequestTimeout    time.Duration
}

// RegisterRoutes wires the persistence stack and checkout pipeline onto
// the router.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	designColl := docstore.NewCollection[domain.Design](cfg.DynamoDBClient, cfg.DesignsTable)
	orderColl := docstore.NewCollection[domain.StoredOrder](cfg.DynamoDBClient, cfg.OrdersTable)
	userColl := docstore.NewCollection[domain.StoredUser](cfg.DynamoDBClient, cfg.UsersTable)
	discountColl := docstore.NewCollection[domain.Discount](cfg.DynamoDBClient, cfg.DiscountsTable)

	designs := persist.NewDesigns(designColl, docstore.NewAllocator(designColl.Exists))
	orders := persist.NewOrders(orderColl, designs)
	users := persist.NewUsers(userColl, orders, designs)

	calc := pricing.NewStandard()
	invoices := invoice.NewTextGenerator()

	var m checkout.Metrics = metrics.Noop{}
	if cfg.CloudWatchClient != nil {
		m = metrics.NewEmitter(cfg.CloudWatchClient, "TinkerCheckout")
	}

	svc := checkout.New(checkout.Config{
		Orders:            orders,
		Users:             users,
		Discounts:         discounts.NewValidator(discountColl),
		Pricing:           calc,
		Gateway:           payments.NewStripeGateway(cfg.StripeSecretKey),
		Counter:           docstore.NewCounter(cfg.DynamoDBClient, cfg.CountersTable, "order_number"),
		Invoices:          invoices,
		Mail:              mail.NewQueueSender(awsx.NewPublisher(cfg.SQSClient, cfg.MailQueueURL)),
		Metrics:           m,
		FromAddr:          cfg.FromAddr,
		ManufacturerEmail: cfg.ManufacturerEmail,
	})

	r.POST("/order", handleOrder(svc, v, cfg.RequestTimeout))
	r.POST("/save", handleSave(calc, invoices, cfg.RequestTimeout))
}

// OrderService is the checkout surface the order handler needs.
type OrderService interface {
	Checkout(ctx context.Context, in checkout.Input) (checkout.Result, error)
}

func handleOrder(svc OrderService, v *validatorv10.Validate, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		var req validation.OrderRequest
		if err := validation.BindAndValidate(c, &req, v, "Invalid order"); err != nil {
			return
		}

		res, err := svc.Checkout(ctx, checkout.Input{
			Order:         req.Order,
			Token:         req.Token,
			SessionUserID: c.GetHeader(sessionHeader),
		})
		if err != nil {
			var f *checkout.Failure
			if errors.As(err, &f) {
				c.JSON(f.Class.HTTPStatus(), gin.H{"err": f.Msg})
				return
			}
			log.Printf("order: unclassified checkout error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"err": "Internal error"})
			return
		}

		// Guests get an empty user object, not null.
		var user any = gin.H{}
		if res.User != nil {
			user = res.User
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "orderNum": res.OrderNum})
	}
}

// handleSave cross-checks a single wheelchair and replies with its spec
// sheet artifact. The rejection body is plain text, not the JSON error
// shape the order endpoint uses; that asymmetry is part of the endpoint's
// contract.
func handleSave(calc pricing.Calculator, gen invoice.Generator, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		var req validation.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Wheelchair == nil {
			c.String(http.StatusBadRequest, "Invalid chair")
			return
		}

		total, err := calc.ChairTotal(req.Wheelchair)
		if err != nil || !total.IsPositive() {
			c.String(http.StatusBadRequest, "Invalid chair")
			return
		}

		chair := *req.Wheelchair
		subtotal, _ := total.Float64()
		preview := &domain.Order{
			Wheelchairs: []domain.Ref[domain.Design]{domain.DocRef(&chair)},
			Subtotal:    subtotal,
			Total:       subtotal,
		}
		path, err := gen.Generate(ctx, preview)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"err": "Error while generating chair document"})
			return
		}
		c.FileAttachment(path, "wheelchair.txt")
	}
}

func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
