package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/tinker-fit/checkout/internal/awsx"
	"github.com/tinker-fit/checkout/internal/handlers"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	clients, err := awsx.NewClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	manufacturer := os.Getenv("MANUFACTURER_EMAIL")
	if manufacturer == "" {
		manufacturer = "orders@per4max.fit"
	}
	log.Printf("invoice emails will be copied to the manufacturer at %s", manufacturer)

	fromAddr := os.Getenv("FROM_ADDR")
	if fromAddr == "" {
		fromAddr = "do-not-reply@tinker.fit"
	}

	timeout := 30 * time.Second
	if v := os.Getenv("CHECKOUT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		}
	}

	cfg := handlers.HandlerConfig{
		DynamoDBClient:    clients.DynamoDB,
		SQSClient:         clients.SQS,
		CloudWatchClient:  clients.CloudWatch,
		UsersTable:        os.Getenv("USERS_TABLE"),
		OrdersTable:       os.Getenv("ORDERS_TABLE"),
		DesignsTable:      os.Getenv("DESIGNS_TABLE"),
		DiscountsTable:    os.Getenv("DISCOUNTS_TABLE"),
		CountersTable:     os.Getenv("COUNTERS_TABLE"),
		MailQueueURL:      os.Getenv("MAIL_QUEUE_URL"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		FromAddr:          fromAddr,
		ManufacturerEmail: manufacturer,
		RequestTimeout:    timeout,
	}

	r := setupRouter(cfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":8080"
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
