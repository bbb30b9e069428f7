package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateCharge_Success(t *testing.T) {
	var gotForm map[string]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/charges" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, _, _ := r.BasicAuth()
		gotAuth = user
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"amount":   r.PostForm.Get("amount"),
			"currency": r.PostForm.Get("currency"),
			"source":   r.PostForm.Get("source"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"ch_123","amount":12124,"currency":"usd","status":"succeeded"}`))
	}))
	defer srv.Close()

	g := NewStripeGatewayURL("sk_test_abc", srv.URL)
	charge, err := g.CreateCharge(context.Background(), 12124, "usd", "tok_visa", "Tinker order")
	if err != nil {
		t.Fatalf("create charge: %v", err)
	}
	if charge.ID != "ch_123" || charge.Status != "succeeded" || charge.Amount != 12124 {
		t.Fatalf("unexpected charge %+v", charge)
	}
	if gotAuth != "sk_test_abc" {
		t.Fatalf("basic auth user = %q", gotAuth)
	}
	if gotForm["amount"] != "12124" || gotForm["currency"] != "usd" || gotForm["source"] != "tok_visa" {
		t.Fatalf("unexpected form %v", gotForm)
	}
}

func TestCreateCharge_DeclinedSurfacesAPIMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined.","code":"card_declined"}}`))
	}))
	defer srv.Close()

	g := NewStripeGatewayURL("sk_test_abc", srv.URL)
	_, err := g.CreateCharge(context.Background(), 100, "usd", "tok_chargeDeclined", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "card was declined") || !strings.Contains(err.Error(), "card_declined") {
		t.Fatalf("error should carry the gateway message, got %v", err)
	}
}

func TestCreateCharge_OpaqueFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("gateway exploded"))
	}))
	defer srv.Close()

	g := NewStripeGatewayURL("sk_test_abc", srv.URL)
	_, err := g.CreateCharge(context.Background(), 100, "usd", "tok_visa", "")
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestCreateCharge_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewStripeGatewayURL("sk_test_abc", srv.URL)
	if _, err := g.CreateCharge(ctx, 100, "usd", "tok_visa", ""); err == nil {
		t.Fatal("expected context error")
	}
}
