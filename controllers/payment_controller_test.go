package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apsaracreations/apsarabackend/gateway"
	"github.com/gin-gonic/gin"
)

type stubGateway struct {
	verify bool
}

func (s stubGateway) CreateOrder(_ context.Context, amount int64, currency, _ string) (*gateway.Order, error) {
	return &gateway.Order{ID: "order_stub", Amount: amount, Currency: currency}, nil
}

func (s stubGateway) KeyID() string { return "key_stub" }

func (s stubGateway) VerifySignature(_, _, _ string) bool { return s.verify }

// A mismatched signature must be rejected before any order, stock or cart
// write is attempted. The handler here never reaches the database: a paid
// flip on a forged callback would be money movement on untrusted input.
func TestVerifyPaymentRejectsTamperedSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payment/verify-payment", VerifyPayment(stubGateway{verify: false}))

	body, _ := json.Marshal(map[string]string{
		"razorpayOrderId":   "order_rp1",
		"razorpayPaymentId": "pay_1",
		"razorpaySignature": "forged",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/payment/verify-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("tampered signature reported as success")
	}
}

func TestVerifyPaymentRejectsIncompleteBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payment/verify-payment", VerifyPayment(stubGateway{verify: true}))

	body, _ := json.Marshal(map[string]string{
		"razorpayOrderId": "order_rp1",
		// payment id and signature missing
	})
	req := httptest.NewRequest(http.MethodPost, "/api/payment/verify-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
