package qr

import (
	"net/url"
	"strings"
	"testing"
)

func TestPaymentURL(t *testing.T) {
	raw := PaymentURL("VietinBank", "102881164268", 20000, "ARESTOOL DH9912AB")

	if !strings.HasPrefix(raw, "https://qr.sepay.vn/img?") {
		t.Fatalf("unexpected endpoint: %s", raw)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	query := parsed.Query()

	expect := map[string]string{
		"bank":     "VietinBank",
		"acc":      "102881164268",
		"amount":   "20000",
		"des":      "ARESTOOL DH9912AB",
		"template": "compact",
	}
	for key, want := range expect {
		if got := query.Get(key); got != want {
			t.Fatalf("expected %s=%q, got %q", key, want, got)
		}
	}
}
