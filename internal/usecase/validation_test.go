package usecase

import (
	"testing"

	"github.com/khangtran/keygate/internal/domain/model"
)

func TestValidateTransaction(t *testing.T) {
	const account = "102881164268"

	cases := []struct {
		name   string
		tx     model.InboundTransaction
		ok     bool
		reason string
	}{
		{
			name: "incoming to expected account",
			tx:   model.InboundTransaction{TransferType: "in", AccountNumber: account},
			ok:   true,
		},
		{
			name: "uppercase direction accepted",
			tx:   model.InboundTransaction{TransferType: "IN", AccountNumber: account},
			ok:   true,
		},
		{
			name:   "outgoing ignored",
			tx:     model.InboundTransaction{TransferType: "out", AccountNumber: account},
			ok:     false,
			reason: ReasonNotIncoming,
		},
		{
			name:   "empty direction ignored",
			tx:     model.InboundTransaction{AccountNumber: account},
			ok:     false,
			reason: ReasonNotIncoming,
		},
		{
			name:   "wrong account ignored",
			tx:     model.InboundTransaction{TransferType: "in", AccountNumber: "000000"},
			ok:     false,
			reason: ReasonWrongAccount,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := ValidateTransaction(tc.tx, account)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, reason)
			}
		})
	}
}
