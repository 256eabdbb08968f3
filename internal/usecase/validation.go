package usecase

import (
	"strings"

	"github.com/khangtran/keygate/internal/domain/model"
)

// Rejection reasons reported for transactions that do not concern the shop.
const (
	ReasonNotIncoming  = "not incoming transaction"
	ReasonWrongAccount = "wrong account number"
)

// ValidateTransaction checks direction and destination account of an inbound
// transaction against policy. A failed check is a normal outcome signalled by
// the reason, never an error: outgoing transfers and foreign accounts are
// simply not ours to handle.
func ValidateTransaction(tx model.InboundTransaction, expectedAccount string) (bool, string) {
	if !strings.EqualFold(tx.TransferType, model.TransferTypeIn) {
		return false, ReasonNotIncoming
	}
	if tx.AccountNumber != expectedAccount {
		return false, ReasonWrongAccount
	}
	return true, ""
}
