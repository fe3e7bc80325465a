package payment

import (
	"strings"

	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
)

// Method is the stored payment method. Clients may say "vnpay"; it is
// stored as e-wallet.
type Method string

const (
	MethodCash         Method = "cash"
	MethodEWallet      Method = "e-wallet"
	MethodCreditCard   Method = "credit_card"
	MethodBankTransfer Method = "bank_transfer"
)

var validMethods = []string{"cash", "vnpay", "e-wallet", "credit_card", "bank_transfer"}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return MethodCash, nil
	case "vnpay", "e-wallet", "ewallet":
		return MethodEWallet, nil
	case "credit_card":
		return MethodCreditCard, nil
	case "bank_transfer":
		return MethodBankTransfer, nil
	}
	return "", httperr.Validation("invalid_payment_method", "Payment method is not supported.", validMethods...)
}

// IsOnline is true for every method settled outside the counter.
func (m Method) IsOnline() bool {
	return m != MethodCash
}

// DisplayLabel is the name shown to customers, e.g. in emails.
func (m Method) DisplayLabel() string {
	switch m {
	case MethodCash:
		return "Cash"
	case MethodEWallet:
		return "VNPAY"
	case MethodCreditCard:
		return "Credit card"
	case MethodBankTransfer:
		return "Bank transfer"
	}
	return string(m)
}

// Label maps a stored method string to its display label.
func Label(stored string) string {
	return Method(stored).DisplayLabel()
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "":
		return StatusPending, nil
	case StatusPending, StatusCompleted:
		return Status(s), nil
	}
	return "", httperr.Validation(
		"invalid_payment_record_status",
		"Payment status must be pending or completed.",
		string(StatusPending), string(StatusCompleted),
	)
}
