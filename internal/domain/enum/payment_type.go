package enum

import (
	"database/sql/driver"
	"fmt"
)

// PaymentType is how an invoice was paid
type PaymentType string

const (
	PaymentTypeCash     PaymentType = "cash"
	PaymentTypeCashless PaymentType = "cashless"
)

func (t PaymentType) String() string {
	return string(t)
}

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeCashless:
		return true
	}
	return false
}

// ParsePaymentType converts s into a PaymentType.
func ParsePaymentType(s string) (PaymentType, error) {
	t := PaymentType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown payment type %q, use cash or cashless", s)
	}
	return t, nil
}

func (t PaymentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = PaymentType(v)
	case []byte:
		*t = PaymentType(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentType", value)
	}
	return nil
}
