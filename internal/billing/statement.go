// Package billing models the IPD billing records a statement is rendered from.
package billing

import (
	"fmt"
	"strings"
	"time"
)

// ChargeKind tags a line item with the ledger it belongs to
type ChargeKind string

const (
	ChargeService    ChargeKind = "service"
	ChargeConsultant ChargeKind = "consultant"
	ChargeHospital   ChargeKind = "hospital"
	ChargeMedicine   ChargeKind = "medicine"
)

// ChargeKinds lists the kinds in the order they appear on a statement
var ChargeKinds = []ChargeKind{ChargeHospital, ChargeService, ChargeConsultant, ChargeMedicine}

// Title is the section heading used on the statement
func (k ChargeKind) Title() string {
	switch k {
	case ChargeService:
		return "Services"
	case ChargeConsultant:
		return "Consultant Charges"
	case ChargeHospital:
		return "Hospital Charges"
	case ChargeMedicine:
		return "Medicines"
	default:
		return string(k)
	}
}

func (k ChargeKind) valid() bool {
	for _, known := range ChargeKinds {
		if k == known {
			return true
		}
	}
	return false
}

// PaymentType distinguishes money received from money returned
type PaymentType string

const (
	PaymentAdvance PaymentType = "advance"
	PaymentDeposit PaymentType = "deposit"
	PaymentRefund  PaymentType = "refund"
)

// Hospital is the issuing institution printed on the statement
type Hospital struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Patient is the admitted patient the statement is for
type Patient struct {
	Name         string     `json:"name" yaml:"name"`
	UHID         string     `json:"uhid,omitempty" yaml:"uhid,omitempty"`
	IPDNumber    string     `json:"ipd_number,omitempty" yaml:"ipd_number,omitempty"`
	Age          int        `json:"age,omitempty" yaml:"age,omitempty"`
	Gender       string     `json:"gender,omitempty" yaml:"gender,omitempty"`
	Ward         string     `json:"ward,omitempty" yaml:"ward,omitempty"`
	BedNumber    string     `json:"bed_number,omitempty" yaml:"bed_number,omitempty"`
	Consultant   string     `json:"consultant,omitempty" yaml:"consultant,omitempty"`
	AdmittedAt   *time.Time `json:"admitted_at,omitempty" yaml:"admitted_at,omitempty"`
	DischargedAt *time.Time `json:"discharged_at,omitempty" yaml:"discharged_at,omitempty"`
}

// LineItem is one charge on the statement
type LineItem struct {
	Kind        ChargeKind `json:"kind" yaml:"kind"`
	Description string     `json:"description" yaml:"description"`
	Doctor      string     `json:"doctor,omitempty" yaml:"doctor,omitempty"`
	Quantity    float64    `json:"quantity" yaml:"quantity"`
	UnitPrice   float64    `json:"unit_price" yaml:"unit_price"`
	Date        *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
}

// Amount is quantity times unit price
func (i LineItem) Amount() float64 {
	return i.Quantity * i.UnitPrice
}

// Payment is money received or refunded
type Payment struct {
	Type      PaymentType `json:"type" yaml:"type"`
	Mode      string      `json:"mode,omitempty" yaml:"mode,omitempty"`
	Amount    float64     `json:"amount" yaml:"amount"`
	Reference string      `json:"reference,omitempty" yaml:"reference,omitempty"`
	Date      *time.Time  `json:"date,omitempty" yaml:"date,omitempty"`
}

// Discount is a flat reduction on the gross total
type Discount struct {
	Amount float64 `json:"amount" yaml:"amount"`
	Reason string  `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Statement is an IPD bill: patient, charges, payments and discount
type Statement struct {
	ID       string     `json:"id,omitempty" yaml:"id,omitempty"`
	Hospital Hospital   `json:"hospital" yaml:"hospital"`
	Patient  Patient    `json:"patient" yaml:"patient"`
	Items    []LineItem `json:"items" yaml:"items"`
	Payments []Payment  `json:"payments,omitempty" yaml:"payments,omitempty"`
	Discount Discount   `json:"discount,omitempty" yaml:"discount,omitempty"`
	IssuedAt *time.Time `json:"issued_at,omitempty" yaml:"issued_at,omitempty"`
}

// ValidationError reports the first invalid field of a statement
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid statement: %s: %s", e.Field, e.Reason)
}

// Validate checks required fields and amounts
func (s *Statement) Validate() error {
	if strings.TrimSpace(s.Patient.Name) == "" {
		return &ValidationError{Field: "patient.name", Reason: "is required"}
	}
	for i, item := range s.Items {
		field := fmt.Sprintf("items[%d]", i)
		if !item.Kind.valid() {
			return &ValidationError{Field: field + ".kind", Reason: fmt.Sprintf("unknown charge kind %q", item.Kind)}
		}
		if strings.TrimSpace(item.Description) == "" {
			return &ValidationError{Field: field + ".description", Reason: "is required"}
		}
		if item.Quantity < 0 {
			return &ValidationError{Field: field + ".quantity", Reason: "must not be negative"}
		}
		if item.UnitPrice < 0 {
			return &ValidationError{Field: field + ".unit_price", Reason: "must not be negative"}
		}
	}
	for i, p := range s.Payments {
		field := fmt.Sprintf("payments[%d]", i)
		switch p.Type {
		case PaymentAdvance, PaymentDeposit, PaymentRefund:
		default:
			return &ValidationError{Field: field + ".type", Reason: fmt.Sprintf("unknown payment type %q", p.Type)}
		}
		if p.Amount < 0 {
			return &ValidationError{Field: field + ".amount", Reason: "must not be negative"}
		}
	}
	if s.Discount.Amount < 0 {
		return &ValidationError{Field: "discount.amount", Reason: "must not be negative"}
	}
	if gross := s.Totals().GrossTotal; s.Discount.Amount > gross {
		return &ValidationError{Field: "discount.amount", Reason: fmt.Sprintf("%.2f exceeds gross total %.2f", s.Discount.Amount, gross)}
	}
	return nil
}
