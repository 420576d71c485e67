package billing

import (
	"github.com/samber/lo"
)

// Totals are the figures printed at the foot of a statement
type Totals struct {
	ByKind     map[ChargeKind]float64
	GrossTotal float64
	Discount   float64
	NetTotal   float64
	Deposits   float64
	Refunds    float64
	Paid       float64
	// Due is negative when the hospital owes the patient a refund
	Due float64
}

// Totals sums the statement's charges and payments
func (s *Statement) Totals() Totals {
	t := Totals{ByKind: make(map[ChargeKind]float64, len(ChargeKinds))}

	for kind, items := range s.ItemsByKind() {
		t.ByKind[kind] = lo.SumBy(items, LineItem.Amount)
	}
	t.GrossTotal = lo.SumBy(s.Items, LineItem.Amount)
	t.Discount = s.Discount.Amount
	t.NetTotal = t.GrossTotal - t.Discount

	t.Deposits = lo.SumBy(lo.Filter(s.Payments, func(p Payment, _ int) bool {
		return p.Type != PaymentRefund
	}), func(p Payment) float64 { return p.Amount })
	t.Refunds = lo.SumBy(lo.Filter(s.Payments, func(p Payment, _ int) bool {
		return p.Type == PaymentRefund
	}), func(p Payment) float64 { return p.Amount })
	t.Paid = t.Deposits - t.Refunds
	t.Due = t.NetTotal - t.Paid

	return t
}

// ItemsByKind groups line items by charge kind, keeping their order
func (s *Statement) ItemsByKind() map[ChargeKind][]LineItem {
	return lo.GroupBy(s.Items, func(i LineItem) ChargeKind { return i.Kind })
}
