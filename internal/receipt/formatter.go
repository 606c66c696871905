// Package receipt renders the order receipt sent to the customer right after
// an order is accepted. Rendering is pure: the timestamp comes in as an
// argument so output is fully determined by input.
package receipt

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brunohmiro/zapfood/internal/order/domain"
)

const PaymentCash = "cash"

type Input struct {
	CustomerName string
	PhoneDisplay string
	Address      string
	Reference    string
	Items        []domain.CartItem
	Payment      string
	CashTendered *decimal.Decimal
	DeliveryFee  decimal.Decimal
}

// Total is subtotal plus the delivery fee.
func Total(items []domain.CartItem, fee decimal.Decimal) decimal.Decimal {
	return domain.Subtotal(items).Add(fee)
}

// Render produces the receipt text block. The change line appears only for
// cash payments with a tendered amount.
func Render(in Input, now time.Time, loc *time.Location) string {
	subtotal := domain.Subtotal(in.Items)
	total := subtotal.Add(in.DeliveryFee)

	var b strings.Builder
	b.WriteString("*Order received!*\n")
	b.WriteString(now.In(loc).Format("02/01/2006 15:04"))
	b.WriteString("\n\n")
	b.WriteString(in.CustomerName)
	b.WriteString("\n")
	b.WriteString(in.PhoneDisplay)
	b.WriteString("\n\n")

	for _, it := range in.Items {
		line := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		b.WriteString(strconv.Itoa(it.Quantity))
		b.WriteString("x ")
		b.WriteString(it.Name)
		b.WriteString(" - ")
		b.WriteString(domain.FormatAmount(line))
		b.WriteString("\n")
		if it.Observation != "" {
			b.WriteString("  obs: ")
			b.WriteString(it.Observation)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nSubtotal: ")
	b.WriteString(domain.FormatAmount(subtotal))
	b.WriteString("\nDelivery fee: ")
	b.WriteString(domain.FormatAmount(in.DeliveryFee))
	b.WriteString("\n*Total: ")
	b.WriteString(domain.FormatAmount(total))
	b.WriteString("*\n\n")

	b.WriteString("Deliver to: ")
	b.WriteString(in.Address)
	b.WriteString("\n")
	if in.Reference != "" {
		b.WriteString("Reference: ")
		b.WriteString(in.Reference)
		b.WriteString("\n")
	}
	b.WriteString("Payment: ")
	b.WriteString(in.Payment)
	b.WriteString("\n")

	if strings.EqualFold(in.Payment, PaymentCash) && in.CashTendered != nil {
		b.WriteString("Change: ")
		b.WriteString(domain.FormatAmount(in.CashTendered.Sub(total)))
		b.WriteString("\n")
	}

	return b.String()
}
