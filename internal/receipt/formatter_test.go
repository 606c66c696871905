package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brunohmiro/zapfood/internal/order/domain"
)

func fixedTime(t *testing.T) (time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}
	return time.Date(2026, 8, 30, 14, 5, 0, 0, loc), loc
}

func TestRenderExactChange(t *testing.T) {
	t.Parallel()

	now, loc := fixedTime(t)
	tendered := decimal.NewFromFloat(25)
	in := Input{
		CustomerName: "Joao",
		PhoneDisplay: "(11) 8765-4321",
		Address:      "Rua A, 123",
		Reference:    "next to the bakery",
		Items: []domain.CartItem{
			{Name: "X", Price: decimal.NewFromFloat(10), Quantity: 2},
		},
		Payment:      PaymentCash,
		CashTendered: &tendered,
		DeliveryFee:  decimal.NewFromFloat(5),
	}

	want := "*Order received!*\n" +
		"30/08/2026 14:05\n" +
		"\n" +
		"Joao\n" +
		"(11) 8765-4321\n" +
		"\n" +
		"2x X - 20,00\n" +
		"\n" +
		"Subtotal: 20,00\n" +
		"Delivery fee: 5,00\n" +
		"*Total: 25,00*\n" +
		"\n" +
		"Deliver to: Rua A, 123\n" +
		"Reference: next to the bakery\n" +
		"Payment: cash\n" +
		"Change: 0,00\n"

	if got := Render(in, now, loc); got != want {
		t.Fatalf("Render mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderChangeDue(t *testing.T) {
	t.Parallel()

	now, loc := fixedTime(t)
	tendered := decimal.NewFromFloat(30)
	in := Input{
		CustomerName: "Joao",
		PhoneDisplay: "(11) 8765-4321",
		Address:      "Rua A, 123",
		Items: []domain.CartItem{
			{Name: "X", Price: decimal.NewFromFloat(10), Quantity: 2},
		},
		Payment:      PaymentCash,
		CashTendered: &tendered,
		DeliveryFee:  decimal.NewFromFloat(5),
	}

	got := Render(in, now, loc)
	if !strings.Contains(got, "Change: 5,00\n") {
		t.Fatalf("expected change of 5,00 in:\n%s", got)
	}
}

func TestRenderNoChangeForCardPayment(t *testing.T) {
	t.Parallel()

	now, loc := fixedTime(t)
	tendered := decimal.NewFromFloat(30)
	in := Input{
		CustomerName: "Joao",
		PhoneDisplay: "(11) 8765-4321",
		Address:      "Rua A, 123",
		Items: []domain.CartItem{
			{Name: "X", Price: decimal.NewFromFloat(10), Quantity: 1},
		},
		Payment:      "card",
		CashTendered: &tendered,
		DeliveryFee:  decimal.NewFromFloat(5),
	}

	if got := Render(in, now, loc); strings.Contains(got, "Change:") {
		t.Fatalf("card payment must not render change:\n%s", got)
	}
}

func TestRenderObservationIndented(t *testing.T) {
	t.Parallel()

	now, loc := fixedTime(t)
	in := Input{
		CustomerName: "Maria",
		PhoneDisplay: "(21) 9876-5432",
		Address:      "Av B, 45",
		Items: []domain.CartItem{
			{Name: "X-Bacon", Price: decimal.NewFromFloat(15.5), Quantity: 1, Observation: "no onion"},
		},
		Payment:     "pix",
		DeliveryFee: decimal.NewFromFloat(5),
	}

	got := Render(in, now, loc)
	if !strings.Contains(got, "1x X-Bacon - 15,50\n  obs: no onion\n") {
		t.Fatalf("observation not indented beneath item:\n%s", got)
	}
	if !strings.Contains(got, "*Total: 20,50*") {
		t.Fatalf("wrong total:\n%s", got)
	}
}
