package service

import (
	"fmt"
	"strings"

	saleModel "hotelops/internal/domains/sale/model"
	"hotelops/shared/constant"
	"hotelops/shared/timezone"
)

const receiptRule = "----------------------------------------"

// Receipt renders a plain-text receipt of a sale.
func Receipt(sale saleModel.Sale, issuer, currency string) string {
	var b strings.Builder

	if issuer != constant.Empty {
		fmt.Fprintln(&b, issuer)
	}

	fmt.Fprintf(&b, "Receipt %s\n", sale.ID)

	if !sale.CreatedAt.IsZero() {
		fmt.Fprintln(&b, timezone.Format(sale.CreatedAt, constant.DateFormat))
	}

	fmt.Fprintln(&b, receiptRule)

	for _, item := range sale.Items {
		fmt.Fprintf(&b, "%-24s %3d x %10.2f\n", item.Name, item.Quantity, item.Price)
		fmt.Fprintf(&b, "%40.2f\n", item.Subtotal)
	}

	fmt.Fprintln(&b, receiptRule)
	fmt.Fprintf(&b, "TOTAL %s %28.2f\n", currency, sale.Total)
	fmt.Fprintf(&b, "Paid by %s\n", strings.ReplaceAll(string(sale.PaymentMethod), "_", " "))

	if sale.BookingID != nil {
		fmt.Fprintf(&b, "Charged to booking %s\n", *sale.BookingID)
	}

	return b.String()
}
