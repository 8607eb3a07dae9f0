package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/billing"
)

// Posting renders an invoice as an hledger journal entry, ready to paste into
// a plain-text accounting journal: the receivable for the subtotal, one
// receivable per applied tax, and the revenue line balancing the total.
func Posting(inv *billing.Invoice, c *billing.Client) (string, error) {
	total, err := inv.Total()
	if err != nil {
		return "", err
	}

	period := inv.OverallPeriod()
	start := period.From.Format("Jan 2")
	// Drop the month from the end date when the period stays within one month.
	endLayout := "Jan 2"
	if period.From.Month() == period.Until.Month() {
		endLayout = "2"
	}
	end := period.Until.Format(endLayout)

	type line struct{ account, amount string }
	lines := []line{{
		account: fmt.Sprintf("assets:receivable:%s", c.Name),
		amount:  total.Subtotal.String(),
	}}
	for _, tax := range total.Taxes {
		lines = append(lines, line{
			account: fmt.Sprintf("assets:receivable:%s", tax.Tax.Name),
			amount:  tax.Amount.String(),
		})
	}
	lines = append(lines, line{
		account: fmt.Sprintf("revenues:clients:%s", c.Name),
		amount:  total.Total.Neg().String(),
	})

	// Align the amounts on the longest account+amount pair.
	maxLen := 0
	for _, l := range lines {
		if n := len(l.account) + len(l.amount); n > maxLen {
			maxLen = n
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s invoice  ; %s - %s\n", inv.Date, c.Name, start, end)
	for _, l := range lines {
		fmt.Fprintf(&b, "    %s%*s\n", l.account, maxLen-len(l.account)+4, l.amount)
	}
	return b.String(), nil
}
