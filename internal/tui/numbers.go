package tui

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// money renders 1234.5 as "$1,234.50" and -3 as "-$3.00".
func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", v)
}

// signedMoney always carries a sign: "+$427.75".
func signedMoney(v float64) string {
	if v >= 0 {
		return "+" + money(v)
	}
	return money(v)
}

func signedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func decimalMoney(d decimal.Decimal) string {
	f, _ := d.Float64()
	return money(f)
}

func quantity(d decimal.Decimal) string {
	if d.IsInteger() {
		return humanize.Comma(d.IntPart())
	}
	return d.String()
}
