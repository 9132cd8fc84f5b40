package utils

import (
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// The backend settles in INR, so amounts are spelled in rupees and paise
// unless configured otherwise.
const (
	DefaultCurrencyUnit    = "Rupees"
	DefaultCurrencySubunit = "Paise"
)

// Indian grouping: crore, lakh, thousand, hundred.
var scales = []struct {
	value int64
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells out a non-negative integer; zero yields "".
func NumberToWords(num int64) string {
	if num <= 0 {
		return ""
	}
	if num < 20 {
		return ones[num]
	}
	if num < 100 {
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	}
	for _, s := range scales {
		if num >= s.value {
			head := NumberToWords(num/s.value) + " " + s.name
			if rest := num % s.value; rest > 0 {
				return head + " " + NumberToWords(rest)
			}
			return head
		}
	}
	return ""
}

// AmountToWords spells a money amount as "<major> <unit> and <minor> <subunit> Only".
func AmountToWords(amount float64, unit, subunit string) string {
	if amount < 0 {
		amount = -amount
	}
	whole := int64(math.Floor(amount))
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	var parts []string
	if whole > 0 {
		parts = append(parts, NumberToWords(whole)+" "+unit)
	}
	if cents > 0 {
		parts = append(parts, NumberToWords(cents)+" "+subunit)
	}
	if len(parts) == 0 {
		return "Zero " + unit + " Only"
	}
	return strings.Join(parts, " and ") + " Only"
}
