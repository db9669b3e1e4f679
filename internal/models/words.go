package models

import (
	"math"
	"strings"
)

var wordsBelowTwenty = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var wordsTens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords renders a rupee amount as English words using the Indian
// numbering scale (crore, lakh, thousand, hundred), suffixed with
// "Rupees Only". Paise are dropped: the amount is rounded to the nearest
// rupee before conversion.
func AmountInWords(amount float64) string {
	rupees := int64(math.Round(amount))
	if rupees == 0 {
		return "Zero Rupees Only"
	}

	words := integerToIndianWords(rupees)
	return words + " Rupees Only"
}

// integerToIndianWords converts a non-negative integer to English words
// on the crore/lakh/thousand/hundred scale.
func integerToIndianWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	var parts []string

	if crore := n / 10000000; crore > 0 {
		parts = append(parts, integerToIndianWords(crore), "Crore")
		n %= 10000000
	}

	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, twoDigitWords(lakh), "Lakh")
		n %= 100000
	}

	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, twoDigitWords(thousand), "Thousand")
		n %= 1000
	}

	if hundred := n / 100; hundred > 0 {
		parts = append(parts, wordsBelowTwenty[hundred], "Hundred")
		n %= 100
	}

	if n > 0 {
		parts = append(parts, twoDigitWords(n))
	}

	return strings.Join(parts, " ")
}

// twoDigitWords converts 1-99 to words
func twoDigitWords(n int64) string {
	if n < 20 {
		return wordsBelowTwenty[n]
	}

	tens := wordsTens[n/10]
	if n%10 == 0 {
		return tens
	}
	return tens + " " + wordsBelowTwenty[n%10]
}
