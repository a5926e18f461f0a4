// Package words converts integers and euro amounts into Lithuanian words,
// as required on printed invoices.
package words

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeAmount is returned for negative monetary amounts, which
	// never appear on a printed invoice.
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrTooLarge is returned above the supported magnitude instead of
	// producing a wrong rendering.
	ErrTooLarge = errors.New("number too large to convert to words")
)

// Masculine counting forms, used with currency units.
var oneToNineteen = []string{
	"nulis", "vienas", "du", "trys", "keturi", "penki", "šeši", "septyni",
	"aštuoni", "devyni", "dešimt", "vienuolika", "dvylika", "trylika",
	"keturiolika", "penkiolika", "šešiolika", "septyniolika", "aštuoniolika",
	"devyniolika",
}

var tens = []string{
	"", "", "dvidešimt", "trisdešimt", "keturiasdešimt", "penkiasdešimt",
	"šešiasdešimt", "septyniasdešimt", "aštuoniasdešimt", "devyniasdešimt",
}

var hundreds = []string{
	"", "vienas šimtas", "du šimtai", "trys šimtai", "keturi šimtai",
	"penki šimtai", "šeši šimtai", "septyni šimtai", "aštuoni šimtai",
	"devyni šimtai",
}

// scaleForm holds the three grammatical forms of a magnitude word:
// singular (1), plural nominative (2-9), plural genitive (0, 10-20).
type scaleForm struct {
	singular  string
	pluralNom string
	pluralGen string
}

var scales = []scaleForm{
	{},
	{"tūkstantis", "tūkstančiai", "tūkstančių"},
	{"milijonas", "milijonai", "milijonų"},
	{"milijardas", "milijardai", "milijardų"},
}

// chooseScaleForm picks the grammatical form for a magnitude word following
// the chunk value: teens take the genitive regardless of the last digit.
func chooseScaleForm(chunk int64, f scaleForm) string {
	lastTwo := chunk % 100
	if lastTwo > 10 && lastTwo < 20 {
		return f.pluralGen
	}
	switch last := chunk % 10; {
	case last == 1:
		return f.singular
	case last >= 2 && last <= 9:
		return f.pluralNom
	default:
		return f.pluralGen
	}
}

// chunkToWords renders a value in [1, 999].
func chunkToWords(chunk int64) string {
	var parts []string

	if h := chunk / 100; h > 0 {
		parts = append(parts, hundreds[h])
	}
	if rem := chunk % 100; rem > 0 {
		if rem < 20 {
			parts = append(parts, oneToNineteen[rem])
		} else {
			if t := tens[rem/10]; t != "" {
				parts = append(parts, t)
			}
			if one := rem % 10; one > 0 {
				parts = append(parts, oneToNineteen[one])
			}
		}
	}
	return strings.Join(parts, " ")
}

// Integer converts n to Lithuanian words using masculine counting forms.
// Magnitudes above 999 billion return ErrTooLarge.
func Integer(n int64) (string, error) {
	if n == 0 {
		return oneToNineteen[0], nil
	}
	if n < 0 {
		w, err := Integer(-n)
		if err != nil {
			return "", err
		}
		return "minus " + w, nil
	}

	var parts []string
	remaining := n
	for scaleIdx := 0; remaining > 0; scaleIdx++ {
		chunk := remaining % 1000
		if chunk > 0 {
			if scaleIdx >= len(scales) {
				return "", ErrTooLarge
			}
			chunkWords := chunkToWords(chunk)
			if scaleIdx > 0 {
				chunkWords += " " + chooseScaleForm(chunk, scales[scaleIdx])
			}
			parts = append(parts, chunkWords)
		}
		remaining /= 1000
	}

	// Chunks were collected lowest magnitude first.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " "), nil
}

// Amount renders a euro amount as words, euros and cents each spelled out:
// 1234.56 → "vienas tūkstantis du šimtai trisdešimt keturi EUR ir
// penkiasdešimt šeši ct". The amount is rounded half up to full cents first.
func Amount(amount decimal.Decimal) (string, error) {
	quantized := amount.Round(2)
	if quantized.IsNegative() {
		return "", ErrNegativeAmount
	}

	euros := quantized.IntPart()
	cents := quantized.Sub(decimal.NewFromInt(euros)).Mul(decimal.NewFromInt(100)).IntPart()

	eurosWords, err := Integer(euros)
	if err != nil {
		return "", err
	}
	centsWords, err := Integer(cents)
	if err != nil {
		return "", err
	}
	return eurosWords + " EUR ir " + centsWords + " ct", nil
}
