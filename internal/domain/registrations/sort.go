package registrations

import (
	"sort"
	"strings"
	"unicode"
)

// SortByCarNumber ordena in-place en orden alfanumérico natural ("2" < "10" < "A3").
func SortByCarNumber(regs []Registration) {
	sort.SliceStable(regs, func(i, j int) bool {
		return CompareCarNumbers(regs[i].CarNumber, regs[j].CarNumber) < 0
	})
}

// CompareCarNumbers compara por tramos: dígitos por valor numérico, texto sin distinguir mayúsculas.
func CompareCarNumbers(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ra) && j < len(rb) {
		da, db := unicode.IsDigit(ra[i]), unicode.IsDigit(rb[j])
		switch {
		case da && db:
			si, sj := i, j
			for i < len(ra) && unicode.IsDigit(ra[i]) {
				i++
			}
			for j < len(rb) && unicode.IsDigit(rb[j]) {
				j++
			}
			if c := compareDigits(string(ra[si:i]), string(rb[sj:j])); c != 0 {
				return c
			}
		case da != db:
			// dígitos antes que letras
			if da {
				return -1
			}
			return 1
		default:
			ca, cb := unicode.ToLower(ra[i]), unicode.ToLower(rb[j])
			if ca != cb {
				if ca < cb {
					return -1
				}
				return 1
			}
			i++
			j++
		}
	}
	switch {
	case len(ra)-i < len(rb)-j:
		return -1
	case len(ra)-i > len(rb)-j:
		return 1
	}
	return strings.Compare(a, b)
}

func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
