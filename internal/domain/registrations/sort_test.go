package registrations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortByCarNumber_Natural(t *testing.T) {
	regs := []Registration{
		{CarNumber: "10"}, {CarNumber: "b2"}, {CarNumber: "2"}, {CarNumber: "A10"}, {CarNumber: "a3"}, {CarNumber: "1"},
	}
	SortByCarNumber(regs)

	got := make([]string, 0, len(regs))
	for _, r := range regs {
		got = append(got, r.CarNumber)
	}
	require.Equal(t, []string{"1", "2", "10", "a3", "A10", "b2"}, got)
}

func TestCompareCarNumbers(t *testing.T) {
	require.Equal(t, 0, CompareCarNumbers("12", "12"))
	require.Negative(t, CompareCarNumbers("9", "12"))
	require.Negative(t, CompareCarNumbers("007", "8"))
	require.Positive(t, CompareCarNumbers("12b", "12a"))
	require.Negative(t, CompareCarNumbers("12", "12a"))
}
