package main

import (
	"bytes"
	"strings"
	"testing"

	"clinic-frontdesk/internal/domain/dashboard"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"migrate", "seed-items", "watch"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("missing subcommand %q: %v", name, err)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, dashboard.Summary{
		Paid:   dashboard.AggregateCounts{Registrations: 1, TotalDogs: 2, TotalRabiesDoses: 2},
		Unpaid: dashboard.AggregateCounts{Registrations: 1, TotalCats: 1},
	})
	got := buf.String()
	if !strings.Contains(got, "paid:   cars=1 dogs=2 cats=0 rabies=2") || !strings.Contains(got, "unpaid: cars=1 dogs=0 cats=1") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}
