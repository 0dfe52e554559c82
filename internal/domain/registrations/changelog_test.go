package registrations

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDiff_OnlyChangedFields(t *testing.T) {
	prev := Registration{NumDogs: 1, Comments: "x"}
	next := Registration{NumDogs: 2, Comments: "x"}

	got := Diff(prev.Snapshot(), next.Snapshot())
	require.Equal(t, map[string]FieldChange{
		FieldNumDogs: {From: 1, To: 2},
	}, got)
}

func TestDiff_NilAndEmptyAreEqual(t *testing.T) {
	prev := Registration{Items: nil, Tags: nil}
	next := Registration{Items: []LineEntry{}, Tags: []string{}}
	require.Empty(t, Diff(prev.Snapshot(), next.Snapshot()))

	withTags := Registration{Items: []LineEntry{{Name: "Rabies", Quantity: 1, Subtotal: 15}}}
	sameNoTags := Registration{Items: []LineEntry{{Name: "Rabies", Quantity: 1, Subtotal: 15, Tags: []string{}}}}
	require.Empty(t, Diff(withTags.Snapshot(), sameNoTags.Snapshot()))
}

func TestDiff_IgnoresNonAuditedFields(t *testing.T) {
	prev := Registration{ID: "a", Date: "2024-05-01", Donation: 1}
	next := Registration{ID: "b", Date: "2024-05-02", Donation: 2}
	require.Empty(t, Diff(prev.Snapshot(), next.Snapshot()))
}

func TestAppendChange_KeepsOrder(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	log := []ChangeLogEntry{{Action: NoteAction("registration created"), Timestamp: ts, VolunteerInitials: "AB"}}

	out := AppendChange(log, ChangeLogEntry{Action: FieldsAction(nil), Timestamp: ts.Add(time.Minute), VolunteerInitials: "AB"})
	out = AppendChange(out, ChangeLogEntry{Action: FieldsAction(nil), Timestamp: ts.Add(2 * time.Minute), VolunteerInitials: "AB"})

	require.Len(t, log, 1)
	require.Len(t, out, 3)
	require.True(t, out[0].Action.IsNote())
	require.False(t, out[2].Action.IsNote())
}

func TestChangeAction_JSON(t *testing.T) {
	note, err := json.Marshal(NoteAction("registration created"))
	require.NoError(t, err)
	require.JSONEq(t, `"registration created"`, string(note))

	empty, err := json.Marshal(FieldsAction(nil))
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(empty))

	raw := `[
		{"action":"registration created","timestamp":"2024-05-01T10:00:00Z","volunteer_initials":"AB"},
		{"action":{"num_dogs":{"from":1,"to":2}},"timestamp":"2024-05-01T10:05:00Z","volunteer_initials":"CD"}
	]`
	var log []ChangeLogEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &log))
	require.Len(t, log, 2)
	require.Equal(t, "registration created", log[0].Action.Note)
	require.Equal(t, float64(2), log[1].Action.Fields["num_dogs"].To)
}

func TestSummarize_ItemsAsNames(t *testing.T) {
	prev := Registration{Items: []LineEntry{{Name: "Rabies", Quantity: 1}, {Name: "Distemper", Quantity: 1}}, Total: 35}
	next := Registration{Items: []LineEntry{{Name: "Rabies", Quantity: 1}}, Total: 15}

	e := ChangeLogEntry{Action: FieldsAction(Diff(prev.Snapshot(), next.Snapshot()))}
	got := Summarize(e)
	require.Equal(t, "total: 35 → 15\nitems: From: Rabies, Distemper → To: Rabies", got)

	// Mismo render después de pasar por JSON.
	raw, err := json.Marshal(e)
	require.NoError(t, err)
	var back ChangeLogEntry
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, got, Summarize(back))

	require.Equal(t, "no changes", Summarize(ChangeLogEntry{Action: FieldsAction(nil)}))
	require.True(t, strings.HasPrefix(Summarize(ChangeLogEntry{Action: NoteAction("payment recorded")}), "payment"))
}
