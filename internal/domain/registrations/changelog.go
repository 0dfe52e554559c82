package registrations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// ChangeLogEntry es una entrada del historial de una registración. El log es append-only.
type ChangeLogEntry struct {
	Action            ChangeAction `json:"action"`
	Timestamp         time.Time    `json:"timestamp"`
	VolunteerInitials string       `json:"volunteer_initials"`
}

// FieldChange es el par {from, to} de un campo modificado.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// ChangeAction es una nota libre o un mapa campo -> cambio.
// En JSON va como string o como objeto (compatible con las filas existentes).
type ChangeAction struct {
	Note   string
	Fields map[string]FieldChange
}

func NoteAction(note string) ChangeAction {
	return ChangeAction{Note: note}
}

// FieldsAction nunca devuelve Fields nil: un diff vacío se guarda como {}.
func FieldsAction(fields map[string]FieldChange) ChangeAction {
	if fields == nil {
		fields = map[string]FieldChange{}
	}
	return ChangeAction{Fields: fields}
}

func (a ChangeAction) IsNote() bool { return a.Fields == nil }

func (a ChangeAction) MarshalJSON() ([]byte, error) {
	if a.IsNote() {
		return json.Marshal(a.Note)
	}
	return json.Marshal(a.Fields)
}

func (a *ChangeAction) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = ChangeAction{}
		return nil
	case data[0] == '"':
		var note string
		if err := json.Unmarshal(data, &note); err != nil {
			return err
		}
		*a = NoteAction(note)
		return nil
	case data[0] == '{':
		var fields map[string]FieldChange
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		*a = FieldsAction(fields)
		return nil
	default:
		return fmt.Errorf("change action: unexpected json %s", string(data))
	}
}

// Campos auditados, en el orden en que se renderizan.
const (
	FieldCarNumber = "car_number"
	FieldCash      = "cash"
	FieldCredit    = "credit"
	FieldTotal     = "total"
	FieldItems     = "items"
	FieldNumCats   = "num_cats"
	FieldNumDogs   = "num_dogs"
	FieldComments  = "comments"
	FieldTags      = "tags"
	FieldPaid      = "paid"
)

var comparableFields = []struct {
	name string
	get  func(Snapshot) any
}{
	{FieldCarNumber, func(s Snapshot) any { return s.CarNumber }},
	{FieldCash, func(s Snapshot) any { return s.Cash }},
	{FieldCredit, func(s Snapshot) any { return s.Credit }},
	{FieldTotal, func(s Snapshot) any { return roundCents(s.Total) }},
	{FieldItems, func(s Snapshot) any { return normalizeEntries(s.Items) }},
	{FieldNumCats, func(s Snapshot) any { return s.NumCats }},
	{FieldNumDogs, func(s Snapshot) any { return s.NumDogs }},
	{FieldComments, func(s Snapshot) any { return s.Comments }},
	{FieldTags, func(s Snapshot) any { return normalizeTags(s.Tags) }},
	{FieldPaid, func(s Snapshot) any { return s.Paid }},
}

// Diff compara sólo el conjunto fijo de campos auditados. Nil y vacío son iguales.
// Los campos sin cambios no aparecen.
func Diff(prev, next Snapshot) map[string]FieldChange {
	out := map[string]FieldChange{}
	for _, f := range comparableFields {
		from, to := f.get(prev), f.get(next)
		if reflect.DeepEqual(from, to) {
			continue
		}
		out[f.name] = FieldChange{From: from, To: to}
	}
	return out
}

// AppendChange agrega al final, sin dedup. No muta el slice recibido.
func AppendChange(log []ChangeLogEntry, e ChangeLogEntry) []ChangeLogEntry {
	out := make([]ChangeLogEntry, len(log), len(log)+1)
	copy(out, log)
	return append(out, e)
}

// Summarize renderiza una entrada para el historial.
// items se muestra como lista de nombres; el resto como "campo: from → to".
func Summarize(e ChangeLogEntry) string {
	if e.Action.IsNote() {
		return e.Action.Note
	}
	if len(e.Action.Fields) == 0 {
		return "no changes"
	}

	names := make([]string, 0, len(e.Action.Fields))
	for name := range e.Action.Fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return fieldRank(names[i]) < fieldRank(names[j]) })

	lines := make([]string, 0, len(names))
	for _, name := range names {
		ch := e.Action.Fields[name]
		if name == FieldItems {
			lines = append(lines, fmt.Sprintf("items: From: %s → To: %s",
				strings.Join(entryNames(ch.From), ", "), strings.Join(entryNames(ch.To), ", ")))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s → %s", name, renderValue(ch.From), renderValue(ch.To)))
	}
	return strings.Join(lines, "\n")
}

func fieldRank(name string) int {
	for i, f := range comparableFields {
		if f.name == name {
			return i
		}
	}
	return len(comparableFields)
}

// entryNames acepta []LineEntry o lo que vino de JSON ([]any de objetos).
func entryNames(v any) []string {
	var entries []LineEntry
	switch t := v.(type) {
	case nil:
		return []string{}
	case []LineEntry:
		entries = t
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return []string{}
		}
		if err := json.Unmarshal(raw, &entries); err != nil {
			return []string{}
		}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, renderValue(p))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

func normalizeEntries(in []LineEntry) []LineEntry {
	out := make([]LineEntry, 0, len(in))
	for _, e := range in {
		e.Tags = normalizeTags(e.Tags)
		out = append(out, e)
	}
	return out
}
