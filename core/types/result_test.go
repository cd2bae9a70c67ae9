package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"quotecalc/internal/errors"
)

func TestPhaseResultInsertionOrder(t *testing.T) {
	r := NewPhaseResult()
	fields := []string{"zulu", "alpha", "mike"}
	for _, f := range fields {
		if err := r.Set("pricing", f, decimal.NewFromInt(1)); err != nil {
			t.Fatalf("Set(%s): %v", f, err)
		}
	}

	got := r.Fields()
	if len(got) != len(fields) {
		t.Fatalf("Fields() returned %d entries, want %d", len(got), len(fields))
	}
	for i, f := range fields {
		if got[i] != f {
			t.Errorf("Fields()[%d] = %q, want %q (write order, not sorted)", i, got[i], f)
		}
	}
}

func TestPhaseResultRejectsDuplicateWrite(t *testing.T) {
	r := NewPhaseResult()
	if err := r.Set("purchase", "total", decimal.NewFromInt(100)); err != nil {
		t.Fatal(err)
	}
	err := r.Set("margin", "total", decimal.NewFromInt(200))
	if err == nil {
		t.Fatal("second write to the same field must fail")
	}
	if !errors.IsType(err, errors.TypeInternal) {
		t.Errorf("duplicate write error type = %v, want internal", err)
	}
	if !strings.Contains(err.Error(), "purchase") {
		t.Errorf("error should name the owning phase: %v", err)
	}

	// the original value survives
	v, _ := r.Get("total")
	if !v.Equal(decimal.NewFromInt(100)) {
		t.Errorf("value after rejected write = %s, want 100", v)
	}
	if r.Phase("total") != "purchase" {
		t.Errorf("owning phase = %q, want purchase", r.Phase("total"))
	}
}

func TestPhaseResultMustGet(t *testing.T) {
	r := NewPhaseResult()
	if err := r.Set("logistics", "logistics_total", decimal.NewFromInt(20)); err != nil {
		t.Fatal(err)
	}

	if _, err := r.MustGet("duty", "logistics_total"); err != nil {
		t.Errorf("MustGet on present field: %v", err)
	}

	_, err := r.MustGet("duty", "never_written")
	if err == nil {
		t.Fatal("MustGet on absent field must fail")
	}
	if !errors.IsType(err, errors.TypeMissingOrInvalidInput) {
		t.Errorf("missing field error type = %v, want missing-input", err)
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if e.Context["phase"] != "duty" {
		t.Errorf("error phase context = %v, want duty", e.Context["phase"])
	}
}

func TestPhaseResultMarshalJSONOrdered(t *testing.T) {
	r := NewPhaseResult()
	r.Set("purchase", "b_field", decimal.NewFromInt(2))
	r.Set("purchase", "a_field", decimal.NewFromInt(1))

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var entries []struct {
		Field string `json:"field"`
		Phase string `json:"phase"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Field != "b_field" || entries[1].Field != "a_field" {
		t.Errorf("JSON entries out of write order: %s", data)
	}
	if entries[0].Phase != "purchase" {
		t.Errorf("entry phase = %q, want purchase", entries[0].Phase)
	}
}
