package models

import (
	"errors"
	"testing"

	"github.com/xhhuango/json"
)

func TestParseOptionType(t *testing.T) {
	tests := []struct {
		in   string
		want OptionType
	}{
		{"call", Call},
		{"CALL", Call},
		{" Call ", Call},
		{"c", Call},
		{"put", Put},
		{"Put", Put},
		{"P", Put},
	}
	for _, tt := range tests {
		got, err := ParseOptionType(tt.in)
		if err != nil {
			t.Fatalf("ParseOptionType(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOptionType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseOptionTypeRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "straddle", "calls", "x"} {
		if _, err := ParseOptionType(in); !errors.Is(err, ErrInvalidOptionType) {
			t.Errorf("ParseOptionType(%q) error = %v, want ErrInvalidOptionType", in, err)
		}
	}
}

func TestOptionTypeMarshalText(t *testing.T) {
	b, err := Put.MarshalText()
	if err != nil || string(b) != "put" {
		t.Fatalf("Put.MarshalText() = %q, %v", b, err)
	}
	if _, err := OptionType(9).MarshalText(); !errors.Is(err, ErrInvalidOptionType) {
		t.Fatalf("expected ErrInvalidOptionType, got %v", err)
	}
}

func TestOptionTypeJSONRoundTrip(t *testing.T) {
	type doc struct {
		Type OptionType `json:"type"`
	}
	for _, typ := range []OptionType{Call, Put} {
		data, err := json.Marshal(doc{Type: typ})
		if err != nil {
			t.Fatal(err)
		}
		var got doc
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got.Type != typ {
			t.Errorf("round trip of %v gave %v", typ, got.Type)
		}
	}

	var got doc
	if err := json.Unmarshal([]byte(`{"type":"P"}`), &got); err != nil || got.Type != Put {
		t.Errorf(`"P" decoded to %v, %v`, got.Type, err)
	}
	if err := json.Unmarshal([]byte(`{"type":"straddle"}`), &got); !errors.Is(err, ErrInvalidOptionType) {
		t.Errorf("expected ErrInvalidOptionType, got %v", err)
	}
}
