package money

import (
	"encoding/json"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cents
		wantErr bool
	}{
		{name: "plain dollars", input: "12", want: 1200},
		{name: "dot separator", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "single fractional digit", input: "12.3", want: 1230},
		{name: "third digit rounds up", input: "12.345", want: 1235},
		{name: "third digit rounds down", input: "12.344", want: 1234},
		{name: "leading dot", input: ".5", want: 50},
		{name: "trailing dot", input: "12.", want: 1200},
		{name: "negative preserved", input: "-3.50", want: -350},
		{name: "zero", input: "0", want: 0},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "two dots", input: "1.2.3", wantErr: true},
		{name: "largest representable", input: "92233720368547758.07", want: 9223372036854775807},
		{name: "cents overflow int64", input: "92233720368547758.08", wantErr: true},
		{name: "integer part overflows when scaled", input: "922337203685477581", wantErr: true},
		{name: "integer part exceeds int64", input: "9223372036854775808", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecimal(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDecimal(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCents_UnmarshalJSON_Coercion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Cents
	}{
		{name: "number", input: `{"amount": 300}`, want: 30000},
		{name: "decimal number", input: `{"amount": 12.34}`, want: 1234},
		{name: "numeric string", input: `{"amount": "12.34"}`, want: 1234},
		{name: "null coerces to zero", input: `{"amount": null}`, want: 0},
		{name: "garbage string coerces to zero", input: `{"amount": "abc"}`, want: 0},
		{name: "missing field stays zero", input: `{}`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Amount Cents `json:"amount"`
			}
			if err := json.Unmarshal([]byte(tt.input), &payload); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if payload.Amount != tt.want {
				t.Errorf("got %d, want %d", payload.Amount, tt.want)
			}
		})
	}
}

func TestCents_String(t *testing.T) {
	if got := Cents(1234).String(); got != "12.34" {
		t.Errorf("String() = %q, want %q", got, "12.34")
	}
	if got := Cents(5).String(); got != "0.05" {
		t.Errorf("String() = %q, want %q", got, "0.05")
	}
	if got := Cents(-350).String(); got != "-3.50" {
		t.Errorf("String() = %q, want %q", got, "-3.50")
	}
}
