package text

import (
	"errors"
	"testing"
)

func TestPreset(t *testing.T) {
	tests := []struct {
		name    string
		want    Charset
		wantErr bool
	}{
		{name: "unicode", want: Unicode()},
		{name: "ascii", want: ASCII()},
		{name: "Unicode", wantErr: true}, // case-sensitive
		{name: "utf8", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Preset(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCharset) {
					t.Errorf("Preset(%q) error = %v, want ErrUnknownCharset", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Preset(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Preset(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestCharsetWith(t *testing.T) {
	base := Unicode()
	derived := base.With(Overrides{Dash: "──", Trunc: "…"})

	if derived.Dash != "──" {
		t.Errorf("Dash = %q, want %q", derived.Dash, "──")
	}
	if derived.Trunc != "…" {
		t.Errorf("Trunc = %q, want %q", derived.Trunc, "…")
	}
	// Unspecified fields keep the base values.
	if derived.Mid != base.Mid || derived.Terminator != base.Terminator || derived.Skip != base.Skip || derived.Pair != base.Pair {
		t.Errorf("With() changed unspecified fields: %+v", derived)
	}
	// The base is untouched.
	if base != Unicode() {
		t.Errorf("base mutated: %+v", base)
	}
}

func TestNewCharset(t *testing.T) {
	cs := NewCharset("M", "T", "S", "D", "X", "=")

	want := Charset{Mid: "M", Terminator: "T", Skip: "S", Dash: "D", Trunc: "X", Pair: "="}
	if cs != want {
		t.Errorf("NewCharset() = %+v, want %+v", cs, want)
	}
}

func TestBranchWidth(t *testing.T) {
	tests := []struct {
		name string
		cs   Charset
		want int
	}{
		{"unicode", Unicode(), 2},
		{"ascii", ASCII(), 3},
		{"wide dash", Unicode().With(Overrides{Dash: "──"}), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cs.BranchWidth(); got != tt.want {
				t.Errorf("BranchWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}
