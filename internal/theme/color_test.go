package theme

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "red", want: Red},
		{in: " Blue ", want: Blue},
		{in: "#007aff", want: Blue},
		{in: "#00000080", want: Color{0, 0, 0, 0x80}},
		{in: "magenta", wantErr: true},
		{in: "#12", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if got := Red.String(); got != "#ff3b30" {
		t.Errorf("Red.String() = %q", got)
	}
	if got := (Color{1, 2, 3, 4}).String(); got != "#01020304" {
		t.Errorf("translucent String() = %q", got)
	}
}

func TestColorYAML(t *testing.T) {
	type doc struct {
		Named  Color `yaml:"named"`
		Custom Color `yaml:"custom"`
	}
	in := doc{Named: Green, Custom: Color{0x10, 0x20, 0x30, 0xff}}

	data, err := yaml.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "named: green\n") {
		t.Errorf("unexpected yaml:\n%s", data)
	}

	var out doc
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("decoded %v, want %v", out, in)
	}

	if err := yaml.Unmarshal([]byte("named: mauve\n"), &out); err == nil {
		t.Error("expected error for unknown color")
	}
}
