package interfaces

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "10:00", want: "10:00"},
		{input: "2:05", want: "02:05"},
		{input: "90:00", want: "90:00"},
		{input: "1:02:03", want: "62:03"},
		{input: "45", want: "45:00"},
		{input: "", want: "00:00"},
		{input: "10:75", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "1:2:3:4", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseDuration(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDuration(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDuration(%q) unexpected error: %v", tc.input, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseDuration(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestDuration_Minutes(t *testing.T) {
	d, _ := ParseDuration("0:30")
	if got := d.Minutes(); got != 1 {
		t.Fatalf("partial minutes must round up, got %d", got)
	}
	d, _ = ParseDuration("10:00")
	if got := d.Minutes(); got != 10 {
		t.Fatalf("expected 10 minutes, got %d", got)
	}
}

func TestDuration_YAMLRoundTrip(t *testing.T) {
	var fm struct {
		Duration Duration `yaml:"duration"`
	}
	if err := yaml.Unmarshal([]byte("duration: 10:00\n"), &fm); err != nil {
		t.Fatalf("unmarshal string form: %v", err)
	}
	if fm.Duration.String() != "10:00" {
		t.Fatalf("unexpected duration %s", fm.Duration)
	}

	// Integer scalars carry total seconds, matching the sexagesimal
	// resolution YAML 1.1 parsers apply to unquoted MM:SS values.
	if err := yaml.Unmarshal([]byte("duration: 600\n"), &fm); err != nil {
		t.Fatalf("unmarshal integer form: %v", err)
	}
	if fm.Duration.String() != "10:00" {
		t.Fatalf("unexpected duration %s", fm.Duration)
	}

	// Quoted digit strings stay bare minute counts; only int nodes are
	// second counts.
	if err := yaml.Unmarshal([]byte("duration: \"45\"\n"), &fm); err != nil {
		t.Fatalf("unmarshal quoted minutes: %v", err)
	}
	if fm.Duration.String() != "45:00" {
		t.Fatalf("unexpected duration %s", fm.Duration)
	}

	if err := yaml.Unmarshal([]byte("duration: -5\n"), &fm); err == nil {
		t.Fatal("negative second count must fail")
	}

	out, err := yaml.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "duration: \"10:00\"\n" {
		t.Fatalf("unexpected marshal output %q", string(out))
	}
}
