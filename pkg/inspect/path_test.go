package inspect

import (
	"errors"
	"testing"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Ref
		wantErr error
	}{
		{
			name:  "bare name",
			input: "output-volume",
			want:  &Ref{Name: "output-volume", Raw: "output-volume"},
		},
		{
			name:  "indexed",
			input: "meter[3]",
			want:  &Ref{Name: "meter", Index: 3, Raw: "meter[3]"},
		},
		{
			name:  "hex index",
			input: "meter[0x10]",
			want:  &Ref{Name: "meter", Index: 16, Raw: "meter[0x10]"},
		},
		{
			name:  "mixer interface",
			input: "mixer:reverb-bypass",
			want:  &Ref{Iface: ctl.IfaceMixer, HasIface: true, Name: "reverb-bypass", Raw: "mixer:reverb-bypass"},
		},
		{
			name:  "card interface with index",
			input: " card:panel[1] ",
			want:  &Ref{Iface: ctl.IfaceCard, HasIface: true, Name: "panel", Index: 1, Raw: "card:panel[1]"},
		},
		{name: "empty", input: "  ", wantErr: ErrEmptyRef},
		{name: "unknown interface", input: "pcm:x", wantErr: ErrInvalidRef},
		{name: "unclosed index", input: "meter[3", wantErr: ErrInvalidRef},
		{name: "bad index", input: "meter[x]", wantErr: ErrInvalidNumber},
		{name: "negative index", input: "meter[-1]", wantErr: ErrInvalidRef},
		{name: "missing name", input: "mixer:[1]", wantErr: ErrInvalidRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseRef(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) unexpected error: %v", tt.input, err)
			}
			if *got != *tt.want {
				t.Errorf("ParseRef(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	card := ctl.NewMemoryCard()
	if err := card.AddBoolElems(ctl.CardID("panel-button"), 1, false); err != nil {
		t.Fatal(err)
	}
	if err := card.AddIntElems(ctl.MixerID("volume"), 2, -10, 0, 1, nil, true); err != nil {
		t.Fatal(err)
	}

	r, _ := ParseRef("panel-button")
	info, err := r.Resolve(card)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if info.ID != ctl.CardID("panel-button") {
		t.Errorf("resolved %s", info.ID)
	}

	r, _ = ParseRef("mixer:volume")
	if info, err = r.Resolve(card); err != nil || info.Count != 2 {
		t.Errorf("Resolve(mixer:volume) = %+v, %v", info, err)
	}

	for _, in := range []string{"missing", "card:volume", "volume[1]"} {
		r, _ := ParseRef(in)
		if _, err := r.Resolve(card); !errors.Is(err, ctl.ErrElemNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrElemNotFound", in, err)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"-100", -100},
		{"0x1f", 31},
		{"-0X80", -128},
	}
	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseNumber(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseNumber("0xzz"); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("ParseNumber(0xzz) error = %v", err)
	}
}
