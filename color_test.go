package optics

import (
	"image/color"
	"testing"
)

func TestFrequencyToColorEndpoints(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		want string
	}{
		{"red end", 405, "rgb(255,0,0)"},
		{"violet end", 790, "rgb(255,0,255)"},
		{"below range clamps", 300, "rgb(255,0,0)"},
		{"far below range clamps", -10, "rgb(255,0,0)"},
		{"above range clamps", 900, "rgb(255,0,255)"},
		{"calibration 530", 530, "rgb(0,255,0)"},
		{"calibration 480", 480, "rgb(255,127,0)"},
		{"midpoint 510-530", 520, "rgb(128,255,0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FrequencyToColor(tt.freq).CSS(); got != tt.want {
				t.Errorf("FrequencyToColor(%v) = %s, want %s", tt.freq, got, tt.want)
			}
		})
	}
}

func TestFrequencyToColorExactEndpoints(t *testing.T) {
	if got := FrequencyToColor(SpectrumMinTHz); got != RGB(1, 0, 0) {
		t.Errorf("FrequencyToColor(405) = %+v, want pure red", got)
	}
	if got := FrequencyToColor(SpectrumMaxTHz); got != RGB(1, 0, 1) {
		t.Errorf("FrequencyToColor(790) = %+v, want (1, 0, 1)", got)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#5D9CEC", color.NRGBA{0x5D, 0x9C, 0xEC, 0xFF}},
		{"AEC6CF", color.NRGBA{0xAE, 0xC6, 0xCF, 0xFF}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#11223344", color.NRGBA{0x11, 0x22, 0x33, 0x44}},
		{"#zz", color.NRGBA{0, 0, 0, 255}},
		{"#gggggg", color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := Hex(tt.in).Color(); got != tt.want {
			t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 128}
	if got := FromColor(c).Color(); got != c {
		t.Errorf("FromColor round trip = %v, want %v", got, c)
	}
}
