package terminal

import "testing"

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want uint8
	}{
		{"black", RGB{0, 0, 0}, 16},
		{"white", RGB{255, 255, 255}, 231},
		{"pure red", RGB{255, 0, 0}, 196},
		{"mid gray uses ramp", RGB{128, 128, 128}, 244},
		{"cube color", RGB{0, 95, 135}, 24},
		{"rain green", RGB{0, 230, 50}, 41},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBTo256(tt.in); got != tt.want {
				t.Errorf("RGBTo256(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"256", ColorMode256, false},
		{"truecolor", ColorModeTrueColor, false},
		{"24bit", ColorModeTrueColor, false},
		{"TRUE", ColorModeTrueColor, false},
		{"sixteen", ColorMode256, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColorMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectColorMode(t *testing.T) {
	for _, k := range []string{"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "ALACRITTY_LOG", "WEZTERM_PANE"} {
		t.Setenv(k, "")
	}

	t.Setenv("COLORTERM", "truecolor")
	t.Setenv("TERM", "xterm")
	if got := DetectColorMode(); got != ColorModeTrueColor {
		t.Errorf("COLORTERM=truecolor: got %v", got)
	}

	t.Setenv("COLORTERM", "")
	if got := DetectColorMode(); got != ColorMode256 {
		t.Errorf("plain xterm: got %v", got)
	}

	t.Setenv("TERM", "xterm-direct")
	if got := DetectColorMode(); got != ColorModeTrueColor {
		t.Errorf("TERM=xterm-direct: got %v", got)
	}
}
