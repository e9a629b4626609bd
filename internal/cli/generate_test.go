package cli

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/captcha/pkg/errors"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		output, format string
		want           string
		wantErr        bool
	}{
		{output: "", format: "", want: "png"},
		{output: "-", format: "", want: "png"},
		{output: "-", format: "JPG", want: "jpeg"},
		{output: "a.gif", format: "", want: "gif"},
		{output: "a.jpg", format: "jpeg", want: "jpeg"},
		{output: "a.tif", format: "", want: "tiff"},
		{output: "a.png", format: "gif", wantErr: true},
		{output: "a.webp", format: "", wantErr: true},
		{output: "", format: "svg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.output+"/"+tt.format, func(t *testing.T) {
			got, err := resolveFormat(tt.output, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("resolveFormat(%q, %q) = %q, want error", tt.output, tt.format, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveFormat(%q, %q): %v", tt.output, tt.format, err)
			}
			if got != tt.want {
				t.Errorf("resolveFormat(%q, %q) = %q, want %q", tt.output, tt.format, got, tt.want)
			}
		})
	}
}

func TestDefaultOutputName(t *testing.T) {
	tests := []struct {
		text    string
		pattern string
	}{
		{"Ab3", `^Ab3-[0-9a-f]{8}\.png$`},
		{"a b/c", `^a_b_c-[0-9a-f]{8}\.png$`},
		{"日本", `^captcha-[0-9a-f]{8}\.png$`},
		{"", `^captcha-[0-9a-f]{8}\.png$`},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := defaultOutputName(tt.text, "png")
			if !regexp.MustCompile(tt.pattern).MatchString(got) {
				t.Errorf("defaultOutputName(%q) = %q, want match %s", tt.text, got, tt.pattern)
			}
		})
	}

	if defaultOutputName("x", "png") == defaultOutputName("x", "png") {
		t.Error("default names should be unique")
	}
}

func decodeSize(t *testing.T, path string) (int, int, string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height, format
}

func TestGenerateToFile(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		args       []string
		wantW      int
		wantH      int
		wantFormat string
	}{
		{name: "defaults", file: "ab3.png", wantW: 160, wantH: 60, wantFormat: "png"},
		{name: "size flags", file: "big.png", args: []string{"--width", "240", "--height", "90"}, wantW: 240, wantH: 90, wantFormat: "png"},
		{name: "jpeg", file: "ab3.jpg", args: []string{"--quality", "80"}, wantW: 160, wantH: 60, wantFormat: "jpeg"},
		{name: "panda", file: "panda.png", args: []string{"--panda", "--seed", "5"}, wantW: 160, wantH: 60, wantFormat: "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			args := append([]string{"generate", "Ab3", "-o", path, "--seed", "1"}, tt.args...)
			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if !strings.Contains(out, "Generated captcha") || !strings.Contains(out, path) {
				t.Errorf("generate output = %q", out)
			}
			w, h, format := decodeSize(t, path)
			if w != tt.wantW || h != tt.wantH || format != tt.wantFormat {
				t.Errorf("got %dx%d %s, want %dx%d %s", w, h, format, tt.wantW, tt.wantH, tt.wantFormat)
			}
		})
	}
}

func TestGenerateToStdout(t *testing.T) {
	out, err := runCLI(t, "generate", "Ab3", "-o", "-", "--seed", "2")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader([]byte(out)))
	if err != nil {
		t.Fatalf("decode stdout: %v", err)
	}
	if format != "png" || cfg.Width != 160 || cfg.Height != 60 {
		t.Errorf("stdout image = %dx%d %s", cfg.Width, cfg.Height, format)
	}
}

func TestGenerateSeededOutputIsStable(t *testing.T) {
	first, err := runCLI(t, "generate", "Ab3", "-o", "-", "--seed", "9")
	if err != nil {
		t.Fatal(err)
	}
	second, err := runCLI(t, "generate", "Ab3", "-o", "-", "--seed", "9")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("same seed should produce identical images")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"control character", []string{"generate", "a\tb", "-o", "-"}, errors.ErrCodeInvalidInput},
		{"bad format", []string{"generate", "abc", "-o", "-", "-f", "svg"}, errors.ErrCodeInvalidFormat},
		{"missing font", []string{"generate", "abc", "-o", "-", "--font", "builtin:nope"}, errors.ErrCodeFontNotFound},
		{"bad size", []string{"generate", "abc", "-o", "-", "--size", "0"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if errors.GetCode(err) != tt.code {
				t.Errorf("error = %v, want code %q", err, tt.code)
			}
		})
	}

	if _, err := runCLI(t, "generate"); err == nil {
		t.Error("generate without text should fail")
	}
}
