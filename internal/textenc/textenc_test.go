package textenc

import (
	"bytes"
	"testing"
)

func TestDecodeLatin1(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"ascii", []byte("plain"), "plain"},
		{"high bytes", []byte{0xA9, 'n', 'a', 'm'}, "©nam"},
		{"accented", []byte{0xE9, 0xE8}, "éè"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeLatin1(tt.input); got != tt.want {
				t.Errorf("DecodeLatin1(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimPadding(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"nul padded", []byte("Title\x00\x00\x00"), []byte("Title")},
		{"space padded", []byte("Title   "), []byte("Title")},
		{"mixed junk", []byte("Title \x00!"), []byte("Title")},
		{"no padding", []byte("Title9"), []byte("Title9")},
		{"all padding", []byte("\x00\x00 "), []byte{}},
		{"latin1 letter kept", []byte{0xE9, 0x00}, []byte{0xE9}},
		{"empty", []byte{}, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimPadding(tt.input); !bytes.Equal(got, tt.want) {
				t.Errorf("TrimPadding(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeUTF8(t *testing.T) {
	got, err := DecodeUTF8([]byte("héllo"))
	if err != nil {
		t.Fatalf("DecodeUTF8: %v", err)
	}
	if got != "héllo" {
		t.Errorf("DecodeUTF8 = %q, want \"héllo\"", got)
	}

	if _, err := DecodeUTF8([]byte{0xFF, 0xFE, 0x00}); err == nil {
		t.Error("DecodeUTF8 accepted an invalid sequence")
	}
}

func TestDecodeUTF16(t *testing.T) {
	tests := []struct {
		name   string
		decode func([]byte) (string, error)
		input  []byte
		want   string
	}{
		{"BOM big-endian", DecodeUTF16, []byte{0xFE, 0xFF, 0x00, 0x41}, "A"},
		{"BOM little-endian", DecodeUTF16, []byte{0xFF, 0xFE, 0x41, 0x00}, "A"},
		{"no BOM defaults to BE", DecodeUTF16, []byte{0x00, 0x41, 0x00, 0x42}, "AB"},
		{"explicit BE", DecodeUTF16BE, []byte{0x00, 0x41}, "A"},
		{"explicit LE", DecodeUTF16LE, []byte{0x41, 0x00}, "A"},
		{"surrogate pair", DecodeUTF16BE, []byte{0xD8, 0x3D, 0xDE, 0x00}, "\U0001F600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.decode(tt.input)
			if err != nil {
				t.Fatalf("decode(%v): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("decode(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeUTF16_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"odd length", []byte{0x00, 0x41, 0x00}},
		{"unpaired surrogate", []byte{0xD8, 0x00, 0x00, 0x41}},
		{"lone trailing surrogate", []byte{0xDC, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeUTF16BE(tt.input); err == nil {
				t.Errorf("DecodeUTF16BE(%v) succeeded, want error", tt.input)
			}
		})
	}
}
