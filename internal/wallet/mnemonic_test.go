package wallet

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateMnemonic(t *testing.T) {
	m, err := GenerateMnemonic()
	if err != nil {
		t.Fatalf("GenerateMnemonic() error: %v", err)
	}
	if got := len(strings.Fields(m)); got != 24 {
		t.Errorf("word count = %d, want 24", got)
	}
	if err := ValidateMnemonic(m); err != nil {
		t.Errorf("generated mnemonic should validate: %v", err)
	}

	m2, err := GenerateMnemonic()
	if err != nil {
		t.Fatalf("GenerateMnemonic() error: %v", err)
	}
	if m == m2 {
		t.Error("two generated mnemonics should not collide")
	}
}

func TestValidateMnemonic(t *testing.T) {
	// Standard BIP-39 test vector (entropy of all zeros).
	valid12 := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	tests := []struct {
		name     string
		mnemonic string
		ok       bool
	}{
		{"valid 12 words", valid12, true},
		{"empty", "", false},
		{"wrong word count", "abandon abandon abandon", false},
		{"unknown word", strings.Replace(valid12, "about", "zzzzzz", 1), false},
		{"bad checksum", strings.Replace(valid12, "about", "abandon", 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMnemonic(tt.mnemonic)
			if tt.ok && err != nil {
				t.Errorf("ValidateMnemonic() error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("ValidateMnemonic() should fail")
				}
				if !errors.Is(err, ErrInvalidMnemonic) {
					t.Errorf("error should wrap ErrInvalidMnemonic, got %v", err)
				}
			}
		})
	}
}
