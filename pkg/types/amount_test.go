package types

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Amount
		wantErr bool
	}{
		{"whole", "5", 5_000_000, false},
		{"fraction", "1.5", 1_500_000, false},
		{"full precision", "0.000001", 1, false},
		{"zero", "0", 0, false},
		{"trailing zeros", "2.500000", 2_500_000, false},
		{"large", "1000000", 1_000_000_000_000, false},
		{"empty", "", 0, true},
		{"negative", "-1", 0, true},
		{"too many decimals", "1.0000001", 0, true},
		{"not a number", "abc", 0, true},
		{"double dot", "1.2.3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAmount(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmount_Micro(t *testing.T) {
	if got := Amount(1_500_000).Micro(); got != "1500000" {
		t.Errorf("Micro() = %s, want 1500000", got)
	}
	if got := Amount(0).Micro(); got != "0" {
		t.Errorf("Micro() = %s, want 0", got)
	}
}

func TestAmount_String(t *testing.T) {
	tests := []struct {
		in   Amount
		want string
	}{
		{5_000_000, "5"},
		{1_500_000, "1.5"},
		{1, "0.000001"},
		{0, "0"},
		{1_000_000_000_001, "1000000.000001"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Amount(%d).String() = %s, want %s", uint64(tt.in), got, tt.want)
		}
	}
}

func TestAmount_Units(t *testing.T) {
	if got := Amount(1_999_999).Units(); got != 1 {
		t.Errorf("Units() = %d, want 1", got)
	}
}
