package version

import "testing"

func TestLessThan(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{"numeric not lexical minor", "1.2.3", "1.10.0", true},
		{"equal", "2.0.0", "2.0.0", false},
		{"short equals padded", "1.2", "1.2.0", false},
		{"padded equals short", "1.2.0", "1.2", false},
		{"carry across minor", "1.9.9", "1.10.0", true},
		{"greater major", "17.0.0", "16.0.0", false},
		{"older major", "14.17.0", "16.0.0", true},
		{"short less than longer", "1.2", "1.2.1", true},
		{"extra segment", "1.2.3.4", "1.2.3", false},
		{"non-numeric segment is zero", "1.x.5", "1.0.6", true},
		{"non-numeric equals zero", "1.x", "1.0", false},
		{"empty is zero", "", "0.0.1", true},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LessThan(tt.a, tt.b)
			if got != tt.expected {
				t.Errorf("LessThan(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestCore(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"16.0.0", "16.0.0"},
		{"16", "16.0.0"},
		{"14.17", "14.17.0"},
		{"18.0.0-beta.1", "18.0.0"},
		{"1.2.3+build.5", "1.2.3"},
		{"v20.1.0", "20.1.0"},
		{" 12.0.0 ", "12.0.0"},
		{"1.2.3.4-rc", "1.2.3.4"},
		{"latest", "latest"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Core(tt.in); got != tt.expected {
				t.Errorf("Core(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}
