package style

import (
	"strings"
	"testing"
)

func TestBold(t *testing.T) {
	result := Bold("Hello World")
	if !strings.Contains(result, "Hello World") {
		t.Errorf("Expected output to contain %q, got %q", "Hello World", result)
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		level    int
		expected string
	}{
		{
			name:     "no indent",
			text:     "Hello",
			level:    0,
			expected: "Hello",
		},
		{
			name:     "single indent",
			text:     "Hello",
			level:    1,
			expected: "  Hello",
		},
		{
			name:     "double indent",
			text:     "Hello",
			level:    2,
			expected: "    Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Indent(tt.text, tt.level)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestTerminalWidth(t *testing.T) {
	// Test binaries run with stdout piped, so the fallback is returned.
	if got := TerminalWidth(42); got != 42 {
		t.Errorf("Expected fallback width 42, got %d", got)
	}
}

func TestIndicators(t *testing.T) {
	indicators := map[string]string{
		"success": SuccessIndicator,
		"error":   ErrorIndicator,
		"warning": WarningIndicator,
		"info":    InfoIndicator,
		"pending": PendingIndicator,
	}
	for name, indicator := range indicators {
		if indicator == "" {
			t.Errorf("Indicator %s is empty", name)
		}
	}
}
