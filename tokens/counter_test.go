package tokens

import (
	"strings"
	"testing"
)

func TestNewEstimatingCounter(t *testing.T) {
	c := NewEstimatingCounter()

	if c.CharsPerToken != DefaultCharsPerToken {
		t.Errorf("expected CharsPerToken %v, got %v", DefaultCharsPerToken, c.CharsPerToken)
	}
}

func TestNewEstimatingCounterWithRatio(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected float64
	}{
		{
			name:     "custom ratio",
			ratio:    3.0,
			expected: 3.0,
		},
		{
			name:     "zero ratio uses default",
			ratio:    0,
			expected: DefaultCharsPerToken,
		},
		{
			name:     "negative ratio uses default",
			ratio:    -1,
			expected: DefaultCharsPerToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewEstimatingCounterWithRatio(tt.ratio)
			if c.CharsPerToken != tt.expected {
				t.Errorf("expected CharsPerToken %v, got %v", tt.expected, c.CharsPerToken)
			}
		})
	}
}

func TestEstimatingCounter_Count(t *testing.T) {
	c := NewEstimatingCounter()

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			name:     "empty string",
			text:     "",
			expected: 0,
		},
		{
			name:     "single character",
			text:     "a",
			expected: 1, // ceil(1/4) = 1
		},
		{
			name:     "four characters",
			text:     "test",
			expected: 1, // 4/4 = 1
		},
		{
			name:     "five characters",
			text:     "tests",
			expected: 2, // ceil(5/4) = 2
		},
		{
			name:     "eight characters",
			text:     "testtest",
			expected: 2, // 8/4 = 2
		},
		{
			name:     "hello world",
			text:     "Hello World",
			expected: 3, // ceil(11/4) = 3
		},
		{
			name:     "unicode characters",
			text:     "héllo wörld!",
			expected: 3, // 12 runes, ceil(12/4) = 3
		},
		{
			name:     "longer text",
			text:     "This is a longer piece of text that should estimate to more tokens.",
			expected: 17, // 68 chars / 4 = 17
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Count(tt.text)
			if result != tt.expected {
				t.Errorf("Count(%q) = %d, expected %d", tt.text, result, tt.expected)
			}
		})
	}
}

func TestEstimatingCounter_CountChars(t *testing.T) {
	c := NewEstimatingCounter()

	tests := []struct {
		name     string
		chars    int
		expected int
	}{
		{name: "zero", chars: 0, expected: 0},
		{name: "negative", chars: -5, expected: 0},
		{name: "one", chars: 1, expected: 1},
		{name: "exact multiple", chars: 4000, expected: 1000},
		{name: "rounds up", chars: 4001, expected: 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.CountChars(tt.chars)
			if result != tt.expected {
				t.Errorf("CountChars(%d) = %d, expected %d", tt.chars, result, tt.expected)
			}
		})
	}
}

func TestEstimatingCounter_Count_CustomRatio(t *testing.T) {
	// 3 chars per token is a tighter estimate
	c := NewEstimatingCounterWithRatio(3.0)

	text := "Hello World" // 11 chars
	expected := 4         // ceil(11/3) = 4

	result := c.Count(text)
	if result != expected {
		t.Errorf("Count(%q) with ratio 3.0 = %d, expected %d", text, result, expected)
	}
}

func TestEstimatingCounter_FitsInLimit(t *testing.T) {
	c := NewEstimatingCounter()

	tests := []struct {
		name     string
		text     string
		limit    int
		expected bool
	}{
		{
			name:     "empty fits any limit",
			text:     "",
			limit:    1,
			expected: true,
		},
		{
			name:     "fits exactly",
			text:     "test",
			limit:    1,
			expected: true,
		},
		{
			name:     "fits with room",
			text:     "test",
			limit:    10,
			expected: true,
		},
		{
			name:     "does not fit",
			text:     "test test test test test", // ~6 tokens
			limit:    3,
			expected: false,
		},
		{
			name:     "zero limit",
			text:     "hello",
			limit:    0,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.FitsInLimit(tt.text, tt.limit)
			if result != tt.expected {
				t.Errorf("FitsInLimit(%q, %d) = %v, expected %v",
					tt.text, tt.limit, result, tt.expected)
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	// Convenience function should work the same as NewEstimatingCounter().Count()
	text := "Hello World"
	expected := NewEstimatingCounter().Count(text)

	result := EstimateTokens(text)
	if result != expected {
		t.Errorf("EstimateTokens(%q) = %d, expected %d", text, result, expected)
	}
}

func TestEstimateChars(t *testing.T) {
	if got := EstimateChars(10); got != 3 {
		t.Errorf("EstimateChars(10) = %d, expected 3", got)
	}
	if got := EstimateChars(0); got != 0 {
		t.Errorf("EstimateChars(0) = %d, expected 0", got)
	}
}

func TestEstimateTokens_LargeText(t *testing.T) {
	text := strings.Repeat("Hello World ", 1000)

	result := EstimateTokens(text)
	// 12 chars * 1000 = 12000 chars, / 4 = 3000 tokens
	if result != 3000 {
		t.Errorf("EstimateTokens for large text = %d, expected 3000", result)
	}
}

func TestCounter_Interface(t *testing.T) {
	// Verify EstimatingCounter implements Counter interface
	var _ Counter = (*EstimatingCounter)(nil)
}

func BenchmarkEstimatingCounter_Count(b *testing.B) {
	c := NewEstimatingCounter()
	text := strings.Repeat("Hello World ", 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Count(text)
	}
}
