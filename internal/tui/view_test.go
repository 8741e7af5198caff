package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
	}{
		{name: "short ascii", in: "Burek", width: 24},
		{name: "exact width", in: strings.Repeat("a", 24), width: 24},
		{name: "long ascii", in: strings.Repeat("a", 30), width: 24},
		{name: "long multibyte", in: "Ćevapčići sa kajmakom i lukom", width: 24},
		{name: "multibyte at the cut", in: strings.Repeat("a", 22) + "žxxxx", width: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pad(tt.in, tt.width)

			assert.True(t, utf8.ValidString(got))
			assert.Equal(t, tt.width, lipgloss.Width(got))
		})
	}
}

func TestPad_TruncatesWithEllipsis(t *testing.T) {
	got := pad("Ćevapčići sa kajmakom i lukom", 24)

	assert.True(t, strings.HasSuffix(got, "…"))
	assert.True(t, strings.HasPrefix(got, "Ćevapčići sa kajmakom"))
}

func TestPad_PadsShortNames(t *testing.T) {
	got := pad("Burek", 10)

	assert.Equal(t, "Burek     ", got)
}
