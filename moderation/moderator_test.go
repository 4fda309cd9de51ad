package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// The dictionary avoids words hidden inside common ones ("he" inside "The").
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	dictionary := []string{"estafa", "fraude", "idiota"}
	mod, err := NewModerator(dictionary, replacementChar, log)
	req.NoError(err)
	req.NotNil(mod)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "Simple word and space preservation",
			input:    "Esto es una estafa total",
			expected: "Esto es una ****** total",
			words:    []string{"estafa"},
		},
		{
			name:     "Multiple occurrences",
			input:    "fraude fraude",
			expected: "****** ******",
			words:    []string{"fraude", "fraude"},
		},
		{
			name:     "Leet speak and internal punctuation",
			input:    "Es un 3.$.t.4.f.4 !",
			expected: "Es un *********** !",
			words:    []string{"estafa"},
		},
		{
			name:     "Uppercase and noise",
			input:    "F-R-A-U-D-E y nada mas",
			expected: "*********** y nada mas",
			words:    []string{"fraude"},
		},
		{
			name:     "Accents are kept",
			input:    "Qué fraude",
			expected: "Qué ******",
			words:    []string{"fraude"},
		},
		{
			name:     "Nothing to censor",
			input:    "Nos vemos el sábado",
			expected: "Nos vemos el sábado",
			words:    nil,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
			words:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, words := mod.Censor(tt.input)
			req.Equal(tt.expected, content)
			req.Equal(tt.words, words)
		})
	}
}

func TestModerator_NoiseOnlyWordsAreIgnored(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	mod, err := NewModerator([]string{"...", ",,,", "", "fraude"}, replacementChar, log)
	req.NoError(err)

	content, words := mod.Censor("Hola ...")
	req.Equal("Hola ...", content)
	req.Nil(words)

	content, words = mod.Censor("un fraude")
	req.Equal("un ******", content)
	req.Equal([]string{"fraude"}, words)
}

func TestModerator_NilWhenNothingToCensor(t *testing.T) {
	req := require.New(t)

	mod, err := NewModerator(ParseWords(" , ,"), replacementChar, slog.Default())
	req.NoError(err)
	req.Nil(mod)

	content, words := mod.Censor("anything")
	req.Equal("anything", content)
	req.Nil(words)
}

func TestParseWords(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"a", "b c"}, ParseWords(" a ,, b c ,"))
	req.Empty(ParseWords(""))
}
