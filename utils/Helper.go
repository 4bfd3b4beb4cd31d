package utils

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/viper"
)

var IsTestMode bool = false

// ErrNoDigits is reported when a token that should contain a number has none.
// Callers turn this into a user-facing validation message.
type ErrNoDigits struct {
	Token string
}

func (e *ErrNoDigits) Error() string {
	return fmt.Sprintf("no digits found in %q", e.Token)
}

const (
	fullwidthZero  = '０'
	fullwidthNine  = '９'
	fullwidthSpace = '　'
)

// NormalizeDigits maps full-width decimal digits to their ASCII forms.
// Other runes pass through untouched.
func NormalizeDigits(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= fullwidthZero && r <= fullwidthNine {
			return '0' + (r - fullwidthZero)
		}
		return r
	}, text)
}

// NormalizeCell trims a CSV cell and collapses whitespace runs, the
// full-width space included, to a single ASCII space.
func NormalizeCell(cell string) string {
	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return unicode.IsSpace(r) || r == fullwidthSpace
	})
	return strings.Join(fields, " ")
}

// CompactText normalizes digits and strips all whitespace. Used for label
// comparison where the source pads labels inconsistently.
func CompactText(text string) string {
	normalized := NormalizeDigits(text)
	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if unicode.IsSpace(r) || r == fullwidthSpace {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DigitsOnly keeps only the decimal digits of text, full-width included.
func DigitsOnly(text string) string {
	normalized := NormalizeDigits(text)
	var b strings.Builder
	for _, r := range normalized {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractNumber parses the first embedded run of digits in token as an int.
// A run too large for an int is an error, never a wrapped value.
func ExtractNumber(token string) (int, error) {
	digits := FirstDigitRun(NormalizeDigits(token))
	if digits == "" {
		return 0, &ErrNoDigits{Token: token}
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("number %q out of range: %w", digits, err)
	}
	return value, nil
}

// FirstDigitRun returns the first maximal run of ASCII digits in text.
func FirstDigitRun(text string) string {
	start := -1
	for i, r := range text {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return text[start:i]
		}
	}
	if start >= 0 {
		return text[start:]
	}
	return ""
}

func InitializeViper(configName string, configType string) {
	viper.SetConfigName(configName)
	if IsTestMode {
		fmt.Println("Running in Test mode...")
		viper.AddConfigPath("../") // Adjust the path for test environment
	} else {
		viper.AddConfigPath("/app")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()
	viper.SetConfigType(configType)
	if viper.AllKeys() == nil {
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal("Error reading config file, ", err)
		}
	} else {
		if err := viper.MergeInConfig(); err != nil {
			log.Fatalf("Error reading config file 2, %s", err)
		}
	}
}
