package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameRegex = regexp.MustCompile(`^[\p{L}\s\-'\.]+$`)

type Name struct {
	value string
}

func NewName(value string) (Name, error) {
	normalized := strings.Join(strings.Fields(value), " ")

	if normalized == "" {
		return Name{}, fmt.Errorf("name is required")
	}
	if n := utf8.RuneCountInString(normalized); n < 2 {
		return Name{}, fmt.Errorf("name must be at least 2 characters long")
	} else if n > 100 {
		return Name{}, fmt.Errorf("name cannot exceed 100 characters")
	}
	if !nameRegex.MatchString(normalized) {
		return Name{}, fmt.Errorf("name contains invalid characters")
	}

	return Name{value: normalized}, nil
}

func (n Name) String() string {
	return n.value
}

// DisplayName title-cases each word, for greetings.
func (n Name) DisplayName() string {
	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(n.value))
}
