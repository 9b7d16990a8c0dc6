package domain

import (
	"errors"
	"fmt"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const DefaultTheme = ThemeLight

var ErrInvalidTheme = errors.New("invalid theme")

func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) Validate() error {
	switch t {
	case ThemeLight, ThemeDark:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTheme, string(t))
	}
}
