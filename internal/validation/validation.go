package validation

import (
	"errors"
	"strings"
	"unicode/utf8"

	"kwtaxonomy/internal/models"
)

// Record precondition violations.
var (
	ErrEmptyKeyword    = errors.New("keyword is required")
	ErrNegativeVolume  = errors.New("search volume must not be negative")
	ErrNegativeCPC     = errors.New("cpc must not be negative")
	ErrSourceTooLong   = errors.New("source must be at most 100 characters")
	ErrCategoryTooLong = errors.New("category must be at most 200 characters")
)

// Column limits of the keyword_records table.
const (
	MaxSourceLength   = 100
	MaxCategoryLength = 200
)

// ValidateKeyword checks that a keyword is non-empty after trimming.
func ValidateKeyword(keyword string) bool {
	return strings.TrimSpace(keyword) != ""
}

// ValidateRecord checks a keyword record before it enters the pipeline.
func ValidateRecord(r models.KeywordRecord) error {
	if !ValidateKeyword(r.Keyword) {
		return ErrEmptyKeyword
	}
	if r.SearchVolume != nil && *r.SearchVolume < 0 {
		return ErrNegativeVolume
	}
	if r.CPC.Valid && r.CPC.Decimal.IsNegative() {
		return ErrNegativeCPC
	}
	if utf8.RuneCountInString(r.Source) > MaxSourceLength {
		return ErrSourceTooLong
	}
	if utf8.RuneCountInString(r.Category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	return nil
}

// ValidateProjectName checks a project name: required, at most 200 characters.
func ValidateProjectName(name string) (bool, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, "project name is required"
	}
	if len([]rune(name)) > 200 {
		return false, "project name must be at most 200 characters"
	}
	return true, ""
}
