package models_test

import (
	"testing"

	"bhansa/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"main course":   "Main Course",
		"Main Course":   "Main Course",
		"MAIN COURSE":   "Main Course",
		"mAiN cOuRsE":   "Main Course",
		"appetizers":    "Appetizers",
		"APPETIZERS":    "Appetizers",
		"  desserts  ":  "Desserts",
		"cold  drinks":  "Cold Drinks", // collapses repeated whitespace
		"momo":          "Momo",
		"":              "",
		"   ":           "",
	}
	for input, want := range cases {
		assert.Equal(t, want, models.NormalizeCategory(input), "input %q", input)
	}
}

// Variants that differ only in whitespace-delimited casing must converge on
// one string so menu grouping is stable.
func TestNormalizeCategory_Idempotent(t *testing.T) {
	variants := []string{"set meals", "Set Meals", "SET MEALS", "set MEALS"}
	for _, v := range variants {
		normalized := models.NormalizeCategory(v)
		assert.Equal(t, "Set Meals", normalized)
		assert.Equal(t, normalized, models.NormalizeCategory(normalized))
	}
}
