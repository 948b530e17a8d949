package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng!Password", false},
		{"too short", "Sh0rt!pw", true},
		{"too long", strings.Repeat("Aa1!", 40), true},
		{"no uppercase", "weak1!password", true},
		{"no lowercase", "WEAK1!PASSWORD", true},
		{"no digit", "Weak!Password!", true},
		{"no special", "Weak1Password1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "blog_author", false},
		{"valid with hyphen", "blog-author", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 31), true},
		{"invalid characters", "blog author", true},
		{"leading underscore", "_author", true},
		{"trailing hyphen", "author-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateEmail("author@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@example.com"))
}

func TestValidateCategorySlug(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateCategorySlug("travel"))
	assert.NoError(t, ValidateCategorySlug("city-life-2024"))
	assert.Error(t, ValidateCategorySlug("Travel"))
	assert.Error(t, ValidateCategorySlug("-travel"))
	assert.Error(t, ValidateCategorySlug("travel-"))
	assert.Error(t, ValidateCategorySlug(""))
}
