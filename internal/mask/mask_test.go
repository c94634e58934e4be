package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrwmiller/myvault/internal/record"
)

func TestSensitive(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"password", true},
		{"PASSWORD", true},
		{"root_password", true},
		{"apitoken", true},
		{"Token", true},
		{"secret", true},
		{"ssh_key", true},
		{"apikey", true},
		{"aws_credential", true},
		{"property", false},
		{"username", false},
		{"notes", false},
		{"url", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sensitive(tt.name), "Sensitive(%q)", tt.name)
	}
}

func TestRenderMasksSensitiveFields(t *testing.T) {
	rec := record.New()
	rec.Set("property", record.String("x"))
	rec.Set("username", record.String("user@domain.com"))
	rec.Set("password", record.String("secret123"))

	fields := Render(rec, false)
	require.Len(t, fields, 3)

	assert.Equal(t, Field{Name: "property", Value: "x"}, fields[0])
	assert.Equal(t, Field{Name: "username", Value: "user@domain.com"}, fields[1])
	assert.Equal(t, Field{Name: "password", Value: Placeholder}, fields[2])

	// Fixed-width mask regardless of the original value length.
	assert.NotEqual(t, "secret123", fields[2].Value)
	longRec := record.New()
	longRec.Set("property", record.String("x"))
	longRec.Set("password", record.String("a-very-long-password-indeed"))
	assert.Equal(t, Placeholder, Render(longRec, false)[1].Value)
}

func TestRenderReveal(t *testing.T) {
	rec := record.New()
	rec.Set("property", record.String("x"))
	rec.Set("password", record.String("secret123"))

	fields := Render(rec, true)
	require.Len(t, fields, 2)
	assert.Equal(t, "secret123", fields[1].Value)
}

func TestRenderPreservesFieldOrder(t *testing.T) {
	rec := record.New()
	rec.Set("zeta", record.String("z"))
	rec.Set("property", record.String("x"))
	rec.Set("alpha", record.String("a"))

	fields := Render(rec, false)
	assert.Equal(t, "zeta", fields[0].Name)
	assert.Equal(t, "property", fields[1].Name)
	assert.Equal(t, "alpha", fields[2].Name)
}
