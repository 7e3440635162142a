package user

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validSignUp() SignUpRequest {
	return SignUpRequest{
		Email:      "artist@example.com",
		Password:   "supersecret",
		ArtistName: "DJ Shadow",
	}
}

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	verrs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	require.Contains(t, verrs, field)
	return verrs[field].Error()
}

func TestSignUpRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignUpRequest)
		field   string
		message string
	}{
		{
			name:   "valid request",
			mutate: func(r *SignUpRequest) {},
		},
		{
			name:    "missing email",
			mutate:  func(r *SignUpRequest) { r.Email = "" },
			field:   "email",
			message: "Email requerido",
		},
		{
			name:    "malformed email",
			mutate:  func(r *SignUpRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: "Email inválido",
		},
		{
			name:    "missing password",
			mutate:  func(r *SignUpRequest) { r.Password = "" },
			field:   "password",
			message: "Contraseña requerida",
		},
		{
			name:    "password shorter than 8",
			mutate:  func(r *SignUpRequest) { r.Password = "short" },
			field:   "password",
			message: "La contraseña debe tener al menos 8 caracteres",
		},
		{
			name:    "artist name too short",
			mutate:  func(r *SignUpRequest) { r.ArtistName = "X" },
			field:   "artist_name",
			message: "Nombre de artista muy corto",
		},
		{
			name:    "artist name too long",
			mutate:  func(r *SignUpRequest) { r.ArtistName = strings.Repeat("a", 101) },
			field:   "artist_name",
			message: "Nombre de artista muy largo",
		},
		{
			name:    "full name too long",
			mutate:  func(r *SignUpRequest) { r.FullName = strPtr(strings.Repeat("a", 201)) },
			field:   "full_name",
			message: "Nombre completo muy largo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignUp()
			tt.mutate(&req)

			err := req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, fieldError(t, err, tt.field))
		})
	}
}

func TestSignUpRequestNormalizeTrims(t *testing.T) {
	req := SignUpRequest{
		Email:      "  artist@example.com  ",
		Password:   "supersecret",
		ArtistName: "  DJ Shadow  ",
		FullName:   strPtr("  John Doe  "),
	}

	req.Normalize()

	assert.Equal(t, "artist@example.com", req.Email)
	assert.Equal(t, "DJ Shadow", req.ArtistName)
	require.NotNil(t, req.FullName)
	assert.Equal(t, "John Doe", *req.FullName)
}

func TestSignUpRequestNormalizeDropsBlankOptional(t *testing.T) {
	req := validSignUp()
	req.FullName = strPtr("   ")

	req.Normalize()

	assert.Nil(t, req.FullName)
}

func TestUpdateProfileRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateProfileRequest
		field   string
		message string
	}{
		{
			name: "valid partial patch",
			req:  UpdateProfileRequest{ArtistName: strPtr("New Name")},
		},
		{
			name:    "artist name too short",
			req:     UpdateProfileRequest{ArtistName: strPtr("X")},
			field:   "artist_name",
			message: "Nombre de artista muy corto",
		},
		{
			name:    "bio too long",
			req:     UpdateProfileRequest{Bio: strPtr(strings.Repeat("a", 2001))},
			field:   "bio",
			message: "Biografía muy larga",
		},
		{
			name:    "invalid avatar url",
			req:     UpdateProfileRequest{AvatarURL: strPtr("not a url")},
			field:   "avatar_url",
			message: "URL de avatar inválida",
		},
		{
			name:    "invalid contact email",
			req:     UpdateProfileRequest{ContactEmail: strPtr("nope")},
			field:   "contact_email",
			message: "Email de contacto inválido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, fieldError(t, err, tt.field))
		})
	}
}

func TestUpdateProfileRequestNormalizeTrims(t *testing.T) {
	req := UpdateProfileRequest{ArtistName: strPtr("  New Name  ")}

	req.Normalize()

	require.NotNil(t, req.ArtistName)
	assert.Equal(t, "New Name", *req.ArtistName)
}

func TestUpdateProfileRequestIsEmpty(t *testing.T) {
	assert.True(t, UpdateProfileRequest{}.IsEmpty())
	assert.False(t, UpdateProfileRequest{Bio: strPtr("hi")}.IsEmpty())
	assert.False(t, UpdateProfileRequest{SocialMedia: map[string]string{}}.IsEmpty())
}

func TestValidateSocialLinks(t *testing.T) {
	t.Run("accepts known networks with valid urls", func(t *testing.T) {
		err := ValidateSocialLinks(map[string]string{
			"instagram": "https://instagram.com/artist",
			"spotify":   "https://open.spotify.com/artist/xyz",
		})
		assert.NoError(t, err)
	})

	t.Run("rejects unknown network", func(t *testing.T) {
		err := ValidateSocialLinks(map[string]string{
			"myspace": "https://myspace.com/artist",
		})
		require.Error(t, err)
		assert.Equal(t, "Red social no soportada", fieldError(t, err, "myspace"))
	})

	t.Run("rejects malformed url", func(t *testing.T) {
		err := ValidateSocialLinks(map[string]string{
			"instagram": "not a url",
		})
		require.Error(t, err)
		assert.Equal(t, "URL de red social inválida", fieldError(t, err, "instagram"))
	})

	t.Run("nil map passes", func(t *testing.T) {
		assert.NoError(t, ValidateSocialLinks(nil))
	})
}
