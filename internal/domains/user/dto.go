package user

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// socialNetworks is the fixed set of accepted social link keys.
var socialNetworks = map[string]bool{
	"instagram":  true,
	"twitter":    true,
	"tiktok":     true,
	"soundcloud": true,
	"spotify":    true,
	"youtube":    true,
}

// ========================================
// AUTH DTOs
// ========================================

type SignUpRequest struct {
	Email      string  `json:"email" binding:"required"`
	Password   string  `json:"password" binding:"required"`
	ArtistName string  `json:"artist_name" binding:"required"`
	FullName   *string `json:"full_name,omitempty"`
}

// Normalize trims surrounding whitespace from text fields. Absent
// optional fields stay absent, never coerced to "".
func (r *SignUpRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.ArtistName = strings.TrimSpace(r.ArtistName)
	r.FullName = trimPtr(r.FullName)
}

func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Email requerido"),
			is.Email.Error("Email inválido"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Contraseña requerida"),
			validation.RuneLength(8, 0).Error("La contraseña debe tener al menos 8 caracteres"),
		),
		validation.Field(&r.ArtistName,
			validation.Required.Error("Nombre de artista requerido"),
			validation.RuneLength(2, 0).Error("Nombre de artista muy corto"),
			validation.RuneLength(0, 100).Error("Nombre de artista muy largo"),
		),
		validation.Field(&r.FullName,
			validation.RuneLength(0, 200).Error("Nombre completo muy largo"),
		),
	)
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *SignInRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Email requerido"),
			is.Email.Error("Email inválido"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Contraseña requerida"),
		),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// SessionDTO mirrors the session object clients persist.
type SessionDTO struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// UserDTO is the public shape of the auth identity.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *AuthUser) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse is the {user, session} payload of sign-up/sign-in.
type AuthResponse struct {
	User    UserDTO    `json:"user"`
	Session SessionDTO `json:"session"`
}

// ========================================
// PROFILE DTOs
// ========================================

// UpdateProfileRequest is a partial patch: nil means "leave as is".
type UpdateProfileRequest struct {
	ArtistName   *string           `json:"artist_name,omitempty"`
	FullName     *string           `json:"full_name,omitempty"`
	Bio          *string           `json:"bio,omitempty"`
	AvatarURL    *string           `json:"avatar_url,omitempty"`
	ContactEmail *string           `json:"contact_email,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	Location     *string           `json:"location,omitempty"`
	SocialMedia  map[string]string `json:"social_media,omitempty"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.ArtistName = trimPtr(r.ArtistName)
	r.FullName = trimPtr(r.FullName)
	r.Bio = trimPtr(r.Bio)
	r.Location = trimPtr(r.Location)
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArtistName,
			validation.RuneLength(2, 0).Error("Nombre de artista muy corto"),
			validation.RuneLength(0, 100).Error("Nombre de artista muy largo"),
		),
		validation.Field(&r.FullName,
			validation.RuneLength(0, 200).Error("Nombre completo muy largo"),
		),
		validation.Field(&r.Bio,
			validation.RuneLength(0, 2000).Error("Biografía muy larga"),
		),
		validation.Field(&r.AvatarURL,
			is.URL.Error("URL de avatar inválida"),
		),
		validation.Field(&r.ContactEmail,
			is.Email.Error("Email de contacto inválido"),
		),
		validation.Field(&r.Phone,
			validation.RuneLength(0, 50).Error("Teléfono muy largo"),
		),
		validation.Field(&r.Location,
			validation.RuneLength(0, 200).Error("Ubicación muy larga"),
		),
		validation.Field(&r.SocialMedia,
			validation.By(ValidateSocialLinks),
		),
	)
}

// IsEmpty reports whether the patch touches nothing; an empty patch
// must be no-op safe.
func (r UpdateProfileRequest) IsEmpty() bool {
	return r.ArtistName == nil &&
		r.FullName == nil &&
		r.Bio == nil &&
		r.AvatarURL == nil &&
		r.ContactEmail == nil &&
		r.Phone == nil &&
		r.Location == nil &&
		r.SocialMedia == nil
}

// ValidateSocialLinks restricts keys to the known networks and
// requires every value to be a syntactically valid URL.
func ValidateSocialLinks(value interface{}) error {
	links, ok := value.(map[string]string)
	if !ok || links == nil {
		return nil
	}

	errs := validation.Errors{}
	for network, link := range links {
		if !socialNetworks[network] {
			errs[network] = validation.NewError("validation_social_network", "Red social no soportada")
			continue
		}
		if err := validation.Validate(link, is.URL.Error("URL de red social inválida")); err != nil {
			errs[network] = err
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// trimPtr trims a field and drops it entirely when the result is
// empty, so blank input behaves like an absent field.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
