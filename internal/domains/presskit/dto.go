package presskit

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validate checks the structured payload. Nested errors surface under
// their own field paths (e.g. content_data.biography).
func (c Content) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Biography,
			validation.Required.Error("Biografía requerida"),
			validation.RuneLength(10, 0).Error("Biografía muy corta"),
			validation.RuneLength(0, 5000).Error("Biografía muy larga"),
		),
		validation.Field(&c.Genre,
			validation.Required.Error("Debe especificar al menos un género"),
			validation.Length(1, 0).Error("Debe especificar al menos un género"),
		),
		validation.Field(&c.ProfilePhoto,
			is.URL.Error("URL de foto de perfil inválida"),
		),
		validation.Field(&c.PressPhotos,
			validation.Each(is.URL.Error("URL de foto inválida")),
		),
		validation.Field(&c.SocialMedia,
			validation.By(validateSocialURLs),
		),
		validation.Field(&c.ContactInfo),
	)
}

func (c ContactInfo) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BookingEmail,
			validation.Required.Error("Email de booking requerido"),
			is.Email.Error("Email de booking inválido"),
		),
		validation.Field(&c.PressEmail,
			is.Email.Error("Email de prensa inválido"),
		),
	)
}

func validateSocialURLs(value interface{}) error {
	links, ok := value.(map[string]string)
	if !ok || links == nil {
		return nil
	}

	errs := validation.Errors{}
	for network, link := range links {
		if err := validation.Validate(link, is.URL.Error("URL de red social inválida")); err != nil {
			errs[network] = err
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// REQUEST DTOs
// ========================================

type CreateRequest struct {
	Title        string       `json:"title" binding:"required"`
	ArtistName   string       `json:"artist_name" binding:"required"`
	TemplateType TemplateType `json:"template_type"`
	ContentData  Content      `json:"content_data"`
}

func (r *CreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.ArtistName = strings.TrimSpace(r.ArtistName)
	if r.TemplateType == "" {
		r.TemplateType = TemplateBasic
	}
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Título requerido"),
			validation.RuneLength(0, 200).Error("Título muy largo"),
		),
		validation.Field(&r.ArtistName,
			validation.Required.Error("Nombre de artista requerido"),
			validation.RuneLength(0, 100).Error("Nombre muy largo"),
		),
		validation.Field(&r.TemplateType,
			validation.Required,
			validation.In(TemplateBasic, TemplateElectronic, TemplateBand, TemplateSolo).
				Error("Tipo de plantilla inválido"),
		),
		validation.Field(&r.ContentData),
	)
}

// UpdateRequest is a partial patch: nil fields stay untouched.
type UpdateRequest struct {
	Title        *string       `json:"title,omitempty"`
	ArtistName   *string       `json:"artist_name,omitempty"`
	TemplateType *TemplateType `json:"template_type,omitempty"`
	ContentData  *Content      `json:"content_data,omitempty"`
}

func (r *UpdateRequest) Normalize() {
	r.Title = trimPtr(r.Title)
	r.ArtistName = trimPtr(r.ArtistName)
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.RuneLength(1, 0).Error("Título requerido"),
			validation.RuneLength(0, 200).Error("Título muy largo"),
		),
		validation.Field(&r.ArtistName,
			validation.RuneLength(1, 0).Error("Nombre de artista requerido"),
			validation.RuneLength(0, 100).Error("Nombre muy largo"),
		),
		validation.Field(&r.TemplateType,
			validation.In(TemplateBasic, TemplateElectronic, TemplateBand, TemplateSolo).
				Error("Tipo de plantilla inválido"),
		),
		validation.Field(&r.ContentData),
	)
}

func (r UpdateRequest) IsEmpty() bool {
	return r.Title == nil && r.ArtistName == nil && r.TemplateType == nil && r.ContentData == nil
}

// StatsDTO is the owner-facing analytics read model.
type StatsDTO struct {
	ViewCount     int `json:"view_count"`
	DownloadCount int `json:"download_count"`
	ShareCount    int `json:"share_count"`
}

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
