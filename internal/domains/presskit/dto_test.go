package presskit

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validContent() Content {
	return Content{
		Biography: "Twenty years behind the decks across three continents.",
		Genre:     []string{"techno"},
		ContactInfo: ContactInfo{
			BookingEmail: "booking@example.com",
		},
	}
}

func validCreate() CreateRequest {
	return CreateRequest{
		Title:        "Summer Tour Presskit",
		ArtistName:   "DJ Shadow",
		TemplateType: TemplateElectronic,
		ContentData:  validContent(),
	}
}

func TestCreateRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRequest)
		field  string
	}{
		{"valid request", func(r *CreateRequest) {}, ""},
		{"missing title", func(r *CreateRequest) { r.Title = "" }, "title"},
		{"title too long", func(r *CreateRequest) { r.Title = strings.Repeat("a", 201) }, "title"},
		{"missing artist name", func(r *CreateRequest) { r.ArtistName = "" }, "artist_name"},
		{"invalid template type", func(r *CreateRequest) { r.TemplateType = "vaporwave" }, "template_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)

			err := req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			verrs, ok := err.(validation.Errors)
			require.True(t, ok, "expected validation.Errors, got %T", err)
			assert.Contains(t, verrs, tt.field)
		})
	}
}

func TestCreateRequestNormalizeDefaultsTemplateType(t *testing.T) {
	req := CreateRequest{Title: "  x  ", ArtistName: " y ", ContentData: validContent()}

	req.Normalize()

	assert.Equal(t, TemplateBasic, req.TemplateType)
	assert.Equal(t, "x", req.Title)
	assert.Equal(t, "y", req.ArtistName)
}

func TestContentValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Content)
		field   string
		message string
	}{
		{
			name:   "valid content",
			mutate: func(c *Content) {},
		},
		{
			name:    "biography too short",
			mutate:  func(c *Content) { c.Biography = "too short" },
			field:   "biography",
			message: "Biografía muy corta",
		},
		{
			name:    "biography too long",
			mutate:  func(c *Content) { c.Biography = strings.Repeat("a", 5001) },
			field:   "biography",
			message: "Biografía muy larga",
		},
		{
			name:    "no genres",
			mutate:  func(c *Content) { c.Genre = nil },
			field:   "genre",
			message: "Debe especificar al menos un género",
		},
		{
			name:    "bad profile photo url",
			mutate:  func(c *Content) { c.ProfilePhoto = strPtr("not a url") },
			field:   "profile_photo",
			message: "URL de foto de perfil inválida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := validContent()
			tt.mutate(&content)

			err := content.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			verrs, ok := err.(validation.Errors)
			require.True(t, ok)
			require.Contains(t, verrs, tt.field)
			assert.Equal(t, tt.message, verrs[tt.field].Error())
		})
	}
}

func TestContentValidateNestedContactInfo(t *testing.T) {
	content := validContent()
	content.ContactInfo.BookingEmail = "not-an-email"

	err := content.Validate()
	require.Error(t, err)

	verrs, ok := err.(validation.Errors)
	require.True(t, ok)
	require.Contains(t, verrs, "contact_info")

	nested, ok := verrs["contact_info"].(validation.Errors)
	require.True(t, ok)
	assert.Equal(t, "Email de booking inválido", nested["booking_email"].Error())
}

func TestCreateRequestValidatesContentInline(t *testing.T) {
	req := validCreate()
	req.ContentData.Biography = "short"

	err := req.Validate()
	require.Error(t, err)

	verrs, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, verrs, "content_data")
}

func TestUpdateRequestIsEmpty(t *testing.T) {
	assert.True(t, UpdateRequest{}.IsEmpty())

	content := validContent()
	assert.False(t, UpdateRequest{ContentData: &content}.IsEmpty())
	assert.False(t, UpdateRequest{Title: strPtr("t")}.IsEmpty())
}

func TestUpdateRequestNormalizeDropsBlankFields(t *testing.T) {
	req := UpdateRequest{Title: strPtr("   "), ArtistName: strPtr("  DJ  ")}

	req.Normalize()

	assert.Nil(t, req.Title)
	require.NotNil(t, req.ArtistName)
	assert.Equal(t, "DJ", *req.ArtistName)
}

func TestIsPubliclyVisible(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		isPublic bool
		want     bool
	}{
		{"published and public", StatusPublished, true, true},
		{"draft is never visible", StatusDraft, true, false},
		{"published but withdrawn", StatusPublished, false, false},
		{"archived is never visible", StatusArchived, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Presskit{Status: tt.status, IsPublic: tt.isPublic}
			assert.Equal(t, tt.want, p.IsPubliclyVisible())
		})
	}
}
