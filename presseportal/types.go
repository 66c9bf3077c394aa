package presseportal

import (
	"strings"
	"time"
)

// MediaType names a kind of story attachment
type MediaType string

const (
	// MediaImage is an image attachment
	MediaImage MediaType = "image"
	// MediaDocument is a document attachment
	MediaDocument MediaType = "document"
	// MediaAudio is an audio attachment
	MediaAudio MediaType = "audio"
	// MediaVideo is a video attachment
	MediaVideo MediaType = "video"
)

// mediaTypes is the order attachments are read from a story
var mediaTypes = []MediaType{MediaImage, MediaDocument, MediaAudio, MediaVideo}

// EntityType distinguishes companies from public service offices
type EntityType string

const (
	// EntityCompany is a company publishing press releases
	EntityCompany EntityType = "company"
	// EntityOffice is a public service office (police, fire brigade, authorities)
	EntityOffice EntityType = "office"
)

// Owner identifies the company or office a story was published by
type Owner struct {
	ID       string  `json:"id"`
	URL      string  `json:"url"`
	Name     string  `json:"name"`
	Homepage *string `json:"homepage,omitempty"`
}

// Attachment is the raw metadata of one media item, e.g. name, url, caption.
type Attachment map[string]any

// Media holds the attachments of a story per type. A nil slice means the
// story carried no attachments of that type.
type Media struct {
	Image    []Attachment `json:"image,omitempty"`
	Document []Attachment `json:"document,omitempty"`
	Audio    []Attachment `json:"audio,omitempty"`
	Video    []Attachment `json:"video,omitempty"`
}

// Get returns the attachments for the given type
func (m Media) Get(t MediaType) []Attachment {
	switch t {
	case MediaImage:
		return m.Image
	case MediaDocument:
		return m.Document
	case MediaAudio:
		return m.Audio
	case MediaVideo:
		return m.Video
	default:
		return nil
	}
}

// Types returns the attachment types present, in a fixed order
func (m Media) Types() []MediaType {
	var types []MediaType
	for _, t := range mediaTypes {
		if m.Get(t) != nil {
			types = append(types, t)
		}
	}
	return types
}

func (m *Media) set(t MediaType, attachments []Attachment) {
	switch t {
	case MediaImage:
		m.Image = attachments
	case MediaDocument:
		m.Document = attachments
	case MediaAudio:
		m.Audio = attachments
	case MediaVideo:
		m.Video = attachments
	}
}

// Story represents a press release.
//
// Optional fields are nil when the API response did not contain them.
// Exactly one of Body and Teaser is set, and exactly one of Company and Office.
type Story struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Published time.Time `json:"published"`
	Highlight string    `json:"highlight"`
	Short     string    `json:"short"`
	Body      *string   `json:"body,omitempty"`
	Teaser    *string   `json:"teaser,omitempty"`
	Language  *string   `json:"language,omitempty"`
	Ressort   *string   `json:"ressort,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
	Company   *Owner    `json:"company,omitempty"`
	Office    *Owner    `json:"office,omitempty"`
	Media     Media     `json:"media"`
}

// Text returns the full body, or the teaser for teaser queries
func (s *Story) Text() string {
	if s.Body != nil {
		return *s.Body
	}
	if s.Teaser != nil {
		return *s.Teaser
	}
	return ""
}

// Owner returns the publishing company or office and its entity type
func (s *Story) Owner() (*Owner, EntityType) {
	if s.Company != nil {
		return s.Company, EntityCompany
	}
	return s.Office, EntityOffice
}

// HasKeyword reports whether the story is tagged with keyword, ignoring case
func (s *Story) HasKeyword(keyword string) bool {
	for _, k := range s.Keywords {
		if strings.EqualFold(k, keyword) {
			return true
		}
	}
	return false
}

// Entity is a company or office returned by a search
type Entity struct {
	ID   string     `json:"id"`
	URL  string     `json:"url"`
	Name string     `json:"name"`
	Type EntityType `json:"type"`
}
