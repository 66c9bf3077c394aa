package presseportal

import (
	"slices"
	"strings"
)

// Allowlists holds the values the API accepts for enum-like parameters.
// A Client keeps its own copy; none of the lists are modified after construction.
type Allowlists struct {
	MediaTypes              []string
	PublicServiceMediaTypes []string
	Regions                 []string
	Topics                  []string
	Keywords                []string
	NewsCategories          []string
}

// DefaultAllowlists returns the allow-lists published in the presseportal API documentation.
func DefaultAllowlists() Allowlists {
	return Allowlists{
		MediaTypes:              []string{"image", "document", "audio", "video"},
		PublicServiceMediaTypes: []string{"image", "document"},
		Regions: []string{
			"bw", "by", "be", "bb", "hb", "hh", "he", "mv",
			"ni", "nw", "rp", "sl", "sn", "st", "sh", "th",
		},
		Topics: []string{
			"auto-verkehr", "bau-immobilien", "fashion-beauty", "finanzen",
			"gesundheit-medizin", "handel", "medien-kultur", "netzwelt",
			"panorama", "politik", "presseschau", "soziales", "sport",
			"tourismus-urlaub", "umwelt", "wirtschaft", "wissen-bildung",
		},
		Keywords: []string{
			"Arbeit", "Auto", "Bau", "Bildung", "Computer", "Energie",
			"Ernährung", "Familie", "Feuerwehr", "Finanzen", "Forschung",
			"Gesundheit", "Handel", "Immobilien", "Internet", "Kinder",
			"Klimaschutz", "Kriminalität", "Kultur", "Logistik", "Medien",
			"Mode", "Politik", "Polizei", "Reisen", "Senioren", "Soziales",
			"Sport", "Technik", "Telekommunikation", "Tiere", "Tourismus",
			"Umwelt", "Verkehr", "Wirtschaft", "Wissenschaft",
		},
		NewsCategories: []string{
			"adhoc", "directorsdealings", "votingrights", "ir-news",
			"financialreports", "tender", "capitalmarket",
		},
	}
}

func (a Allowlists) clone() Allowlists {
	return Allowlists{
		MediaTypes:              slices.Clone(a.MediaTypes),
		PublicServiceMediaTypes: slices.Clone(a.PublicServiceMediaTypes),
		Regions:                 slices.Clone(a.Regions),
		Topics:                  slices.Clone(a.Topics),
		Keywords:                slices.Clone(a.Keywords),
		NewsCategories:          slices.Clone(a.NewsCategories),
	}
}

// checkMedia validates an optional media type against allowed.
// An empty media means no media filter and always passes.
func checkMedia(media string, allowed []string) error {
	if media == "" {
		return nil
	}
	if !slices.Contains(allowed, strings.ToLower(media)) {
		return &ArgumentError{Kind: KindMedia, Value: media, Allowed: allowed}
	}
	return nil
}

func checkMember(kind ArgumentKind, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return &ArgumentError{Kind: kind, Value: value, Allowed: allowed}
	}
	return nil
}
