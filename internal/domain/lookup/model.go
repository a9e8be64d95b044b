package lookup

import (
	"context"

	"github.com/goccy/go-json"
)

// NotFoundMessage is the envelope message for a barcode without a match.
const NotFoundMessage = "No results found"

// Searcher resolves a barcode against the metadata provider.
// A nil match with a nil error means the provider knows no release for the barcode.
type Searcher interface {
	Search(ctx context.Context, barcode string) (*RawMatch, error)
}

// RawMatch is the provider match before normalization. Nil pointers and empty
// strings mean the provider did not return the field.
type RawMatch struct {
	Title       string
	Artist      string
	Album       string
	Year        *int
	Format      []string
	Label       *string
	URI         *string
	MasterURL   *string
	Genres      []string
	Styles      []string
	Musicians   []string
	IsMaster    *bool
	ReleaseYear *int
	ReleaseURL  *string
}

// Envelope is the /lookup response body.
type Envelope struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message,omitempty"`
	Title       *string  `json:"title"`
	Year        *int     `json:"year"`
	Format      string   `json:"format"`
	Label       *string  `json:"label"`
	WebURL      *string  `json:"web_url"`
	MasterURL   *string  `json:"master_url"`
	Genres      []string `json:"genres"`
	Styles      []string `json:"styles"`
	IsMaster    bool     `json:"is_master"`
	ReleaseYear *int     `json:"release_year"`
	ReleaseURL  *string  `json:"release_url"`
	Musicians   []string `json:"musicians"`
}

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MarshalJSON keeps failure envelopes down to success and message.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if !e.Success {
		return json.Marshal(failure{Success: false, Message: e.Message})
	}

	type match Envelope
	return json.Marshal(match(e))
}

// Failed builds a failure envelope.
func Failed(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
