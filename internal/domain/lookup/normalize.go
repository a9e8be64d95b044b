package lookup

import "strings"

// Normalize maps a provider match onto the response envelope.
func Normalize(raw *RawMatch) Envelope {
	if raw == nil {
		return Failed(NotFoundMessage)
	}

	return Envelope{
		Success:     true,
		Title:       title(raw),
		Year:        raw.Year,
		Format:      strings.Join(raw.Format, ", "),
		Label:       raw.Label,
		WebURL:      raw.URI,
		MasterURL:   raw.MasterURL,
		Genres:      raw.Genres,
		Styles:      raw.Styles,
		IsMaster:    raw.IsMaster != nil && *raw.IsMaster,
		ReleaseYear: raw.ReleaseYear,
		ReleaseURL:  raw.ReleaseURL,
		Musicians:   raw.Musicians,
	}
}

func title(raw *RawMatch) *string {
	if raw.Artist != "" && raw.Album != "" {
		t := raw.Artist + " - " + raw.Album
		return &t
	}

	if raw.Title != "" {
		t := raw.Title
		return &t
	}

	return nil
}
