package record

import "vinylscan/internal/domain/record"

// recordBody is the client payload for a new record. Keys outside this set
// (label, discogs_uri, user_id, ...) are accepted and ignored.
type recordBody struct {
	_          struct{} `json:"-" additionalProperties:"true"`
	Artist     *string  `json:"artist,omitempty" required:"false"`
	Album      *string  `json:"album,omitempty" required:"false"`
	Year       *int     `json:"year,omitempty" required:"false" nullable:"true"`
	Barcode    *string  `json:"barcode,omitempty" required:"false"`
	Genres     []string `json:"genres,omitempty" required:"false" nullable:"true"`
	Styles     []string `json:"styles,omitempty" required:"false" nullable:"true"`
	Musicians  []string `json:"musicians,omitempty" required:"false" nullable:"true"`
	MasterURL  *string  `json:"master_url,omitempty" required:"false" nullable:"true"`
	ReleaseURL *string  `json:"release_url,omitempty" required:"false" nullable:"true"`
	Notes      *string  `json:"notes,omitempty" required:"false" nullable:"true"`
}

func (b *recordBody) empty() bool {
	return b.Artist == nil && b.Album == nil && b.Year == nil && b.Barcode == nil &&
		b.Genres == nil && b.Styles == nil && b.Musicians == nil &&
		b.MasterURL == nil && b.ReleaseURL == nil && b.Notes == nil
}

func (b *recordBody) toData() record.Data {
	return record.Data{
		Artist:     b.Artist,
		Album:      b.Album,
		Year:       b.Year,
		Barcode:    b.Barcode,
		Genres:     b.Genres,
		Styles:     b.Styles,
		Musicians:  b.Musicians,
		MasterURL:  b.MasterURL,
		ReleaseURL: b.ReleaseURL,
		Notes:      b.Notes,
	}
}

type createInput struct {
	Body *recordBody `required:"false"`
}

type notesBody struct {
	_     struct{} `json:"-" additionalProperties:"true"`
	Notes *string  `json:"notes,omitempty" required:"false"`
}

type notesInput struct {
	ID   string     `path:"id"`
	Body *notesBody `required:"false"`
}

type deleteInput struct {
	ID string `path:"id"`
}

type listResponse struct {
	Success bool            `json:"success"`
	Records []record.Record `json:"records"`
}

type listOutput struct {
	Body listResponse
}

type recordResponse struct {
	Success bool           `json:"success"`
	Record  *record.Record `json:"record"`
}

type recordOutput struct {
	Body recordResponse
}

type deleteOutput struct {
	Body struct {
		Success bool `json:"success"`
	}
}
