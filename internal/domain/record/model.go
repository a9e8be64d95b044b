package record

import "time"

// Record is one vinyl release in a user's collection.
type Record struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Artist     string    `json:"artist"`
	Album      string    `json:"album"`
	Year       *int      `json:"year"`
	Barcode    string    `json:"barcode"`
	Genres     []string  `json:"genres"`
	Styles     []string  `json:"styles"`
	Musicians  []string  `json:"musicians"`
	MasterURL  *string   `json:"master_url"`
	ReleaseURL *string   `json:"release_url"`
	Notes      string    `json:"notes"`
	AddedAt    time.Time `json:"added_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Data is the client-supplied part of a record. Nil pointers are absent fields.
type Data struct {
	Artist     *string
	Album      *string
	Year       *int
	Barcode    *string
	Genres     []string
	Styles     []string
	Musicians  []string
	MasterURL  *string
	ReleaseURL *string
	Notes      *string
}

func (d Data) toRecord(userID string, now time.Time) *Record {
	return &Record{
		UserID:     userID,
		Artist:     deref(d.Artist),
		Album:      deref(d.Album),
		Year:       d.Year,
		Barcode:    deref(d.Barcode),
		Genres:     orEmpty(d.Genres),
		Styles:     orEmpty(d.Styles),
		Musicians:  orEmpty(d.Musicians),
		MasterURL:  d.MasterURL,
		ReleaseURL: d.ReleaseURL,
		Notes:      deref(d.Notes),
		AddedAt:    now,
		UpdatedAt:  now,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
