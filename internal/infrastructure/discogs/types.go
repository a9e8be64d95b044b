package discogs

import "fmt"

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Year     string   `json:"year"`
	Format   []string `json:"format"`
	Label    []string `json:"label"`
	Genre    []string `json:"genre"`
	Style    []string `json:"style"`
	URI      string   `json:"uri"`
	MasterID int      `json:"master_id"`
}

type release struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Year         int      `json:"year"`
	URI          string   `json:"uri"`
	MasterID     int      `json:"master_id"`
	Artists      []artist `json:"artists"`
	ExtraArtists []artist `json:"extraartists"`
	Labels       []label  `json:"labels"`
	Genres       []string `json:"genres"`
	Styles       []string `json:"styles"`
}

type master struct {
	ID   int    `json:"id"`
	Year int    `json:"year"`
	URI  string `json:"uri"`
}

type artist struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type label struct {
	Name string `json:"name"`
}

// StatusError is a non-200 answer from the Discogs API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("discogs: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("discogs: unexpected status %d: %s", e.Code, e.Body)
}
