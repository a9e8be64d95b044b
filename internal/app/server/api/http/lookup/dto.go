package lookup

import "vinylscan/internal/domain/lookup"

type lookupInput struct {
	Barcode string `path:"barcode" doc:"EAN/UPC barcode printed on the sleeve"`
}

type lookupOutput struct {
	Status int
	Body   lookup.Envelope
}
