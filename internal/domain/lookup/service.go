package lookup

import (
	"context"
	"net/http"

	"golang.org/x/exp/slog"

	"vinylscan/internal/infrastructure/metrics"
	"vinylscan/internal/utils/logger"
)

type Servicer interface {
	Lookup(ctx context.Context, barcode string) (Envelope, int)
}

type Service struct {
	searcher Searcher
	log      *slog.Logger
}

func NewService(searcher Searcher, log *slog.Logger) *Service {
	return &Service{
		searcher: searcher,
		log:      log.With(slog.String("component", "lookup_service")),
	}
}

// Lookup searches the barcode and returns the envelope with its HTTP status.
// Provider errors are 500; a missing match is a 200 failure envelope.
func (s *Service) Lookup(ctx context.Context, barcode string) (Envelope, int) {
	raw, err := s.searcher.Search(ctx, barcode)
	if err != nil {
		s.log.Error("barcode search failed", slog.String("barcode", barcode), logger.Err(err))
		metrics.LookupsTotal.WithLabelValues(metrics.LookupError).Inc()
		return Failed(err.Error()), http.StatusInternalServerError
	}

	if raw == nil {
		s.log.Debug("no release for barcode", slog.String("barcode", barcode))
		metrics.LookupsTotal.WithLabelValues(metrics.LookupNotFound).Inc()
		return Normalize(nil), http.StatusOK
	}

	metrics.LookupsTotal.WithLabelValues(metrics.LookupFound).Inc()
	return Normalize(raw), http.StatusOK
}
