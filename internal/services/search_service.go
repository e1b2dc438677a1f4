// Package services – SearchService
//
// Implements favorite search by item name plus the "most searched" ranking.
// Every search bumps a per-term counter; displayed terms are title-cased for
// presentation while storage stays lowercase.
package services

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/repo"
)

// SearchService queries favorites by item name and tracks term popularity.
type SearchService struct {
	DB *gorm.DB
	// TermLocale drives title casing of terms returned by MostSearched;
	// language.Und falls back to English.
	TermLocale language.Tag
}

// Search returns favorites whose item name contains term
// (case-insensitively), newest first, and records the search for the
// popularity ranking. Stat bookkeeping failures do not fail the search.
func (s *SearchService) Search(ctx context.Context, term string, limit, offset int) ([]domain.Favorite, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.NewValidationError("Search term cannot be empty", nil)
	}
	favs, err := repo.SearchFavorites(ctx, s.DB, term, limit, offset)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to search favorites",
			map[string]any{"term": term}, err)
	}
	// Best effort: a lost count is acceptable, a failed search is not.
	_ = repo.BumpSearchStat(ctx, s.DB, strings.ToLower(term))
	return favs, nil
}

// MostSearched returns the most popular search terms, highest count first,
// title-cased for display.
func (s *SearchService) MostSearched(ctx context.Context, limit int) ([]string, error) {
	stats, err := repo.TopSearchTerms(ctx, s.DB, limit)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to retrieve search statistics", nil, err)
	}
	caser := cases.Title(s.termLocale())
	out := make([]string, 0, len(stats))
	for _, st := range stats {
		out = append(out, caser.String(st.Term))
	}
	return out, nil
}

func (s *SearchService) termLocale() language.Tag {
	if s.TermLocale == language.Und {
		return language.English
	}
	return s.TermLocale
}
