package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dehashizia/ReadMeMore-sub000/internal/book"
	"github.com/dehashizia/ReadMeMore-sub000/internal/platform/googlebooks"

	"github.com/google/uuid"
)

// Service resolves search terms and ISBNs to book records, preferring
// local rows and importing provider results for future hits.
type Service struct {
	repo        Repository
	provider    Provider
	locales     []string
	searchLimit int
}

func NewService(repo Repository, provider Provider) *Service {
	return &Service{
		repo:        repo,
		provider:    provider,
		locales:     []string{"fr", "en"},
		searchLimit: 20,
	}
}

// SearchByTitle resolves a free-text title query. Local matches
// short-circuit: the provider is only consulted when the store has none.
func (s *Service) SearchByTitle(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	local, err := s.repo.SearchByTitle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search local: %w", err)
	}
	if len(local) > 0 {
		results := make([]Result, len(local))
		for i, b := range local {
			results[i] = Result{Book: b, Source: SourceDatabase}
		}
		return results, nil
	}

	volumes, err := s.fanOutSearch(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(volumes))
	for _, v := range volumes {
		res, err := s.resolveVolume(ctx, v, "")
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// fanOutSearch queries the provider once per locale in parallel and
// merges the result lists, deduplicating by volume ID. Merge is a plain
// overwrite: the last-seen volume for an ID wins.
func (s *Service) fanOutSearch(ctx context.Context, query string) ([]googlebooks.Volume, error) {
	perLocale := make([][]googlebooks.Volume, len(s.locales))
	errs := make([]error, len(s.locales))

	var wg sync.WaitGroup
	for i, locale := range s.locales {
		wg.Add(1)
		go func(i int, locale string) {
			defer wg.Done()
			perLocale[i], errs[i] = s.provider.SearchVolumes(ctx, query, locale, s.searchLimit)
		}(i, locale)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("provider search: %w", err)
		}
	}

	order := make([]string, 0)
	byID := make(map[string]googlebooks.Volume)
	for _, list := range perLocale {
		for _, v := range list {
			if _, seen := byID[v.ID]; !seen {
				order = append(order, v.ID)
			}
			byID[v.ID] = v
		}
	}

	merged := make([]googlebooks.Volume, len(order))
	for i, id := range order {
		merged[i] = byID[id]
	}
	return merged, nil
}

// ResolveByISBN resolves a single ISBN, local-first, one provider round
// trip on a miss.
func (s *Service) ResolveByISBN(ctx context.Context, isbn string) (Result, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return Result{}, ErrInvalidQuery
	}

	existing, err := s.repo.GetByISBN(ctx, isbn)
	if err == nil {
		return Result{Book: existing, Source: SourceDatabase}, nil
	}
	if !errors.Is(err, book.ErrNotFound) {
		return Result{}, fmt.Errorf("lookup isbn: %w", err)
	}

	volumes, err := s.provider.SearchByISBN(ctx, isbn)
	if err != nil {
		return Result{}, fmt.Errorf("provider isbn lookup: %w", err)
	}
	if len(volumes) == 0 {
		return Result{}, ErrNotFound
	}

	return s.resolveVolume(ctx, volumes[0], isbn)
}

// resolveVolume turns one provider volume into a Result, creating the
// category row and, when the volume carries an identifier, persisting the
// book. fallbackISBN fills in when the volume itself reports none.
func (s *Service) resolveVolume(ctx context.Context, v googlebooks.Volume, fallbackISBN string) (Result, error) {
	categoryName := UncategorizedName
	if len(v.VolumeInfo.Categories) > 0 {
		categoryName = v.VolumeInfo.Categories[0]
	}
	cat, err := s.repo.UpsertCategory(ctx, categoryName)
	if err != nil {
		return Result{}, fmt.Errorf("upsert category %q: %w", categoryName, err)
	}

	isbn := v.ISBN13()
	if isbn == "" {
		isbn = fallbackISBN
	}

	// No identifier means no stable dedupe key: return a transient record
	// without persisting it.
	if isbn == "" {
		return Result{Book: bookFromVolume(v, cat, ""), Source: SourceUnknown}, nil
	}

	existing, err := s.repo.GetByISBN(ctx, isbn)
	if err == nil {
		return Result{Book: existing, Source: SourceDatabase}, nil
	}
	if !errors.Is(err, book.ErrNotFound) {
		return Result{}, fmt.Errorf("lookup isbn: %w", err)
	}

	imported := bookFromVolume(v, cat, isbn)
	imported.Barcode = uuid.NewString()
	if err := s.repo.Insert(ctx, &imported); err != nil {
		// A concurrent request imported the same ISBN first; their row wins.
		if errors.Is(err, errDuplicateISBN) {
			winner, ferr := s.repo.GetByISBN(ctx, isbn)
			if ferr != nil {
				return Result{}, fmt.Errorf("refetch after duplicate insert: %w", ferr)
			}
			return Result{Book: winner, Source: SourceDatabase}, nil
		}
		return Result{}, fmt.Errorf("insert imported book: %w", err)
	}

	return Result{Book: imported, Source: SourceProvider}, nil
}

func bookFromVolume(v googlebooks.Volume, cat Category, isbn string) book.Book {
	info := v.VolumeInfo
	b := book.Book{
		Title:         info.Title,
		Authors:       info.Authors,
		CategoryID:    cat.ID,
		CategoryName:  cat.Name,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		Language:      info.Language,
		ThumbnailURL:  info.ImageLinks.Thumbnail,
		ISBN:          isbn,
	}
	if info.PageCount > 0 {
		pages := info.PageCount
		b.PageCount = &pages
	}
	return b
}
