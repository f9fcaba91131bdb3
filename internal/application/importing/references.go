package importing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source names a reference collection.
type Source string

const (
	SourceUnits     Source = "units"
	SourcePartners  Source = "partners"
	SourceEmployees Source = "employees"
)

// Entry is the lookup projection of an existing entity.
type Entry struct {
	ID   string `json:"id"`
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

type Collection []Entry

func (c Collection) ByID(id string) (Entry, bool) {
	for _, entry := range c {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

// Lister is the reference collaborator for one source.
type Lister interface {
	ListAll(ctx context.Context) ([]Entry, error)
}

type ListerFunc func(ctx context.Context) ([]Entry, error)

func (f ListerFunc) ListAll(ctx context.Context) ([]Entry, error) {
	return f(ctx)
}

// References is the read-only snapshot of reference collections taken once at
// the start of an import session and discarded with it.
type References struct {
	collections map[Source]Collection
	LoadedAt    time.Time
}

func NewReferences(collections map[Source]Collection) *References {
	copied := make(map[Source]Collection, len(collections))
	for source, coll := range collections {
		copied[source] = append(Collection(nil), coll...)
	}
	return &References{collections: copied, LoadedAt: time.Now().UTC()}
}

func (r *References) Collection(source Source) Collection {
	if r == nil {
		return nil
	}
	return r.collections[source]
}

// LoadReferences fetches every requested source concurrently and waits for
// all of them. Any failure fails the whole load.
func LoadReferences(ctx context.Context, listers map[Source]Lister, sources []Source) (*References, error) {
	for _, source := range sources {
		if _, ok := listers[source]; !ok {
			return nil, fmt.Errorf("%w: no lister for %s", ErrLoadReferences, source)
		}
	}
	results := make([]Collection, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		lister := listers[source]
		g.Go(func() error {
			entries, err := lister.ListAll(gctx)
			if err != nil {
				return fmt.Errorf("list %s: %w", source, err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadReferences, err)
	}

	collections := make(map[Source]Collection, len(sources))
	for i, source := range sources {
		collections[source] = results[i]
	}
	return NewReferences(collections), nil
}
