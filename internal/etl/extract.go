package etl

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"dataforge/internal/config"
	"dataforge/internal/datasource/file"
	csvparser "dataforge/internal/parser/csv"
	"dataforge/internal/table"
)

// source is the minimal data-source contract used by extraction. Satisfied
// by file.Local.
type source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Function variables used as test seams. In production these point at the
// local file source and the CSV parser; tests can override them.
var (
	openSourceFn = func(path string) source { return file.NewLocal(path) }

	parseFn = func(name string, r io.Reader) (*table.Table, int, error) {
		p := csvparser.NewParser(csvparser.Options{TrimSpace: true, NormalizeHeaders: true})
		return p.Parse(name, r)
	}
)

// Extract reads every configured source CSV into a typed table, concurrently
// (one task per file; no source depends on another). A missing file is
// recoverable: the table is skipped with a logged error and extraction
// continues for the rest.
func Extract(ctx context.Context, sources []config.TableSource) map[string]*table.Table {
	var (
		mu  sync.Mutex
		set = make(map[string]*table.Table, len(sources))
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			t, err := extractOne(ctx, src)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					log.Printf("extract: file not found for table=%s path=%s, skipping", src.TableName, src.FilePath)
					return nil
				}
				log.Printf("extract: table=%s path=%s err=%v, skipping", src.TableName, src.FilePath, err)
				return nil
			}
			mu.Lock()
			set[src.TableName] = t
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return set
}

func extractOne(ctx context.Context, src config.TableSource) (*table.Table, error) {
	rc, err := openSourceFn(src.FilePath).Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, skipped, err := parseFn(src.TableName, rc)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Printf("extract: table=%s skipped_rows=%d (field count mismatch)", src.TableName, skipped)
	}
	log.Printf("extract: table=%s rows=%d cols=%d", src.TableName, t.NumRows(), len(t.Columns))
	return t, nil
}
