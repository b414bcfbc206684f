// Package gcpstore binds the pagination index to its GCP backends: the
// BigQuery export of the puzzle collection as the document source, and
// Firestore for the persisted index documents.
package gcpstore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"crosswarped.com/xword/pkg/pagination"
)

// BigQuerySource queries the puzzle export table for documents published
// after a given timestamp. It implements pagination.DocumentSource.
type BigQuerySource struct {
	client *bigquery.Client
	table  string
	log    *zap.Logger
}

// NewBigQuerySource creates a source over the given fully qualified
// table (project.dataset.table).
func NewBigQuerySource(ctx context.Context, projectID, table string, log *zap.Logger) (*BigQuerySource, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BigQuerySource{client: client, table: table, log: log}, nil
}

// Close releases the underlying BigQuery client.
func (s *BigQuerySource) Close() error {
	return s.client.Close()
}

// NewerThan returns publication metadata for every document in the
// dimension published strictly after since, newest first. Rows that
// fail to decode are logged and skipped; a puzzle someone saved in a
// broken shape must not take the whole listing down with it.
func (s *BigQuerySource) NewerThan(ctx context.Context, dimension string, since time.Time) ([]pagination.DocMeta, error) {
	q := s.client.Query(fmt.Sprintf(
		"SELECT id, published_at, is_private, private_until FROM `%s` "+
			"WHERE dimension = @dimension AND published_at > @since "+
			"ORDER BY published_at DESC", s.table))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "dimension", Value: dimension},
		{Name: "since", Value: since},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var docs []pagination.DocMeta
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		doc, err := docFromRow(row)
		if err != nil {
			s.log.Warn("skipping unreadable puzzle row",
				zap.String("dimension", dimension), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// docFromRow maps one result row (id, published_at, is_private,
// private_until) to publication metadata.
func docFromRow(row []bigquery.Value) (pagination.DocMeta, error) {
	if len(row) != 4 {
		return pagination.DocMeta{}, fmt.Errorf("got %d columns, want 4", len(row))
	}
	id, ok := row[0].(string)
	if !ok || id == "" {
		return pagination.DocMeta{}, fmt.Errorf("row[0] is not a document id: %v", row[0])
	}
	publishedAt, ok := row[1].(time.Time)
	if !ok {
		return pagination.DocMeta{}, fmt.Errorf("row[1] is not a timestamp: %v", row[1])
	}
	doc := pagination.DocMeta{ID: id, PublishedAt: publishedAt}

	// Both privacy columns are nullable.
	if row[2] != nil {
		private, ok := row[2].(bool)
		if !ok {
			return pagination.DocMeta{}, fmt.Errorf("row[2] is not a bool: %v", row[2])
		}
		doc.Private = private
	}
	if row[3] != nil {
		until, ok := row[3].(time.Time)
		if !ok {
			return pagination.DocMeta{}, fmt.Errorf("row[3] is not a timestamp: %v", row[3])
		}
		doc.PrivateUntil = &until
	}
	return doc, nil
}
