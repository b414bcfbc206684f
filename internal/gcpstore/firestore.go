package gcpstore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"crosswarped.com/xword/pkg/pagination"
	"crosswarped.com/xword/pkg/primitives"
)

const displayNameTTL = 10 * time.Minute

// FirestoreIndexStore keeps one index document per dimension in a
// Firestore collection. It implements pagination.IndexStore.
type FirestoreIndexStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreIndexStore creates a store over the given collection.
func NewFirestoreIndexStore(client *firestore.Client, collection string) *FirestoreIndexStore {
	return &FirestoreIndexStore{client: client, collection: collection}
}

// Load fetches the index document for a dimension. A missing document
// is not an error: (nil, nil) tells the caller to start fresh. A
// document that exists but fails shape validation is reported as
// pagination.ErrIndexCorrupt so the caller rebuilds instead of failing.
func (s *FirestoreIndexStore) Load(ctx context.Context, dimension string) (*pagination.Index, error) {
	snap, err := s.client.Collection(s.collection).Doc(dimension).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get index doc %q: %w", dimension, err)
	}

	var idx pagination.Index
	if err := snap.DataTo(&idx); err != nil {
		return nil, fmt.Errorf("%w: decode doc %q: %v", pagination.ErrIndexCorrupt, dimension, err)
	}
	if err := idx.Validate(); err != nil {
		return nil, fmt.Errorf("index doc %q: %w", dimension, err)
	}
	return &idx, nil
}

// Save writes the index document for a dimension, replacing any
// previous version.
func (s *FirestoreIndexStore) Save(ctx context.Context, dimension string, idx *pagination.Index) error {
	if _, err := s.client.Collection(s.collection).Doc(dimension).Set(ctx, idx); err != nil {
		return fmt.Errorf("set index doc %q: %w", dimension, err)
	}
	return nil
}

type profileDoc struct {
	DisplayName string `firestore:"displayName"`
}

// ProfileResolver resolves author ids to display names, caching results
// so listing pages don't hammer the profile collection.
type ProfileResolver struct {
	client     *firestore.Client
	collection string
	cache      *primitives.TTLCache[string, string]
	log        *zap.Logger
}

// NewProfileResolver creates a resolver over the given profile
// collection. A nil clock defaults to time.Now.
func NewProfileResolver(client *firestore.Client, collection string, clock primitives.Clock, log *zap.Logger) *ProfileResolver {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileResolver{
		client:     client,
		collection: collection,
		cache:      primitives.NewTTLCache[string, string](displayNameTTL, clock),
		log:        log,
	}
}

// DisplayName returns the display name for an author id, falling back
// to the id itself when the profile is missing or unreadable. Lookup
// failures are logged, not surfaced; a listing page with a raw id beats
// no listing page.
func (r *ProfileResolver) DisplayName(ctx context.Context, authorID string) string {
	if name, ok := r.cache.Get(authorID); ok {
		return name
	}

	snap, err := r.client.Collection(r.collection).Doc(authorID).Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			r.log.Warn("profile lookup failed",
				zap.String("author_id", authorID), zap.Error(err))
		}
		return authorID
	}

	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		r.log.Warn("profile doc unreadable",
			zap.String("author_id", authorID), zap.Error(err))
		return authorID
	}
	name := doc.DisplayName
	if name == "" {
		name = authorID
	}
	r.cache.Put(authorID, name)
	return name
}
