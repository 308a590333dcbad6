package repository

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/firetemplate/items-api/internal/items"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreRepo implements Repository on a Firestore collection. Document IDs
// are generated by Firestore.
type FirestoreRepo struct {
	col *firestore.CollectionRef
}

func NewFirestoreRepo(client *firestore.Client, collection string) *FirestoreRepo {
	return &FirestoreRepo{col: client.Collection(collection)}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func decodeSnapshot(snap *firestore.DocumentSnapshot) (*items.Item, error) {
	var it items.Item
	if err := snap.DataTo(&it); err != nil {
		return nil, err
	}
	it.ID = snap.Ref.ID
	return &it, nil
}

func (f *FirestoreRepo) ListByOwner(ctx context.Context, owner string, limit int) ([]*items.Item, error) {
	q := f.col.Where("owner", "==", owner)
	if limit > 0 {
		q = q.Limit(limit)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()
	out := []*items.Item{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		it, err := decodeSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func (f *FirestoreRepo) Create(ctx context.Context, it *items.Item) (*items.Item, error) {
	ref, _, err := f.col.Add(ctx, it)
	if err != nil {
		return nil, err
	}
	out := *it
	out.ID = ref.ID
	return &out, nil
}

func (f *FirestoreRepo) doc(id string) *firestore.DocumentRef {
	if id == "" {
		return nil
	}
	return f.col.Doc(id)
}

func (f *FirestoreRepo) Get(ctx context.Context, id string) (*items.Item, error) {
	ref := f.doc(id)
	if ref == nil {
		return nil, ErrNotFound
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeSnapshot(snap)
}

func (f *FirestoreRepo) Update(ctx context.Context, id string, p items.Patch) (*items.Item, error) {
	ref := f.doc(id)
	if ref == nil {
		return nil, ErrNotFound
	}
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "name", Value: p.Name},
		{Path: "description", Value: p.Description},
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f.Get(ctx, id)
}

func (f *FirestoreRepo) Delete(ctx context.Context, id string) error {
	ref := f.doc(id)
	if ref == nil {
		return ErrNotFound
	}
	// Firestore deletes are idempotent; existence is checked by the service first.
	_, err := ref.Delete(ctx)
	return err
}
