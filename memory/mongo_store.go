package memory

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
)

// MongoContextStore persists contexts through the ODM layer, one document
// per session.
type MongoContextStore struct {
	collection odm.OdmCollectionInterface[ConversationContext]
}

func NewMongoContextStore(collection odm.OdmCollectionInterface[ConversationContext]) *MongoContextStore {
	return &MongoContextStore{collection: collection}
}

func (s *MongoContextStore) Load(ctx context.Context, sessionID string) (*ConversationContext, error) {
	exists, err := async.Await(s.collection.Exists(ctx, sessionID))
	if err != nil {
		return nil, err
	}
	if !exists {
		return NewConversationContext(sessionID), nil
	}

	conversation, err := async.Await(s.collection.FindOneByID(ctx, sessionID))
	if err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *MongoContextStore) Save(ctx context.Context, conversation *ConversationContext) error {
	_, err := async.Await(s.collection.Save(ctx, *conversation))
	return err
}

// Delete overwrites the session with a blank idle context. The ODM surface
// has no remove operation, and a blank document reads back the same as a
// missing one.
func (s *MongoContextStore) Delete(ctx context.Context, sessionID string) error {
	return s.Save(ctx, NewConversationContext(sessionID))
}
