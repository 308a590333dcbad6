package items

// Item is a user-owned record. ID is assigned by the store on creation and
// Owner never changes afterwards.
type Item struct {
	ID          string `json:"id" firestore:"-" bson:"-"`
	Name        string `json:"name" firestore:"name" bson:"name"`
	Description string `json:"description" firestore:"description" bson:"description"`
	Owner       string `json:"owner" firestore:"owner" bson:"owner"`
}

// Patch holds the mutable fields of an item.
type Patch struct {
	Name        string
	Description string
}

// DefaultListLimit is used when the caller does not pass a limit.
const DefaultListLimit = 10
