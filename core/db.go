package core

// Pagination selects a window of an ordered collection.
// A zero Size means no limit.
type Pagination struct {
	Page int
	Size int
}

func (p Pagination) Skip() int64 {
	return int64(p.Page) * int64(p.Size)
}

func (p Pagination) Limit() int64 {
	return int64(p.Size)
}

// Write results reported back to API clients.
// Field names follow the document store's driver so that every store answers alike.
type (
	InsertResult struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}

	UpdateResult struct {
		Acknowledged  bool    `json:"acknowledged"`
		MatchedCount  int64   `json:"matchedCount"`
		ModifiedCount int64   `json:"modifiedCount"`
		UpsertedID    *string `json:"upsertedId"`
		UpsertedCount int64   `json:"upsertedCount"`
	}

	DeleteResult struct {
		Acknowledged bool  `json:"acknowledged"`
		DeletedCount int64 `json:"deletedCount"`
	}
)

func NewInsertResult(id string) InsertResult {
	return InsertResult{Acknowledged: true, InsertedID: id}
}
