package popoverlist

import "github.com/google/uuid"

// Item is one editable row
type Item struct {
	ID   uuid.UUID `json:"id" yaml:"id"`
	Text string    `json:"text" yaml:"text"`
}

// NewItem creates an item with a fresh random id
func NewItem(text string) Item {
	return Item{ID: uuid.New(), Text: text}
}

// Items is an ordered list of rows keyed by ID. Order is insertion order.
type Items []Item

// Clone returns an independent copy
func (items Items) Clone() Items {
	if items == nil {
		return nil
	}
	out := make(Items, len(items))
	copy(out, items)
	return out
}

// IDs returns the ids in list order
func (items Items) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// Index returns the position of id, or -1
func (items Items) Index(id uuid.UUID) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is present
func (items Items) Contains(id uuid.UUID) bool {
	return items.Index(id) >= 0
}

// Without returns a copy with id removed
func (items Items) Without(id uuid.UUID) Items {
	out := make(Items, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// Dedupe drops later rows whose id was already seen, keeping the first.
func (items Items) Dedupe() Items {
	seen := make(map[uuid.UUID]struct{}, len(items))
	out := make(Items, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Texts returns the row texts in order
func (items Items) Texts() []string {
	texts := make([]string, len(items))
	for i, it := range items {
		texts[i] = it.Text
	}
	return texts
}
