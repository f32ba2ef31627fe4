package model

// Selection maps part categories to the parts chosen for them. Categories
// and parts keep insertion order, which is also display order. A category
// never holds two parts with the same id.
type Selection struct {
	parts map[PartCategory][]Part
	order []PartCategory
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{parts: make(map[PartCategory][]Part)}
}

// Categories returns the selected categories in insertion order.
func (s *Selection) Categories() []PartCategory {
	out := make([]PartCategory, len(s.order))
	copy(out, s.order)
	return out
}

// Parts returns the parts selected for a category, in insertion order.
func (s *Selection) Parts(category PartCategory) []Part {
	parts := s.parts[category]
	out := make([]Part, len(parts))
	copy(out, parts)
	return out
}

// First returns the first part selected for a category.
func (s *Selection) First(category PartCategory) (Part, bool) {
	parts := s.parts[category]
	if len(parts) == 0 {
		return Part{}, false
	}
	return parts[0], true
}

// Contains reports whether the category holds a part with the given id.
func (s *Selection) Contains(category PartCategory, id string) bool {
	for _, p := range s.parts[category] {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Len returns the total number of selected parts.
func (s *Selection) Len() int {
	n := 0
	for _, parts := range s.parts {
		n += len(parts)
	}
	return n
}

// All returns every selected part in display order.
func (s *Selection) All() []Part {
	out := make([]Part, 0, s.Len())
	for _, category := range s.order {
		out = append(out, s.parts[category]...)
	}
	return out
}

// Add appends a part to its category. Returns false if a part with the
// same id is already selected there.
func (s *Selection) Add(part Part) bool {
	if s.Contains(part.Category, part.ID) {
		return false
	}
	if _, ok := s.parts[part.Category]; !ok {
		s.order = append(s.order, part.Category)
	}
	s.parts[part.Category] = append(s.parts[part.Category], part)
	return true
}

// Replace makes the part the sole selection for its category.
func (s *Selection) Replace(part Part) {
	if _, ok := s.parts[part.Category]; !ok {
		s.order = append(s.order, part.Category)
	}
	s.parts[part.Category] = []Part{part}
}

// Remove deletes one part by id. The category disappears when its last
// part is removed. Returns false if the id was not selected.
func (s *Selection) Remove(category PartCategory, id string) bool {
	parts := s.parts[category]
	for i, p := range parts {
		if p.ID == id {
			s.parts[category] = append(parts[:i:i], parts[i+1:]...)
			if len(s.parts[category]) == 0 {
				s.Drop(category)
			}
			return true
		}
	}
	return false
}

// Drop removes a category and all its parts.
func (s *Selection) Drop(category PartCategory) {
	if _, ok := s.parts[category]; !ok {
		return
	}
	delete(s.parts, category)
	for i, c := range s.order {
		if c == category {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear removes everything.
func (s *Selection) Clear() {
	s.parts = make(map[PartCategory][]Part)
	s.order = nil
}

// Clone returns a deep copy of the selection.
func (s *Selection) Clone() *Selection {
	out := NewSelection()
	for _, category := range s.order {
		for _, p := range s.parts[category] {
			out.Add(p)
		}
	}
	return out
}
