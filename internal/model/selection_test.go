package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selPart(id string, category PartCategory) Part {
	return Part{ID: id, Name: "Part " + id, Category: category, IsActive: true}
}

func TestSelectionAddAndOrder(t *testing.T) {
	s := NewSelection()

	assert.True(t, s.Add(selPart("c1", CategoryClutch)))
	assert.True(t, s.Add(selPart("w1", CategoryWheel)))
	assert.True(t, s.Add(selPart("w2", CategoryWheel)))
	assert.False(t, s.Add(selPart("w1", CategoryWheel)), "duplicate id must be rejected")

	assert.Equal(t, []PartCategory{CategoryClutch, CategoryWheel}, s.Categories())
	assert.Equal(t, 3, s.Len())

	wheels := s.Parts(CategoryWheel)
	require.Len(t, wheels, 2)
	assert.Equal(t, "w1", wheels[0].ID)
	assert.Equal(t, "w2", wheels[1].ID)
}

func TestSelectionReplace(t *testing.T) {
	s := NewSelection()
	s.Add(selPart("c1", CategoryClutch))
	s.Replace(selPart("c2", CategoryClutch))

	parts := s.Parts(CategoryClutch)
	require.Len(t, parts, 1)
	assert.Equal(t, "c2", parts[0].ID)
}

func TestSelectionRemove(t *testing.T) {
	s := NewSelection()
	s.Add(selPart("w1", CategoryWheel))
	s.Add(selPart("w2", CategoryWheel))

	assert.True(t, s.Remove(CategoryWheel, "w1"))
	assert.False(t, s.Remove(CategoryWheel, "w1"))
	assert.Equal(t, 1, s.Len())

	// Removing the last part drops the category entirely.
	assert.True(t, s.Remove(CategoryWheel, "w2"))
	assert.Empty(t, s.Categories())
}

func TestSelectionFirstAndContains(t *testing.T) {
	s := NewSelection()
	_, ok := s.First(CategoryClutch)
	assert.False(t, ok)

	s.Add(selPart("c1", CategoryClutch))
	first, ok := s.First(CategoryClutch)
	require.True(t, ok)
	assert.Equal(t, "c1", first.ID)
	assert.True(t, s.Contains(CategoryClutch, "c1"))
	assert.False(t, s.Contains(CategoryClutch, "c2"))
}

func TestSelectionClone(t *testing.T) {
	s := NewSelection()
	s.Add(selPart("c1", CategoryClutch))

	clone := s.Clone()
	clone.Add(selPart("a1", CategoryAxle))

	assert.Equal(t, 1, s.Len(), "mutating the clone must not touch the original")
	assert.Equal(t, 2, clone.Len())
}

func TestSelectionAll(t *testing.T) {
	s := NewSelection()
	s.Add(selPart("c1", CategoryClutch))
	s.Add(selPart("a1", CategoryAxle))
	s.Add(selPart("c2", CategorySprocket))

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "c1", all[0].ID)
	assert.Equal(t, "a1", all[1].ID)
	assert.Equal(t, "c2", all[2].ID)
}
