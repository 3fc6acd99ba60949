package columns

import (
	"fmt"
	"sort"

	"go-assetreport/internal/features/catalog"
)

// Model is the ordered, user-mutable set of report columns. It is mutated
// synchronously between runs; no run ever touches it.
type Model struct {
	Entries []ColumnEntry `json:"entries" bson:"entries"`
}

// NewModel seeds the model from the resolved field union, all deselected.
func NewModel(fields []catalog.FieldDescriptor) *Model {
	m := &Model{}
	for _, f := range fields {
		m.Entries = append(m.Entries, ColumnEntry{Field: f})
	}
	return m
}

// Toggle flips selection. Turning on appends at the end of the order;
// turning off closes the gap it leaves.
func (m *Model) Toggle(fieldID string) bool {
	entry := m.find(fieldID)
	if entry == nil {
		return false
	}

	if entry.Selected {
		removed := *entry.Order
		entry.Selected = false
		entry.Order = nil
		for i := range m.Entries {
			e := &m.Entries[i]
			if e.Selected && *e.Order > removed {
				*e.Order--
			}
		}
	} else {
		entry.Selected = true
		next := m.selectedCount() // entry already counts itself
		entry.Order = &next
	}
	return true
}

// Move swaps the entry with its neighbor in display order. No-op at either
// boundary or when the entry is not selected.
func (m *Model) Move(fieldID string, dir MoveDirection) bool {
	entry := m.find(fieldID)
	if entry == nil || !entry.Selected {
		return false
	}

	target := *entry.Order - 1
	if dir == MoveDown {
		target = *entry.Order + 1
	}
	if target < 1 || target > m.selectedCount() {
		return false
	}

	for i := range m.Entries {
		neighbor := &m.Entries[i]
		if neighbor.Selected && *neighbor.Order == target && neighbor != entry {
			*neighbor.Order, *entry.Order = *entry.Order, *neighbor.Order
			return true
		}
	}
	return false
}

// InsertColorColumn creates a synthetic separator column at order 1 and
// shifts everything else down. Color columns never carry data.
func (m *Model) InsertColorColumn(label, color string) ColumnEntry {
	id := fmt.Sprintf("%s.%d", catalog.FieldColorFill, m.nextColorSeq())

	for i := range m.Entries {
		e := &m.Entries[i]
		if e.Selected {
			*e.Order++
		}
	}

	one := 1
	entry := ColumnEntry{
		Field: catalog.FieldDescriptor{
			ID:        id,
			Label:     label,
			ValueType: catalog.ValueTypeColor,
			Origin:    catalog.OriginColor,
		},
		Selected: true,
		Order:    &one,
		Color:    color,
	}
	m.Entries = append(m.Entries, entry)
	return entry
}

// Remove deletes an entry entirely. Only synthetic columns may be removed;
// data columns are deselected via Toggle instead.
func (m *Model) Remove(fieldID string) error {
	idx := -1
	for i := range m.Entries {
		if m.Entries[i].Field.ID == fieldID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("column %s not found", fieldID)
	}

	entry := m.Entries[idx]
	if entry.Field.Origin != catalog.OriginColor && entry.Field.Origin != catalog.OriginCalculated {
		return fmt.Errorf("column %s is not synthetic and cannot be removed", fieldID)
	}

	m.Entries = append(m.Entries[:idx], m.Entries[idx+1:]...)

	if entry.Selected {
		removed := *entry.Order
		for i := range m.Entries {
			e := &m.Entries[i]
			if e.Selected && *e.Order > removed {
				*e.Order--
			}
		}
	}
	return nil
}

// SelectAll sets every entry's selection, assigning orders by catalog
// iteration order when enabling.
func (m *Model) SelectAll(selected bool) {
	order := 0
	for i := range m.Entries {
		e := &m.Entries[i]
		e.Selected = selected
		if selected {
			order++
			n := order
			e.Order = &n
		} else {
			e.Order = nil
		}
	}
}

// SelectedOrdered returns the selected entries sorted by order.
func (m *Model) SelectedOrdered() []ColumnEntry {
	var out []ColumnEntry
	for _, e := range m.Entries {
		if e.Selected {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return *out[i].Order < *out[j].Order
	})
	return out
}

func (m *Model) find(fieldID string) *ColumnEntry {
	for i := range m.Entries {
		if m.Entries[i].Field.ID == fieldID {
			return &m.Entries[i]
		}
	}
	return nil
}

func (m *Model) selectedCount() int {
	n := 0
	for _, e := range m.Entries {
		if e.Selected {
			n++
		}
	}
	return n
}

// nextColorSeq keeps synthetic ids unique even after removals.
func (m *Model) nextColorSeq() int {
	max := 0
	for _, e := range m.Entries {
		if e.Field.Origin != catalog.OriginColor {
			continue
		}
		var seq int
		if _, err := fmt.Sscanf(e.Field.ID, catalog.FieldColorFill+".%d", &seq); err == nil && seq > max {
			max = seq
		}
	}
	return max + 1
}
