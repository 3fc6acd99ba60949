package columns

import (
	"fmt"
	"math/rand"
	"testing"

	"go-assetreport/internal/features/catalog"
)

func testFields(n int) []catalog.FieldDescriptor {
	var fields []catalog.FieldDescriptor
	for i := 0; i < n; i++ {
		fields = append(fields, catalog.FieldDescriptor{
			ID:    fmt.Sprintf("field_%d", i),
			Label: fmt.Sprintf("Field %d", i),
		})
	}
	return fields
}

// checkInvariant asserts the contiguous 1..N order permutation over
// selected entries, and that unselected entries carry no order.
func checkInvariant(t *testing.T, m *Model) {
	t.Helper()
	seen := map[int]bool{}
	n := 0
	for _, e := range m.Entries {
		if !e.Selected {
			if e.Order != nil {
				t.Fatalf("unselected entry %s has order %d", e.Field.ID, *e.Order)
			}
			continue
		}
		if e.Order == nil {
			t.Fatalf("selected entry %s has no order", e.Field.ID)
		}
		if seen[*e.Order] {
			t.Fatalf("duplicate order %d", *e.Order)
		}
		seen[*e.Order] = true
		n++
	}
	for i := 1; i <= n; i++ {
		if !seen[i] {
			t.Fatalf("order gap: %d missing among %d selected", i, n)
		}
	}
}

func TestToggle(t *testing.T) {
	m := NewModel(testFields(4))

	m.Toggle("field_0")
	m.Toggle("field_2")
	m.Toggle("field_3")
	checkInvariant(t, m)

	if got := *m.find("field_3").Order; got != 3 {
		t.Errorf("field_3 order = %d, want 3", got)
	}

	// Turning off the middle entry closes the gap.
	m.Toggle("field_2")
	checkInvariant(t, m)
	if got := *m.find("field_3").Order; got != 2 {
		t.Errorf("field_3 order after deselect = %d, want 2", got)
	}
}

func TestMove(t *testing.T) {
	m := NewModel(testFields(3))
	m.SelectAll(true)

	if !m.Move("field_1", MoveUp) {
		t.Fatal("move up failed")
	}
	checkInvariant(t, m)
	if *m.find("field_1").Order != 1 || *m.find("field_0").Order != 2 {
		t.Error("orders not swapped")
	}

	// Boundary no-ops.
	if m.Move("field_1", MoveUp) {
		t.Error("move above top should be a no-op")
	}
	if m.Move("field_2", MoveDown) {
		t.Error("move below bottom should be a no-op")
	}
	checkInvariant(t, m)
}

func TestInsertAndMoveColorColumn(t *testing.T) {
	m := NewModel(testFields(2))
	m.SelectAll(true)

	entry := m.InsertColorColumn("Section A", "#FF0000")
	checkInvariant(t, m)
	if *entry.Order != 1 {
		t.Errorf("color column order = %d, want 1", *entry.Order)
	}

	// Moving it down past both data columns keeps all three labels and
	// re-contiguates the order.
	m.Move(entry.Field.ID, MoveDown)
	m.Move(entry.Field.ID, MoveDown)
	checkInvariant(t, m)

	ordered := m.SelectedOrdered()
	if len(ordered) != 3 {
		t.Fatalf("got %d entries, want 3", len(ordered))
	}
	wantLabels := []string{"Field 0", "Field 1", "Section A"}
	for i, want := range wantLabels {
		if ordered[i].Field.Label != want {
			t.Errorf("position %d = %q, want %q", i+1, ordered[i].Field.Label, want)
		}
	}
}

func TestRemove(t *testing.T) {
	m := NewModel(testFields(2))
	m.SelectAll(true)
	entry := m.InsertColorColumn("Sep", "#00FF00")

	if err := m.Remove("field_0"); err == nil {
		t.Error("removing a data column must fail")
	}

	if err := m.Remove(entry.Field.ID); err != nil {
		t.Fatalf("remove color column: %v", err)
	}
	checkInvariant(t, m)
	if len(m.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(m.Entries))
	}

	// Ids stay unique across insert/remove cycles.
	second := m.InsertColorColumn("Sep 2", "#0000FF")
	if second.Field.ID == entry.Field.ID {
		t.Errorf("reused synthetic id %s", second.Field.ID)
	}
}

func TestSelectAll(t *testing.T) {
	m := NewModel(testFields(5))
	m.SelectAll(true)
	checkInvariant(t, m)
	if got := len(m.SelectedOrdered()); got != 5 {
		t.Errorf("selected %d, want 5", got)
	}

	m.SelectAll(false)
	checkInvariant(t, m)
	if got := len(m.SelectedOrdered()); got != 0 {
		t.Errorf("selected %d, want 0", got)
	}
}

func TestInvariantUnderRandomOperations(t *testing.T) {
	// The permutation invariant must hold after every mutation, for any
	// operation sequence.
	rng := rand.New(rand.NewSource(42))
	m := NewModel(testFields(6))

	var colorIDs []string
	for i := 0; i < 500; i++ {
		switch rng.Intn(5) {
		case 0:
			m.Toggle(fmt.Sprintf("field_%d", rng.Intn(6)))
		case 1:
			dir := MoveUp
			if rng.Intn(2) == 0 {
				dir = MoveDown
			}
			m.Move(fmt.Sprintf("field_%d", rng.Intn(6)), dir)
		case 2:
			entry := m.InsertColorColumn("sep", "#FFF")
			colorIDs = append(colorIDs, entry.Field.ID)
		case 3:
			if len(colorIDs) > 0 {
				idx := rng.Intn(len(colorIDs))
				if err := m.Remove(colorIDs[idx]); err == nil {
					colorIDs = append(colorIDs[:idx], colorIDs[idx+1:]...)
				}
			}
		case 4:
			m.SelectAll(rng.Intn(2) == 0)
		}
		checkInvariant(t, m)
	}
}
