package edgegraph

import "testing"

func TestMapRestrictionMapOnlyTurnDefault(t *testing.T) {
	m := NewMapRestrictionMap()
	if got := m.OnlyTurnFrom(1, 2); got != SpecialNodeID {
		t.Errorf("OnlyTurnFrom on empty map = %v, want SpecialNodeID", got)
	}
}

func TestMapRestrictionMapOnlyTurn(t *testing.T) {
	m := NewMapRestrictionMap()
	m.AddOnlyTurn(1, 2, 3)
	if got := m.OnlyTurnFrom(1, 2); got != NodeID(3) {
		t.Errorf("OnlyTurnFrom(1,2) = %v, want 3", got)
	}
	if got := m.OnlyTurnFrom(1, 5); got != SpecialNodeID {
		t.Errorf("OnlyTurnFrom(1,5) = %v, want SpecialNodeID", got)
	}
}

func TestMapRestrictionMapForbidden(t *testing.T) {
	m := NewMapRestrictionMap()
	m.AddRestriction(1, 2, 3)
	if !m.IsRestricted(1, 2, 3) {
		t.Errorf("expected (1,2,3) to be restricted")
	}
	if m.IsRestricted(1, 2, 4) {
		t.Errorf("did not expect (1,2,4) to be restricted")
	}
}

func TestMapRestrictionMapBarrier(t *testing.T) {
	m := NewMapRestrictionMap()
	m.AddBarrier(7)
	if !m.IsBarrier(7) {
		t.Errorf("expected node 7 to be a barrier")
	}
	if m.IsBarrier(8) {
		t.Errorf("did not expect node 8 to be a barrier")
	}
}
