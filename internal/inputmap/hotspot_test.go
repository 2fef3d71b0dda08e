package inputmap

import "testing"

func TestHotspotArrayHotspotIDBounds(t *testing.T) {
	a := &HotspotArray{FirstID: HotspotIDFirstOrdinary, MaxSize: 3}
	if got := a.HotspotID(0); got != HotspotIDNone {
		t.Errorf("HotspotID(0) = %d, want HotspotIDNone", got)
	}
	if got := a.HotspotID(4); got != HotspotIDNone {
		t.Errorf("HotspotID(4) = %d, want HotspotIDNone", got)
	}
	if got := a.HotspotID(1); got != HotspotIDFirstOrdinary {
		t.Errorf("HotspotID(1) = %d, want %d", got, HotspotIDFirstOrdinary)
	}
}

func TestRecomputeSizeShrinksOverRemovedTail(t *testing.T) {
	a := &HotspotArray{FirstID: HotspotIDFirstOrdinary, MaxSize: 5}
	a.Ranges = []HotspotRange{
		{First: 4, Last: 5, Flags: RangeFlags{Removed: true}},
	}
	a.recomputeSize()
	if a.Size != 3 {
		t.Fatalf("expected Size 3 after removing tail 4-5, got %d", a.Size)
	}
}

func TestRecomputeSizeAllRemoved(t *testing.T) {
	a := &HotspotArray{FirstID: HotspotIDFirstOrdinary, MaxSize: 2}
	a.Ranges = []HotspotRange{{First: 1, Last: 2, Flags: RangeFlags{Removed: true}}}
	a.recomputeSize()
	if a.Size != 0 {
		t.Fatalf("expected Size 0, got %d", a.Size)
	}
}

func TestRecomputeSizeNonTailRemovalKeepsFullSize(t *testing.T) {
	// A removed range in the middle doesn't shrink Size: Size tracks the
	// highest non-removed trailing index, matching how the original only
	// compacts from the end.
	a := &HotspotArray{FirstID: HotspotIDFirstOrdinary, MaxSize: 5}
	a.Ranges = []HotspotRange{{First: 2, Last: 2, Flags: RangeFlags{Removed: true}}}
	a.recomputeSize()
	if a.Size != 5 {
		t.Fatalf("expected Size 5, got %d", a.Size)
	}
}
