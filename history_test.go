package billing

import "testing"

func TestHistoryAppendSorts(t *testing.T) {
	var h History[string]
	h.Append(MustParse("2021-03-01"), "march")
	h.Append(MustParse("2021-01-01"), "january")
	h.Append(MustParse("2021-02-01"), "february")

	var got []string
	for _, v := range h.Values() {
		got = append(got, v)
	}
	want := []string{"january", "february", "march"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistoryAppendOverwrites(t *testing.T) {
	var h History[int]
	day := MustParse("2021-01-01")
	h.Append(day, 1)
	h.Append(day, 2)

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if got, _ := h.Get(day); got != 2 {
		t.Errorf("Get() = %d, want 2 (last write wins)", got)
	}
}

func TestHistoryAsOf(t *testing.T) {
	var h History[int]
	h.Append(MustParse("2021-01-10"), 10)
	h.Append(MustParse("2021-01-20"), 20)

	tests := []struct {
		day   string
		want  int
		found bool
	}{
		{"2021-01-09", 0, false}, // before any entry
		{"2021-01-10", 10, true}, // exact match
		{"2021-01-15", 10, true}, // between entries
		{"2021-01-20", 20, true},
		{"2021-12-31", 20, true}, // after the last entry
	}
	for _, tt := range tests {
		got, found := h.AsOf(MustParse(tt.day))
		if got != tt.want || found != tt.found {
			t.Errorf("AsOf(%s) = (%d, %t), want (%d, %t)", tt.day, got, found, tt.want, tt.found)
		}
	}
}

func TestHistoryLatest(t *testing.T) {
	var h History[string]
	if day, v := h.Latest(); !day.IsZero() || v != "" {
		t.Errorf("empty Latest() = (%s, %q), want zero values", day, v)
	}
	h.Append(MustParse("2021-02-01"), "old")
	h.Append(MustParse("2021-03-01"), "new")
	day, v := h.Latest()
	if day != MustParse("2021-03-01") || v != "new" {
		t.Errorf("Latest() = (%s, %q), want (2021-03-01, \"new\")", day, v)
	}
}
