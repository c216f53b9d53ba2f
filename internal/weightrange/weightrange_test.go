package weightrange

import "testing"

func TestProductScheme_Classify(t *testing.T) {
	t.Parallel()

	s := ProductScheme()
	cases := []struct {
		weight float64
		want   string
	}{
		{0.5, "2kg以内"},
		{1.99, "2kg以内"},
		{2, "2-3kg"},
		{2.5, "2-3kg"},
		{3, "其他"},   // [3,4) 区间空缺
		{4.8, "4-6kg"},
		{6, "其他"},
		{9.6, "9-11kg"},
		{15.6, "14-16kg"},
		{16, "其他"},
		{100, "其他"},
		{-1, "其他"},
	}
	for _, c := range cases {
		if got := s.Classify(c.weight); got != c.want {
			t.Fatalf("Classify(%v) = %q, want %q", c.weight, got, c.want)
		}
	}
}

func TestGenericScheme_Classify_Unbounded(t *testing.T) {
	t.Parallel()

	s := GenericScheme()
	if got := s.Classify(20); got != "20kg以上" {
		t.Fatalf("Classify(20) = %q", got)
	}
	if got := s.Classify(999); got != "20kg以上" {
		t.Fatalf("Classify(999) = %q", got)
	}
	if got := s.Classify(0.3); got != "0-1kg" {
		t.Fatalf("Classify(0.3) = %q", got)
	}
}

func TestAllLabels_ContainsEveryClassification(t *testing.T) {
	t.Parallel()

	for _, s := range []*Scheme{ProductScheme(), GenericScheme()} {
		labels := map[string]bool{}
		for _, l := range s.AllLabels() {
			labels[l] = true
		}
		for _, w := range []float64{0.1, 1, 2.4, 3.5, 5, 10, 15, 30} {
			if got := s.Classify(w); !labels[got] {
				t.Fatalf("scheme %s: Classify(%v) = %q 不在 AllLabels 中", s.Name, w, got)
			}
		}
	}
}

func TestSchemeByName(t *testing.T) {
	t.Parallel()

	if SchemeByName("generic").Name != "generic" {
		t.Fatalf("expected generic scheme")
	}
	if SchemeByName("product").Name != "product" {
		t.Fatalf("expected product scheme")
	}
	if SchemeByName("").Name != "product" {
		t.Fatalf("unknown name should fall back to product")
	}
}
