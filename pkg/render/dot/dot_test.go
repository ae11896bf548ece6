package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/tree"
)

func TestToDOTLeaf(t *testing.T) {
	got, err := ToDOT(tree.Leaf("solo"), Options{})
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}
	if !strings.Contains(got, `n0 [label="solo"]`) {
		t.Errorf("missing root node:\n%s", got)
	}
	if strings.Contains(got, "->") {
		t.Errorf("leaf should produce no edges:\n%s", got)
	}
}

func TestToDOTEdges(t *testing.T) {
	got, err := ToDOT(tree.Any([]any{1, []any{2}}), Options{})
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}

	for _, want := range []string{
		`n0 [label="list[2]"]`,
		`n1 [label="1"]`,
		`n2 [label="list[1]"]`,
		`n3 [label="2"]`,
		"n0 -> n1;",
		"n0 -> n2;",
		"n2 -> n3;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q:\n%s", want, got)
		}
	}
}

func TestToDOTKeyedEdges(t *testing.T) {
	got, err := ToDOT(tree.Any(map[string]any{"a": 1, "b": 2}), Options{Keys: true})
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}
	if !strings.Contains(got, `n0 -> n1 [label="a"];`) {
		t.Errorf("missing labeled edge for key a:\n%s", got)
	}
	if !strings.Contains(got, `n0 -> n2 [label="b"];`) {
		t.Errorf("missing labeled edge for key b:\n%s", got)
	}
}

func TestToDOTMaxDepth(t *testing.T) {
	got, err := ToDOT(tree.Any([]any{[]any{1}}), Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}
	if !strings.Contains(got, `label="list[1]"`) {
		t.Errorf("depth-1 child should be present:\n%s", got)
	}
	if strings.Contains(got, `label="1"`) {
		t.Errorf("nodes past the depth limit should be absent:\n%s", got)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	doc := map[string]any{"x": []any{1, 2}, "y": 3}

	first, err := ToDOT(tree.Any(doc), Options{Keys: true})
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}
	second, err := ToDOT(tree.Any(doc), Options{Keys: true})
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}
	if first != second {
		t.Errorf("conversions differ:\n%s\n---\n%s", first, second)
	}
}
