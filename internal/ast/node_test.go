package ast

import (
	"reflect"
	"testing"
)

func TestIterDepthFirst(t *testing.T) {
	doc := NewDocument("")
	doc.AppendChild(NewNode("h1", "My Doc"))
	section := NewNode("section", "")
	section.AppendChild(NewNode("h2", "Part One"))
	doc.AppendChild(section)
	doc.AppendChild(NewNode("p", "tail"))

	var names []string
	var depths []int
	for depth, node := range doc.Iter(0) {
		names = append(names, node.Name)
		depths = append(depths, depth)
	}

	wantNames := []string{"doc", "h1", "section", "h2", "p"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Fatalf("expected order %v, got %v", wantNames, names)
	}
	wantDepths := []int{0, 1, 1, 2, 1}
	if !reflect.DeepEqual(depths, wantDepths) {
		t.Fatalf("expected depths %v, got %v", wantDepths, depths)
	}
}

func TestIterRestartableAndStoppable(t *testing.T) {
	root := NewNode("doc", "")
	root.AppendChild(NewNode("p", "one"))
	root.AppendChild(NewNode("p", "two"))

	count := func() int {
		n := 0
		for range root.Iter(0) {
			n++
		}
		return n
	}
	if first, second := count(), count(); first != 3 || second != 3 {
		t.Fatalf("expected restartable sequence of 3 nodes, got %d then %d", first, second)
	}

	seen := 0
	for range root.Iter(0) {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("expected early stop after 2 nodes, got %d", seen)
	}
}

func TestHeaderLevel(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"h1", 1},
		{"h3", 3},
		{"h6", 6},
		{"h7", 0},
		{"h", 0},
		{"p", 0},
		{"doc", 0},
		{"header", 0},
	}
	for _, tc := range cases {
		if got := NewNode(tc.name, "x").HeaderLevel(); got != tc.want {
			t.Fatalf("HeaderLevel(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		data string
		want string
	}{
		{"Getting, Started Here", "getting_started_here"},
		{"My Doc", "my_doc"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := NewNode("h1", tc.data).Slug(); got != tc.want {
			t.Fatalf("Slug(%q) = %q, want %q", tc.data, got, tc.want)
		}
	}
}

func TestLazyChildInit(t *testing.T) {
	leaf := NewNode("p", "text")
	if leaf.Children != nil {
		t.Fatal("expected nil children for a fresh leaf")
	}
	leaf.AppendChild(NewNode("em", "x"))
	if len(leaf.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(leaf.Children))
	}
}

func TestDocumentTitle(t *testing.T) {
	doc := NewDocument("")
	doc.AppendChild(NewNode("p", "intro"))
	if got := doc.Title(); got != UntitledTitle {
		t.Fatalf("expected %q for document without h1, got %q", UntitledTitle, got)
	}

	doc.AppendChild(NewNode("h1", "My Doc"))
	doc.AppendChild(NewNode("h1", "Second Title"))
	if got := doc.Title(); got != "My Doc" {
		t.Fatalf("expected first h1 payload, got %q", got)
	}
}

func TestDocumentHeaders(t *testing.T) {
	doc := NewDocument("")
	doc.AppendChild(NewNode("h1", "A"))
	doc.AppendChild(NewNode("p", "text"))
	section := NewNode("section", "")
	section.AppendChild(NewNode("h2", "B"))
	doc.AppendChild(section)

	headers := doc.Headers()
	if len(headers) != 2 || headers[0].Data != "A" || headers[1].Data != "B" {
		t.Fatalf("expected headers [A B], got %v", headers)
	}
}

func TestDump(t *testing.T) {
	doc := NewDocument("")
	doc.AppendChild(NewNode("h1", "A"))
	section := NewNode("section", "")
	section.AppendChild(NewNode("p", "text"))
	doc.AppendChild(section)

	want := "doc\n  h1(A)\n  section\n    p(text)"
	if got := doc.Dump(); got != want {
		t.Fatalf("expected dump %q, got %q", want, got)
	}
}
