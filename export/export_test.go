package export_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	receiptstudio "github.com/lvillar/receiptstudio"
	"github.com/lvillar/receiptstudio/export"
	"github.com/lvillar/receiptstudio/layout"
	"github.com/lvillar/receiptstudio/vtree"
)

func testDoc() *receiptstudio.Document {
	return receiptstudio.NewDocument(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestPrepareStripsInteractiveChrome(t *testing.T) {
	doc := testDoc()
	tree := layout.Templates()[0].Build(doc)

	prepared := export.Prepare(tree)

	prepared.Walk(func(n *vtree.Node) bool {
		if n.Interactive {
			t.Errorf("interactive node survived: %+v", n)
		}
		if n.Kind == vtree.KindButton {
			t.Errorf("button survived: %+v", n)
		}
		return true
	})

	// The live tree keeps its chrome.
	buttons := 0
	tree.Walk(func(n *vtree.Node) bool {
		if n.Kind == vtree.KindButton {
			buttons++
		}
		return true
	})
	if buttons == 0 {
		t.Error("preparation mutated the live tree")
	}
}

func TestPrepareForcesColors(t *testing.T) {
	tree := &vtree.Node{Kind: vtree.KindGroup, Children: []*vtree.Node{
		{Kind: vtree.KindText, Text: "a", Style: vtree.Style{Background: "transparent"}},
		{Kind: vtree.KindText, Text: "b", Style: vtree.Style{Background: "linear-gradient(#fff, #000)"}},
		{Kind: vtree.KindText, Text: "c"},
	}}

	prepared := export.Prepare(tree)

	for i, child := range prepared.Children {
		if child.Style.Foreground != "#000000" {
			t.Errorf("child %d foreground: got %q", i, child.Style.Foreground)
		}
	}
	if got := prepared.Children[0].Style.Background; got != "#ffffff" {
		t.Errorf("transparent background: got %q", got)
	}
	if got := prepared.Children[1].Style.Background; got != "#ffffff" {
		t.Errorf("gradient background: got %q", got)
	}
}

func TestPrepareKeepsUnsetBackgroundUnderPaintedParent(t *testing.T) {
	tree := &vtree.Node{
		Kind:  vtree.KindGroup,
		Style: vtree.Style{Background: "#3f51b5"},
		Children: []*vtree.Node{
			{Kind: vtree.KindText, Text: "on accent"},
		},
	}

	prepared := export.Prepare(tree)

	if got := prepared.Children[0].Style.Background; got != "" {
		t.Errorf("child background: got %q, want unset", got)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		number string
		want   string
	}{
		{"R2024001", "Receipt-R2024001-20240601-1430.pdf"},
		{"R-2024/001", "Receipt-R2024001-20240601-1430.pdf"},
		{"", "Receipt-R001-20240601-1430.pdf"},
	}
	for _, tc := range tests {
		if got := export.Filename(tc.number, now); got != tc.want {
			t.Errorf("Filename(%q): got %q, want %q", tc.number, got, tc.want)
		}
	}
}

func TestExportWritesPDF(t *testing.T) {
	doc := testDoc()
	tree := layout.Templates()[0].Build(doc)

	var buf bytes.Buffer
	result, err := export.Export(context.Background(), &buf, tree, doc, export.Options{
		SettleDelay: time.Millisecond,
		Scale:       1,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Errorf("output does not start with a PDF header (%d bytes)", buf.Len())
	}
	if result.Pages < 1 {
		t.Errorf("pages: got %d", result.Pages)
	}
	if !strings.HasPrefix(result.Filename, "Receipt-R2024001-") || !strings.HasSuffix(result.Filename, ".pdf") {
		t.Errorf("filename: got %q", result.Filename)
	}
	t.Logf("exported %d pages, %d bytes", result.Pages, buf.Len())
}

func TestExportDarkRasterStillShips(t *testing.T) {
	doc := testDoc()
	// A solid dark page trips the fidelity sample; the minimal re-render
	// comes out identical and the export proceeds anyway.
	tree := &vtree.Node{
		Kind:  vtree.KindGroup,
		Style: vtree.Style{Background: "#000000"},
		Children: []*vtree.Node{
			{Kind: vtree.KindSpacer, Style: vtree.Style{Height: 200}},
		},
	}

	var buf bytes.Buffer
	result, err := export.Export(context.Background(), &buf, tree, doc, export.Options{
		SettleDelay: time.Millisecond,
		Scale:       1,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Errorf("output does not start with a PDF header (%d bytes)", buf.Len())
	}
	if result.Pages != 1 {
		t.Errorf("pages: got %d, want 1", result.Pages)
	}
}

func TestExportCanceledContext(t *testing.T) {
	doc := testDoc()
	tree := layout.Templates()[0].Build(doc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := export.Export(ctx, &buf, tree, doc, export.Options{SettleDelay: time.Hour})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes after cancellation", buf.Len())
	}
}
