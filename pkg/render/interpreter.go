package render

import (
	"context"
	"sort"

	"github.com/pagecraft/pagecraft/pkg/document"
)

// Interpret renders one component into a node tree. The second return
// value is false when the component is hidden and produces no output.
//
// Interpret never fails: unknown type tags render an explicit placeholder
// carrying the literal tag, and missing fields fall back to per-type
// defaults. A public page must never hard-fail on a malformed or
// partially-edited document.
func Interpret(ctx context.Context, c document.Component, r Resolver) (*Node, bool) {
	if !c.Visible {
		return nil, false
	}

	f := fields(c.Data)

	var inner *Node
	switch c.TypeTag {
	case "hero":
		inner = renderHero(f)
	case "about":
		inner = renderAbout(f)
	case "services":
		inner = renderServices(f)
	case "gallery":
		inner = renderGallery(ctx, f, r)
	case "cta":
		inner = renderCTA(f)
	case "text":
		inner = renderText(f)
	case "image":
		inner = renderImage(f)
	case "spacer":
		inner = renderSpacer(f)
	case "divider":
		inner = renderDivider(f)
	case "columns":
		inner = renderColumns(f)
	default:
		inner = renderPlaceholder(c.TypeTag)
	}

	inner.WithAttr("id", c.ID)
	inner.WithAttr("data-block", c.TypeTag)
	return inner, true
}

// RenderDocument renders a whole page: visible components, sorted by
// order, under one <main> root. This is the single entry point shared by
// the authoring preview and the public renderer; both surfaces must
// produce byte-for-byte identical output for structurally identical
// documents.
func RenderDocument(ctx context.Context, doc *document.Document, r Resolver) *Node {
	ordered := make([]document.Component, len(doc.Components))
	copy(ordered, doc.Components)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	root := El("main").WithClass("page")
	for _, c := range ordered {
		if n, ok := Interpret(ctx, c, r); ok {
			root.Append(n)
		}
	}
	return root
}

// Fragment is one component's rendered HTML, keyed by component id. The
// server diffs fragment lists to push minimal preview updates.
type Fragment struct {
	ID   string
	HTML string
}

// Fragments renders each visible component to its own HTML string, in
// document order.
func Fragments(ctx context.Context, doc *document.Document, r Resolver) []Fragment {
	ordered := make([]document.Component, len(doc.Components))
	copy(ordered, doc.Components)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	out := make([]Fragment, 0, len(ordered))
	for _, c := range ordered {
		if n, ok := Interpret(ctx, c, r); ok {
			out = append(out, Fragment{ID: c.ID, HTML: n.HTML()})
		}
	}
	return out
}
