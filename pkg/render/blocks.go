package render

import (
	"context"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
)

// richText sanitizes user-authored HTML fields before they are emitted as
// raw nodes. The UGC policy allows formatting markup and strips scripts.
var richText = bluemonday.UGCPolicy()

func renderHero(f fields) *Node {
	n := El("section").WithClass("block block-hero")
	applyBackground(n, f, heroDefaultBackground)
	n.WithStyle("color", f.str("textColor", "#ffffff"))

	inner := El("div").WithClass("block-inner")
	inner.Append(El("h1", Text(f.str("title", "Untitled"))))
	if subtitle := f.rawStr("subtitle", ""); subtitle != "" {
		inner.Append(El("p", Text(subtitle)).WithClass("hero-subtitle"))
	}
	if btn := f.rawStr("buttonText", ""); btn != "" {
		inner.Append(El("a", Text(btn)).
			WithClass("button button-primary").
			WithAttr("href", f.str("buttonURL", "#")))
	}
	return n.Append(inner)
}

func renderAbout(f fields) *Node {
	n := El("section").WithClass("block block-about")
	inner := El("div").WithClass("block-inner")

	if img := f.rawStr("imageURL", ""); img != "" {
		inner.WithClass("with-image image-" + f.str("imagePosition", "left"))
		inner.Append(El("img").WithAttr("src", img).WithAttr("alt", f.rawStr("heading", "")))
	}

	body := El("div").WithClass("about-body")
	body.Append(El("h2", Text(f.str("heading", "About"))))
	body.Append(Raw(richText.Sanitize(f.rawStr("body", ""))))
	return n.Append(inner.Append(body))
}

func renderServices(f fields) *Node {
	n := El("section").WithClass("block block-services")
	inner := El("div").WithClass("block-inner")
	inner.Append(El("h2", Text(f.str("heading", "Services"))))
	if sub := f.rawStr("subheading", ""); sub != "" {
		inner.Append(El("p", Text(sub)).WithClass("services-subheading"))
	}

	grid := El("div").WithClass("services-grid")
	grid.WithStyle("grid-template-columns", "repeat("+strconv.Itoa(f.integer("columns", 3))+", 1fr)")
	for _, item := range f.maps("items") {
		it := fields(item)
		card := El("div").WithClass("service-card")
		if icon := it.rawStr("icon", ""); icon != "" {
			card.Append(El("span", Text(icon)).WithClass("service-icon"))
		}
		card.Append(El("h3", Text(it.str("title", "Service"))))
		card.Append(El("p", Text(it.rawStr("description", ""))))
		grid.Append(card)
	}
	return n.Append(inner.Append(grid))
}

func renderGallery(ctx context.Context, f fields, r Resolver) *Node {
	n := El("section").WithClass("block block-gallery")
	inner := El("div").WithClass("block-inner")
	inner.Append(El("h2", Text(f.str("heading", "Gallery"))))

	grid := El("div").WithClass("gallery-grid")
	grid.WithStyle("grid-template-columns", "repeat("+strconv.Itoa(f.integer("columns", 3))+", 1fr)")

	entities := resolveOrdered(ctx, r, f.str("kind", "project"), f.strings("itemIDs"))
	for _, e := range entities {
		item := El("figure").WithClass("gallery-item").WithAttr("data-entity", e.ID)
		if e.ImageURL != "" {
			item.Append(El("img").WithAttr("src", e.ImageURL).WithAttr("alt", e.Title))
		}
		caption := El("figcaption")
		if e.LinkURL != "" {
			caption.Append(El("a", Text(e.Title)).WithAttr("href", e.LinkURL))
		} else {
			caption.Append(Text(e.Title))
		}
		if e.Summary != "" {
			caption.Append(El("p", Text(e.Summary)))
		}
		item.Append(caption)
		grid.Append(item)
	}
	if len(entities) == 0 {
		grid.Append(El("p", Text("Nothing here yet.")).WithClass("gallery-empty"))
	}
	return n.Append(inner.Append(grid))
}

func renderCTA(f fields) *Node {
	n := El("section").WithClass("block block-cta")
	applyBackground(n, f, ctaDefaultBackground)
	n.WithStyle("color", f.str("textColor", "#ffffff"))

	inner := El("div").WithClass("block-inner")
	inner.Append(El("h2", Text(f.str("heading", "Get in touch"))))
	if btn := f.rawStr("buttonText", ""); btn != "" {
		inner.Append(El("a", Text(btn)).
			WithClass("button button-primary").
			WithAttr("href", f.str("buttonURL", "#")))
	}
	return n.Append(inner)
}

func renderText(f fields) *Node {
	n := El("section").WithClass("block block-text align-" + f.str("align", "left"))
	inner := El("div").WithClass("block-inner")
	inner.Append(Raw(richText.Sanitize(f.rawStr("content", ""))))
	return n.Append(inner)
}

func renderImage(f fields) *Node {
	n := El("section").WithClass("block block-image")
	if f.boolean("fullWidth", false) {
		n.WithClass("full-width")
	}
	fig := El("figure")
	if url := f.rawStr("url", ""); url != "" {
		fig.Append(El("img").WithAttr("src", url).WithAttr("alt", f.rawStr("alt", "")))
	}
	if caption := f.rawStr("caption", ""); caption != "" {
		fig.Append(El("figcaption", Text(caption)))
	}
	return n.Append(fig)
}

func renderSpacer(f fields) *Node {
	return El("div").WithClass("block block-spacer").
		WithStyle("height", px(f.integer("height", 48))).
		WithAttr("aria-hidden", "true")
}

func renderDivider(f fields) *Node {
	return El("hr").WithClass("block block-divider divider-" + f.str("style", "solid")).
		WithStyle("border-color", f.str("color", "#e2e8f0"))
}

func renderColumns(f fields) *Node {
	count := f.integer("count", 2)
	n := El("div").WithClass("block block-columns").
		WithStyle("display", "grid").
		WithStyle("grid-template-columns", "repeat("+strconv.Itoa(count)+", 1fr)").
		WithStyle("gap", px(f.integer("gap", 24)))
	for i := 0; i < count; i++ {
		n.Append(El("div").WithClass("column"))
	}
	return n
}

// renderPlaceholder is the unknown-type fallback. It carries the literal
// tag so a misconfigured page shows what is missing instead of breaking.
func renderPlaceholder(tag string) *Node {
	return El("section",
		El("p", Text("Unknown component type: "+tag)),
	).WithClass("block block-unknown")
}
