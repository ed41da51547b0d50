package registry

// Builtin returns the registry holding the standard landing-page palette.
// Category order (Sections, Content, Layout) and type order within each
// category match registration order here; the palette renders exactly this
// sequence.
func Builtin() *Registry {
	r := New()

	r.MustRegister(Descriptor{
		TypeTag:     "hero",
		DisplayName: "Hero",
		Category:    "Sections",
		Enabled:     true,
		Icon:        "layout-hero",
		ColorToken:  "indigo",
		DefaultData: map[string]any{
			"title":             "Welcome to your new page",
			"subtitle":          "Tell visitors what you do in one sentence.",
			"buttonText":        "Get started",
			"buttonURL":         "#contact",
			"backgroundType":    "color",
			"backgroundColor":   "#1a1a2e",
			"backgroundImage":   "",
			"gradientDirection": "to right",
			"gradientStops":     []any{"#0f2027", "#2c5364"},
			"textColor":         "#ffffff",
		},
	})
	r.MustRegister(Descriptor{
		TypeTag:     "about",
		DisplayName: "About",
		Category:    "Sections",
		Enabled:     true,
		Icon:        "user-circle",
		ColorToken:  "teal",
		DefaultData: map[string]any{
			"heading":       "About us",
			"body":          "<p>Introduce yourself or your company here.</p>",
			"imageURL":      "",
			"imagePosition": "left",
		},
	})
	r.MustRegister(Descriptor{
		TypeTag:     "services",
		DisplayName: "Services",
		Category:    "Sections",
		Enabled:     true,
		Icon:        "grid",
		ColorToken:  "amber",
		DefaultData: map[string]any{
			"heading":    "What we offer",
			"subheading": "",
			"columns":    3,
			"items": []any{
				map[string]any{"title": "Service one", "description": "Describe the service.", "icon": "star"},
				map[string]any{"title": "Service two", "description": "Describe the service.", "icon": "bolt"},
				map[string]any{"title": "Service three", "description": "Describe the service.", "icon": "heart"},
			},
		},
	})
	r.MustRegister(Descriptor{
		TypeTag:     "gallery",
		DisplayName: "Gallery",
		Category:    "Sections",
		Enabled:     true,
		Icon:        "photo",
		ColorToken:  "rose",
		DefaultData: map[string]any{
			"heading": "Our work",
			"kind":    "project",
			"itemIDs": []any{},
			"columns": 3,
		},
	})
	r.MustRegister(Descriptor{
		TypeTag:     "cta",
		DisplayName: "Call to Action",
		Category:    "Sections",
		Enabled:     true,
		Icon:        "megaphone",
		ColorToken:  "violet",
		DefaultData: map[string]any{
			"heading":           "Ready to get started?",
			"buttonText":        "Contact us",
			"buttonURL":         "#contact",
			"backgroundType":    "gradient",
			"backgroundColor":   "#312e81",
			"backgroundImage":   "",
			"gradientDirection": "to right",
			"gradientStops":     []any{"#4f46e5", "#9333ea"},
			"textColor":         "#ffffff",
		},
	})

	r.MustRegister(Descriptor{
		TypeTag:     "text",
		DisplayName: "Text",
		Category:    "Content",
		Enabled:     true,
		Icon:        "text",
		ColorToken:  "slate",
		DefaultData: map[string]any{
			"content": "<p>Write something here.</p>",
			"align":   "left",
		},
	})
	r.MustRegister(Descriptor{
		TypeTag:     "image",
		DisplayName: "Image",
		Category:    "Content",
		Enabled:     true,
		Icon:        "image",
		ColorToken:  "sky",
		DefaultData: map[string]any{
			"url":       "",
			"alt":       "",
			"caption":   "",
			"fullWidth": false,
		},
	})
	// Video embeds are cataloged but not instantiable yet; the renderer
	// has no sandboxed embed path for them.
	r.MustRegister(Descriptor{
		TypeTag:     "video",
		DisplayName: "Video",
		Category:    "Content",
		Enabled:     false,
		Icon:        "film",
		ColorToken:  "stone",
		DefaultData: map[string]any{
			"url":      "",
			"autoplay": false,
		},
	})

	r.MustRegister(Descriptor{
		TypeTag:     "spacer",
		DisplayName: "Spacer",
		Category:    "Layout",
		Enabled:     true,
		Icon:        "arrows-vertical",
		ColorToken:  "gray",
		DefaultData: map[string]any{
			"height": 48,
		},
	})
	r.MustRegister(Descriptor{
		TypeTag:     "divider",
		DisplayName: "Divider",
		Category:    "Layout",
		Enabled:     true,
		Icon:        "minus",
		ColorToken:  "gray",
		DefaultData: map[string]any{
			"style": "solid",
			"color": "#e2e8f0",
		},
	})
	r.MustRegister(Descriptor{
		TypeTag:     "columns",
		DisplayName: "Columns",
		Category:    "Layout",
		Enabled:     true,
		Icon:        "columns",
		ColorToken:  "gray",
		DefaultData: map[string]any{
			"count": 2,
			"gap":   24,
		},
	})

	return r
}
