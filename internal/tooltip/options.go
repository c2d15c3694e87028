package tooltip

// Widget option defaults, matching the front-end's qtip configuration.
const (
	DefaultMy = "bottom right"
	DefaultAt = "top left"

	ShowEvent      = "mouseover"
	HideEvent      = "mouseleave"
	HideDelayMilli = 100
	MaxHeight      = 300

	// ClassesEvidence is applied to every tooltip until content arrives.
	ClassesEvidence = "qtip-light qtip-shadow gene-evidence-qtip"
	// ClassesLevel replaces ClassesEvidence once a level description is shown.
	ClassesLevel = "qtip-light qtip-shadow"

	// LoadingPlaceholder is shown while content is being resolved.
	LoadingPlaceholder = `<img src="resources/images/loader.gif" />`
	// ErrorContent replaces the placeholder when resolution fails.
	ErrorContent = `<span class="text-muted">References are unavailable right now.</span>`
)

// Options is the configuration handed to the external tooltip widget.
type Options struct {
	Content  string   `json:"content"`
	Position Position `json:"position"`
	Style    Style    `json:"style"`
	Show     string   `json:"show"`
	Hide     Hide     `json:"hide"`
}

// Position anchors the tooltip relative to its target.
type Position struct {
	My       string `json:"my"`
	At       string `json:"at"`
	Viewport bool   `json:"viewport"`
}

// Style sets CSS classes and size limits.
type Style struct {
	Classes   string `json:"classes"`
	MaxHeight int    `json:"max-height"`
}

// Hide configures when the tooltip disappears.
type Hide struct {
	Event string `json:"event"`
	Fixed bool   `json:"fixed"`
	Delay int    `json:"delay"`
}

func newOptions(content, my, at string) Options {
	if my == "" {
		my = DefaultMy
	}
	if at == "" {
		at = DefaultAt
	}
	return Options{
		Content: content,
		Position: Position{
			My:       my,
			At:       at,
			Viewport: true,
		},
		Style: Style{
			Classes:   ClassesEvidence,
			MaxHeight: MaxHeight,
		},
		Show: ShowEvent,
		Hide: Hide{
			Event: HideEvent,
			Fixed: true,
			Delay: HideDelayMilli,
		},
	}
}
