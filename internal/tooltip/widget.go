package tooltip

import "sync"

// Event is the activation event a tooltip was shown for. The resolver treats
// it as opaque and hands it back to the widget when repositioning.
type Event struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// Widget is the external tooltip component. It owns visibility and layout;
// the resolver only pushes content into it.
type Widget interface {
	SetContent(html, classes string)
	// Reposition re-anchors the tooltip for ev. modal=false leaves focus alone.
	Reposition(ev Event, modal bool)
	Visible() bool
}

// Frame is an in-memory Widget. It backs offline rendering and tests.
type Frame struct {
	mu          sync.Mutex
	content     string
	classes     string
	visible     bool
	lastEvent   Event
	repositions int
}

// NewFrame returns a hidden frame showing opts' initial content.
func NewFrame(opts Options) *Frame {
	return &Frame{content: opts.Content, classes: opts.Style.Classes}
}

// Show marks the frame visible.
func (f *Frame) Show() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = true
}

// Hide marks the frame hidden.
func (f *Frame) Hide() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = false
}

func (f *Frame) SetContent(html, classes string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = html
	f.classes = classes
}

func (f *Frame) Reposition(ev Event, _ bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEvent = ev
	f.repositions++
}

func (f *Frame) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

// FrameState is a point-in-time copy of a Frame.
type FrameState struct {
	Content     string `json:"content"`
	Classes     string `json:"classes"`
	Visible     bool   `json:"visible"`
	LastEvent   Event  `json:"last_event"`
	Repositions int    `json:"repositions"`
}

// State returns a snapshot of the frame.
func (f *Frame) State() FrameState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FrameState{
		Content:     f.content,
		Classes:     f.classes,
		Visible:     f.visible,
		LastEvent:   f.lastEvent,
		Repositions: f.repositions,
	}
}
