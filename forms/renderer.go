package forms

import "maps"

// Renderer paints one kind of control. Renderers are stateless beyond their
// layout constants and are shared by every control of their kind.
type Renderer interface {
	Render(el Element, e *PaintEventArgs)
}

// RendererFunc adapts a typed paint function to Renderer. Elements of any
// other type are skipped.
type RendererFunc[T Element] func(T, *PaintEventArgs)

func (f RendererFunc[T]) Render(el Element, e *PaintEventArgs) {
	if t, ok := el.(T); ok {
		f(t, e)
	}
}

// RendererRegistry maps control kinds to renderers. Each Application owns one.
type RendererRegistry struct {
	byKind   map[ControlKind]Renderer
	fallback Renderer
}

// NewRendererRegistry creates a registry with the built-in renderers.
func NewRendererRegistry() *RendererRegistry {
	r := &RendererRegistry{
		byKind:   make(map[ControlKind]Renderer),
		fallback: ControlRenderer{},
	}
	r.Register(KindControl, ControlRenderer{})
	r.Register(KindPanel, ControlRenderer{})
	r.Register(KindPopup, ControlRenderer{})
	r.Register(KindForm, FormRenderer{})
	r.Register(KindLabel, LabelRenderer{})
	r.Register(KindButton, ButtonRenderer{})
	r.Register(KindCheckBox, CheckBoxRenderer{})
	r.Register(KindRadioButton, NewRadioButtonRenderer())
	r.Register(KindComboBox, ComboBoxRenderer{})
	r.Register(KindListBox, ListRenderer{})
	r.Register(KindMenu, MenuRenderer{})
	return r
}

// Register replaces the renderer for kind.
func (r *RendererRegistry) Register(kind ControlKind, rr Renderer) {
	r.byKind[kind] = rr
}

// Lookup returns the renderer for kind and whether one was registered.
func (r *RendererRegistry) Lookup(kind ControlKind) (Renderer, bool) {
	rr, ok := r.byKind[kind]
	return rr, ok
}

// Kinds returns the registered kinds.
func (r *RendererRegistry) Kinds() []ControlKind {
	var kinds []ControlKind
	for k := range maps.Keys(r.byKind) {
		kinds = append(kinds, k)
	}
	return kinds
}

// Render paints el with the renderer registered for its kind, falling back
// to the plain control renderer.
func (r *RendererRegistry) Render(el Element, e *PaintEventArgs) {
	rr, ok := r.byKind[el.Base().Kind()]
	if !ok {
		rr = r.fallback
	}
	rr.Render(el, e)
}
