package dashboard

import (
	"tableflip.dev/outbreak/pkg/chart"
	"tableflip.dev/outbreak/pkg/status"
)

// View is a Renderer that keeps the latest output of every surface. The
// one-shot commands print from it once the controller has settled.
type View struct {
	Cards   []status.Card
	Banner  status.Banner
	Panels  Panels
	Figures map[Surface]chart.Figure
	Err     error
}

func NewView() *View {
	return &View{Figures: map[Surface]chart.Figure{}}
}

func (v *View) RenderStatus(cards []status.Card, banner status.Banner) {
	v.Cards = cards
	v.Banner = banner
}

func (v *View) RenderPanels(p Panels) {
	v.Panels = p
	if p.Loading {
		v.Err = nil
	}
}

func (v *View) RenderLayers(s Surface, f chart.Figure) {
	v.Figures[s] = f
}

func (v *View) RenderError(err error) {
	v.Err = err
}

// Figure returns the figure on s, if anything is drawn there.
func (v *View) Figure(s Surface) (chart.Figure, bool) {
	f, ok := v.Figures[s]
	if !ok || len(f.Layers) == 0 {
		return chart.Figure{}, false
	}
	return f, true
}
