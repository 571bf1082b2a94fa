package scale

// Margin is the room around the plot area, in pixels.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Dimensions is the size of a chart, in pixels. The plot area is what
// remains after removing the margins.
type Dimensions struct {
	Width  float64
	Height float64
	Margin Margin
}

// LineChart returns the dimensions of the line charts for the given
// container width.
func LineChart(width float64) Dimensions {
	return Dimensions{
		Width:  width,
		Height: 535,
		Margin: Margin{Top: 20, Right: 35, Bottom: 40, Left: 15},
	}
}

func (d Dimensions) BoundedWidth() float64 {
	return d.Width - d.Margin.Left - d.Margin.Right
}

func (d Dimensions) BoundedHeight() float64 {
	return d.Height - d.Margin.Top - d.Margin.Bottom
}
