package preview

import "fmt"

// Viewport is the device width a preview is rendered at.
type Viewport string

const (
	ViewportDesktop Viewport = "desktop"
	ViewportTablet  Viewport = "tablet"
	ViewportMobile  Viewport = "mobile"
)

var viewportWidths = map[Viewport]string{
	ViewportDesktop: "100%",
	ViewportTablet:  "768px",
	ViewportMobile:  "375px",
}

// Width returns the CSS width of the viewport.
func (v Viewport) Width() string {
	return viewportWidths[v]
}

// ParseViewport maps "" to desktop and rejects unknown names.
func ParseViewport(s string) (Viewport, error) {
	if s == "" {
		return ViewportDesktop, nil
	}
	v := Viewport(s)
	if _, ok := viewportWidths[v]; !ok {
		return "", fmt.Errorf("unknown viewport %q", s)
	}
	return v, nil
}
