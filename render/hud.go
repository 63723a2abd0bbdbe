package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// HUD draws a translucent panel of text lines using a TrueType face, used
// for the statistics shown in the corner of the output stream
type HUD struct {
	face font.Face
	// pad is the spacing in pixels around the text
	pad int
	// Opacity of the panel background from 0 to 1
	Opacity float64
}

// NewHUD returns a HUD rendering text with the Go Regular font at size
// points
func NewHUD(size float64) (*HUD, error) {

	f, err := opentype.Parse(goregular.TTF)

	if err != nil {
		return nil, fmt.Errorf("error parsing font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	if err != nil {
		return nil, fmt.Errorf("error creating font face: %w", err)
	}

	return &HUD{
		face:    face,
		pad:     6,
		Opacity: 0.6,
	}, nil
}

// PanelSize returns the size in pixels of the panel needed for lines
func (h *HUD) PanelSize(lines []string) image.Point {

	metrics := h.face.Metrics()
	lineHeight := metrics.Height.Ceil()

	width := 0

	for _, line := range lines {
		if w := font.MeasureString(h.face, line).Ceil(); w > width {
			width = w
		}
	}

	return image.Pt(width+2*h.pad, lineHeight*len(lines)+2*h.pad)
}

// Draw renders the lines onto img with the panel's top left corner at
// origin.  The panel is cropped to the image bounds
func (h *HUD) Draw(img *gocv.Mat, lines []string, origin image.Point) error {

	if len(lines) == 0 {
		return nil
	}

	size := h.PanelSize(lines)

	// crop panel to the image
	area := image.Rectangle{Min: origin, Max: origin.Add(size)}.
		Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))

	if area.Empty() {
		return nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	ascent := h.face.Metrics().Ascent.Ceil()
	lineHeight := h.face.Metrics().Height.Ceil()

	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.White),
		Face: h.face,
	}

	for i, line := range lines {
		dr.Dot = fixed.Point26_6{
			X: fixed.I(h.pad),
			Y: fixed.I(h.pad + ascent + i*lineHeight),
		}
		dr.DrawString(line)
	}

	panelRGBA, err := gocv.NewMatFromBytes(area.Dy(), area.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)

	if err != nil {
		return fmt.Errorf("error creating panel mat: %w", err)
	}

	defer panelRGBA.Close()

	panel := gocv.NewMat()
	defer panel.Close()

	gocv.CvtColor(panelRGBA, &panel, gocv.ColorRGBAToBGR)

	// blend the panel over the region, which shares memory with img
	region := img.Region(area)
	defer region.Close()

	gocv.AddWeighted(region, 1-h.Opacity, panel, h.Opacity, 0, &region)

	return nil
}

// Close releases the font face
func (h *HUD) Close() error {
	return h.face.Close()
}
