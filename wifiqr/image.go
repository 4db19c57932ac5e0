package wifiqr

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the default side length of the QR code in pixels.
const DefaultSize = 256

// Render composes the card: the SSID above the code and the password below
// it, on a white background with margins.
func Render(n Network, size int) (image.Image, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultSize
	}
	qr, err := qrcode.New(n.Payload(), qrcode.Medium)
	if err != nil {
		return nil, err
	}
	code := qr.Image(size)

	scale := max(1, size/128)
	margin := 4 * scale
	gap := 2 * scale

	title := textImage(n.SSID, scale)
	var pass image.Image
	if n.Security != NoPass {
		pass = textImage("Password: "+n.Password, scale)
	}

	width := code.Bounds().Dx()
	height := code.Bounds().Dy() + title.Bounds().Dy() + gap
	width = max(width, title.Bounds().Dx())
	if pass != nil {
		width = max(width, pass.Bounds().Dx())
		height += pass.Bounds().Dy() + gap
	}
	width += 2 * margin
	height += 2 * margin

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	y := margin
	y = paste(canvas, title, y, width)
	y += gap
	y = paste(canvas, code, y, width)
	if pass != nil {
		y += gap
		paste(canvas, pass, y, width)
	}
	return canvas, nil
}

// WritePNG renders the card and encodes it to w.
func WritePNG(w io.Writer, n Network, size int) error {
	img, err := Render(n, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// paste draws src horizontally centred at row y and returns the row below it.
func paste(dst *image.RGBA, src image.Image, y, width int) int {
	b := src.Bounds()
	x := (width - b.Dx()) / 2
	draw.Draw(dst, image.Rect(x, y, x+b.Dx(), y+b.Dy()), src, b.Min, draw.Over)
	return y + b.Dy()
}

// textImage draws s in the fixed 7x13 face and scales it up by scale.
func textImage(s string, scale int) image.Image {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	h := face.Metrics().Height.Ceil()
	small := image.NewRGBA(image.Rect(0, 0, max(w, 1), h))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	if scale == 1 {
		return small
	}
	big := image.NewRGBA(image.Rect(0, 0, small.Bounds().Dx()*scale, h*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)
	return big
}
