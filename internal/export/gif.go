package export

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/metaballs/internal/render"
)

var ErrNoFrames = errors.New("export: no frames recorded")

const rampSteps = 16

// Recorder collects frames as paletted images, one solid block per cell
// shaded by intensity.
type Recorder struct {
	CellW, CellH int
	// Delay between frames in 100ths of a second.
	Delay   int
	palette color.Palette
	frames  []*image.Paletted
	// canvas size in cells, fixed by the first capture
	rows, cols int
}

func NewRecorder(ramp render.HueRamp, delay int) *Recorder {
	p := color.Palette{color.RGBA{0x0a, 0x0a, 0x0a, 0xff}}
	for i := 0; i < rampSteps; i++ {
		p = append(p, ramp.Color(float64(i)/float64(rampSteps-1)))
	}
	if delay <= 0 {
		delay = 2
	}
	return &Recorder{CellW: 4, CellH: 8, Delay: delay, palette: p}
}

// Capture appends f. Blank cells stay background. Every image has the size
// of the first captured frame: larger frames are clipped, smaller ones are
// padded with background.
func (r *Recorder) Capture(f *render.Frame) {
	if len(r.frames) == 0 {
		r.rows, r.cols = f.Rows, f.Cols
	}
	img := image.NewPaletted(image.Rect(0, 0, r.cols*r.CellW, r.rows*r.CellH), r.palette)
	for row := 0; row < min(f.Rows, r.rows); row++ {
		for col := 0; col < min(f.Cols, r.cols); col++ {
			c := f.At(row, col)
			if c.Glyph == ' ' {
				continue
			}
			idx := uint8(1 + int(c.Intensity*float64(rampSteps-1)+0.5))
			if idx > rampSteps {
				idx = rampSteps
			}
			baseX, baseY := col*r.CellW, row*r.CellH
			for py := 0; py < r.CellH; py++ {
				for px := 0; px < r.CellW; px++ {
					img.SetColorIndex(baseX+px, baseY+py, idx)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() {
	r.frames = nil
	r.rows, r.cols = 0, 0
}

// Encode writes the recording as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Encode(f)
}
