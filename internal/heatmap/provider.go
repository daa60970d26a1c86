package heatmap

import (
	"math"
	"math/rand"
)

// Provider produces the saliency field for each frame.
type Provider interface {
	Next(tick int) *Field
}

// Static returns the same field every frame.
type Static struct {
	field *Field
}

func NewStatic(f *Field) *Static { return &Static{field: f} }

func (s *Static) Next(int) *Field { return s.field }

// NewUniform is a flat field of value v.
func NewUniform(rows, cols int, v float64) *Static {
	f := New(rows, cols)
	f.Fill(v)
	return NewStatic(f)
}

// Blob is a Gaussian bump of saliency.
type Blob struct {
	Row, Col float64
	VRow     float64
	VCol     float64
	Sigma    float64
	Weight   float64
}

// Blobs renders a set of Gaussian bumps that drift across the field and
// bounce off its edges. The same seed yields the same sequence of frames.
type Blobs struct {
	blobs []Blob
	field *Field
	tick  int
}

// NewBlobs places count blobs at random. A negative count means none.
func NewBlobs(rows, cols, count int, drift float64, seed int64) *Blobs {
	count = max(count, 0)
	rng := rand.New(rand.NewSource(seed))
	blobs := make([]Blob, count)
	for i := range blobs {
		angle := rng.Float64() * 2 * math.Pi
		blobs[i] = Blob{
			Row:    rng.Float64() * float64(rows),
			Col:    rng.Float64() * float64(cols),
			VRow:   math.Sin(angle) * drift,
			VCol:   math.Cos(angle) * drift,
			Sigma:  float64(min(rows, cols)) * (0.05 + 0.1*rng.Float64()),
			Weight: 0.5 + rng.Float64(),
		}
	}
	b := &Blobs{blobs: blobs, field: New(rows, cols)}
	b.render()
	return b
}

// Next moves the blobs forward to tick. Earlier ticks return the latest frame.
func (b *Blobs) Next(tick int) *Field {
	if tick <= b.tick {
		return b.field
	}
	for b.tick < tick {
		b.advance()
		b.tick++
	}
	b.render()
	return b.field
}

func (b *Blobs) Blobs() []Blob {
	out := make([]Blob, len(b.blobs))
	copy(out, b.blobs)
	return out
}

func (b *Blobs) advance() {
	rows, cols := float64(b.field.rows), float64(b.field.cols)
	for i := range b.blobs {
		bl := &b.blobs[i]
		bl.Row += bl.VRow
		bl.Col += bl.VCol
		if bl.Row < 0 || bl.Row >= rows {
			bl.VRow = -bl.VRow
			bl.Row = math.Max(0, math.Min(bl.Row, rows-1))
		}
		if bl.Col < 0 || bl.Col >= cols {
			bl.VCol = -bl.VCol
			bl.Col = math.Max(0, math.Min(bl.Col, cols-1))
		}
	}
}

func (b *Blobs) render() {
	f := b.field
	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.cols; c++ {
			v := 0.0
			for _, bl := range b.blobs {
				dr := float64(r) - bl.Row
				dc := float64(c) - bl.Col
				v += bl.Weight * math.Exp(-(dr*dr+dc*dc)/(2*bl.Sigma*bl.Sigma))
			}
			f.data[r*f.cols+c] = v
		}
	}
}
