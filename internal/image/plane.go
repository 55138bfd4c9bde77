// Package image holds the generic dense-array containers shared by the
// modular decoder, the frame headers, and the render pipeline: Plane,
// Image3, and Rect. It is grounded on the teacher's habit (internal/mct,
// internal/codestream) of keeping data containers as plain structs with
// small accessor methods rather than a class hierarchy.
package image

import "unsafe"

// Plane is a dense row-major 2-D array with an explicit stride, so rows
// can be over-allocated to a SIMD-friendly alignment without changing the
// logical width.
type Plane[T any] struct {
	xsize, ysize int
	stride       int
	data         []T
}

// NewPlane allocates a Plane of the given logical size. stride is rounded
// up so each row starts on a 64-byte-aligned element boundary when T's
// size divides 64, which covers the int32/float32 cases this decoder
// uses; for other sizes stride simply equals xsize.
func NewPlane[T any](xsize, ysize int) *Plane[T] {
	stride := xsize
	var zero T
	if size := int(unsafe.Sizeof(zero)); size > 0 && 64%size == 0 {
		perLine := 64 / size
		stride = (xsize + perLine - 1) / perLine * perLine
	}
	p := &Plane[T]{xsize: xsize, ysize: ysize, stride: stride}
	if ysize > 0 {
		p.data = make([]T, stride*ysize)
	}
	return p
}

func (p *Plane[T]) XSize() int { return p.xsize }
func (p *Plane[T]) YSize() int { return p.ysize }
func (p *Plane[T]) Stride() int { return p.stride }

// Row returns a mutable view of row y, exactly xsize elements long.
func (p *Plane[T]) Row(y int) []T {
	start := y * p.stride
	return p.data[start : start+p.xsize]
}

// ConstRow aliases the same storage as Row; modular decode never needs
// true immutability, so this is Row by another name kept for call-site
// clarity (reading neighbor rows vs. writing the current one).
func (p *Plane[T]) ConstRow(y int) []T {
	return p.Row(y)
}

// At and Set give direct (x, y) pixel access for code that doesn't need a
// whole-row loop.
func (p *Plane[T]) At(x, y int) T {
	return p.data[y*p.stride+x]
}

func (p *Plane[T]) Set(x, y int, v T) {
	p.data[y*p.stride+x] = v
}

// Image3 bundles three same-sized planes, e.g. the three modular color
// channels or an RGB output buffer.
type Image3[T any] struct {
	Planes [3]*Plane[T]
}

// NewImage3 allocates three equally sized planes.
func NewImage3[T any](xsize, ysize int) *Image3[T] {
	return &Image3[T]{Planes: [3]*Plane[T]{
		NewPlane[T](xsize, ysize),
		NewPlane[T](xsize, ysize),
		NewPlane[T](xsize, ysize),
	}}
}

func (im *Image3[T]) Plane(c int) *Plane[T] { return im.Planes[c] }
func (im *Image3[T]) XSize() int             { return im.Planes[0].XSize() }
func (im *Image3[T]) YSize() int             { return im.Planes[0].YSize() }
