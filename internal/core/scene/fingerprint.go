package scene

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/shapes"
	"github.com/zeusync/roomscan/pkg/generic"
)

var digests = generic.NewPool(xxhash.New, (*xxhash.Digest).Reset)

// Fingerprint hashes every shape's kind, id and current geometry in insertion
// order. Any insertion, removal or rotation changes the result.
func (s *Scene) Fingerprint() uint64 {
	digest := digests.Get()
	defer digests.Put(digest)

	buf := make([]byte, 0, 64)
	for _, shape := range s.snapshot() {
		buf = appendShape(buf[:0], shape)
		_, _ = digest.Write(buf)
	}
	return digest.Sum64()
}

func appendShape(buf []byte, shape shapes.Shape) []byte {
	buf = append(buf, byte(shape.Kind()))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(shape.ID()))

	switch sh := shape.(type) {
	case *shapes.Point:
		buf = appendFloats(buf, sh.X, sh.Y)
	case *shapes.Rectangle:
		buf = appendVectors(buf, sh.Vertices()...)
	case *shapes.Polygon:
		buf = appendVectors(buf, sh.Vertices()...)
	case *shapes.HemiPlane:
		buf = appendVectors(buf, sh.P0, sh.Direction)
	case *shapes.Segment:
		buf = appendVectors(buf, sh.P0, sh.Direction)
		buf = appendFloats(buf, sh.Length)
		if sh.CanCollide() {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return buf
}

func appendVectors(buf []byte, vs ...geometry.Vector2) []byte {
	for _, v := range vs {
		buf = appendFloats(buf, v.X, v.Y)
	}
	return buf
}

func appendFloats(buf []byte, fs ...float64) []byte {
	for _, f := range fs {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	return buf
}
