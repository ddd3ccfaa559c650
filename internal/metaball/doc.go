// Package metaball provides the scalar-field simulation behind the renderer.
//
// A scene is a fixed set of circular field sources:
//
//   - [Blob]: moving source with position, velocity and radius
//   - [FieldAt]: linear superposition of every blob's r²/d² contribution
//   - [Scene]: owns the blobs, advances their motion and keeps them in bounds
//   - [Motion]: how blobs move each tick ([Bounce] or [Orbit])
//
// # Example
//
//	s, _ := metaball.Random(metaball.DefaultOptions(), 42)
//	s.Advance(0.05)
//	v := s.FieldAt(40, 17)
//
// # Thread Safety
//
// A Scene is owned by a single goroutine. FieldAt only reads blob state, so
// concurrent FieldAt calls are safe as long as no Advance runs at the same time.
package metaball
