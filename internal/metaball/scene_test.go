package metaball

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Scene", func() {
	bounds := Bounds{Width: 40, Height: 20}

	Describe("construction", func() {
		It("rejects an empty blob set", func() {
			_, err := New(bounds, 1, nil, nil)
			Expect(err).To(MatchError(ErrNoBlobs))
		})

		It("rejects non-positive radii", func() {
			_, err := New(bounds, 1, []Blob{{X: 1, Y: 1, Radius: 0}}, nil)
			Expect(err).To(MatchError(ErrInvalidRadius))
		})

		It("rejects bad bounds and thresholds", func() {
			blobs := []Blob{{Radius: 1}}
			_, err := New(Bounds{Width: 0, Height: 5}, 1, blobs, nil)
			Expect(err).To(MatchError(ErrInvalidBounds))
			_, err = New(bounds, -1, blobs, nil)
			Expect(err).To(MatchError(ErrInvalidThreshold))
			_, err = New(bounds, math.NaN(), blobs, nil)
			Expect(err).To(MatchError(ErrInvalidThreshold))
		})

		It("defaults to bounce motion", func() {
			s, err := New(bounds, 1, []Blob{{X: 5, Y: 5, Radius: 2}}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Motion().Name()).To(Equal("bounce"))
		})

		It("copies the caller's blobs", func() {
			blobs := []Blob{{X: 5, Y: 5, Radius: 2}}
			s, err := New(bounds, 1, blobs, nil)
			Expect(err).NotTo(HaveOccurred())
			blobs[0].X = 30
			Expect(s.Blobs()[0].X).To(Equal(5.0))
		})
	})

	Describe("Advance", func() {
		It("integrates velocity", func() {
			s, err := New(bounds, 1, []Blob{{X: 10, Y: 10, VX: 2, VY: -4, Radius: 2}}, nil)
			Expect(err).NotTo(HaveOccurred())
			s.Advance(0.5)
			b := s.Blobs()[0]
			Expect(b.X).To(BeNumerically("~", 11, 1e-12))
			Expect(b.Y).To(BeNumerically("~", 8, 1e-12))
			Expect(s.Time()).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("reflects a blob crossing a wall", func() {
			s, err := New(bounds, 1, []Blob{{X: 39, Y: 10, VX: 5, VY: 0, Radius: 2}}, nil)
			Expect(err).NotTo(HaveOccurred())
			s.Advance(1)
			b := s.Blobs()[0]
			Expect(b.X).To(Equal(40.0))
			Expect(b.VX).To(Equal(-5.0))
		})

		It("never lets a blob leave the plane", func() {
			s, err := Random(Options{
				Bounds: bounds, Threshold: 1, Count: 8,
				MinRadius: 1, MaxRadius: 3, MinSpeed: 20, MaxSpeed: 60,
			}, 7)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 2000; i++ {
				s.Advance(0.05)
				for _, b := range s.Blobs() {
					Expect(bounds.Contains(b.X, b.Y)).To(BeTrue(), "blob escaped at tick %d: (%v, %v)", i, b.X, b.Y)
				}
			}
		})

		It("treats bad dt as zero", func() {
			s, err := New(bounds, 1, []Blob{{X: 10, Y: 10, VX: 2, VY: 2, Radius: 2}}, nil)
			Expect(err).NotTo(HaveOccurred())
			for _, dt := range []float64{-1, math.NaN(), math.Inf(1)} {
				s.Advance(dt)
			}
			b := s.Blobs()[0]
			Expect(b.X).To(Equal(10.0))
			Expect(b.Y).To(Equal(10.0))
		})

		It("is deterministic for a fixed seed and dt sequence", func() {
			run := func() []Blob {
				s, err := Random(DefaultOptions(), 99)
				Expect(err).NotTo(HaveOccurred())
				for _, dt := range []float64{0.01, 0.05, 0.033, 0.1, 0.016} {
					s.Advance(dt)
				}
				return s.Blobs()
			}
			Expect(run()).To(Equal(run()))
		})
	})

	Describe("FieldAt", func() {
		It("matches the superposition of its blobs", func() {
			s, err := Random(DefaultOptions(), 3)
			Expect(err).NotTo(HaveOccurred())
			blobs := s.Blobs()
			for _, p := range [][2]float64{{1, 1}, {40, 17}, {79.5, 34.5}} {
				want := 0.0
				for i := range blobs {
					want += blobs[i].FieldAt(p[0], p[1])
				}
				Expect(s.FieldAt(p[0], p[1])).To(Equal(want))
			}
		})
	})

	Describe("Reset and threshold", func() {
		It("restores the initial blobs", func() {
			s, err := Random(DefaultOptions(), 11)
			Expect(err).NotTo(HaveOccurred())
			start := s.Blobs()
			s.Advance(0.5)
			Expect(s.Blobs()).NotTo(Equal(start))
			s.Reset()
			Expect(s.Blobs()).To(Equal(start))
			Expect(s.Time()).To(BeZero())
		})

		It("ignores invalid thresholds", func() {
			s, err := Random(DefaultOptions(), 1)
			Expect(err).NotTo(HaveOccurred())
			s.SetThreshold(2.5)
			Expect(s.Threshold()).To(Equal(2.5))
			s.SetThreshold(0)
			s.SetThreshold(math.NaN())
			Expect(s.Threshold()).To(Equal(2.5))
		})
	})

	Describe("Orbit motion", func() {
		It("keeps the classic scene in bounds", func() {
			b := Bounds{Width: 80, Height: 35}
			s, err := Classic(b, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(len(ClassicRadii)))
			for i := 0; i < 500; i++ {
				s.Advance(0.05)
				for _, bl := range s.Blobs() {
					Expect(b.Contains(bl.X, bl.Y)).To(BeTrue())
				}
			}
		})

		It("puts the core blob at the wobble position", func() {
			b := Bounds{Width: 80, Height: 35}
			s, err := Classic(b, 1)
			Expect(err).NotTo(HaveOccurred())
			s.Advance(1)
			core := s.Blobs()[0]
			Expect(core.X).To(BeNumerically("~", 40+math.Sin(0.5)*8, 1e-9))
			Expect(core.Y).To(BeNumerically("~", 17.5+math.Cos(0.7)*4, 1e-9))
		})

		It("resolves motion names", func() {
			Expect(MotionByName("orbit").Name()).To(Equal("orbit"))
			Expect(MotionByName("bounce").Name()).To(Equal("bounce"))
			Expect(MotionByName("???").Name()).To(Equal("bounce"))
		})
	})
})
