package saccade_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gazesim/internal/heatmap"
	"github.com/san-kum/gazesim/internal/saccade"
)

var _ = Describe("Engine", func() {
	var (
		clock *saccade.ManualClock
		field *heatmap.Field
	)

	newEngine := func(points int, policy saccade.PolicyKind) *saccade.Engine {
		e, err := saccade.New(
			saccade.Config{PointCount: points, Policy: policy},
			saccade.WithRand(rand.New(rand.NewSource(GinkgoRandomSeed()))),
			saccade.WithClock(clock),
		)
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	BeforeEach(func() {
		clock = &saccade.ManualClock{}
		field = heatmap.NewBlobs(60, 80, 4, 0, 17).Next(0)
	})

	It("returns one point per tracked index on every tick", func() {
		e := newEngine(3, saccade.PolicyConstant)
		for i := 0; i < 25; i++ {
			points, err := e.Update(field)
			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(HaveLen(3))
		}
		Expect(e.PointCount()).To(Equal(3))
	})

	It("keeps every point inside the field", func() {
		e := newEngine(5, saccade.PolicySaliency)
		for i := 0; i < 100; i++ {
			points, err := e.Update(field)
			Expect(err).NotTo(HaveOccurred())
			for _, p := range points {
				Expect(p.Row).To(BeNumerically(">=", 0))
				Expect(p.Row).To(BeNumerically("<", field.Rows()))
				Expect(p.Col).To(BeNumerically(">=", 0))
				Expect(p.Col).To(BeNumerically("<", field.Cols()))
			}
			for _, g := range e.Goals() {
				Expect(g.Row).To(BeNumerically("<", field.Rows()))
				Expect(g.Col).To(BeNumerically("<", field.Cols()))
			}
		}
	})

	It("rejects a field whose shape changed", func() {
		e := newEngine(1, saccade.PolicyConstant)
		_, err := e.Update(field)
		Expect(err).NotTo(HaveOccurred())

		_, err = e.Update(heatmap.New(10, 10))
		Expect(err).To(MatchError(saccade.ErrShapeMismatch))
	})

	Context("with the saliency policy", func() {
		It("never lowers the saliency under a goal", func() {
			e := newEngine(4, saccade.PolicySaliency)
			_, err := e.Update(field)
			Expect(err).NotTo(HaveOccurred())

			prev := e.Goals()
			for i := 0; i < 30; i++ {
				_, err := e.Update(field)
				Expect(err).NotTo(HaveOccurred())
				for j, g := range e.Goals() {
					Expect(field.At(g.Row, g.Col)).To(BeNumerically(">=", field.At(prev[j].Row, prev[j].Col)))
				}
				prev = e.Goals()
			}
		})
	})

	Context("with the random policy", func() {
		It("holds goals until the interval elapses", func() {
			e := newEngine(2, saccade.PolicyRandom)
			_, err := e.Update(field)
			Expect(err).NotTo(HaveOccurred())
			goals := e.Goals()

			for _, at := range []time.Duration{time.Second, 2 * time.Second, 2999 * time.Millisecond} {
				clock.Set(at)
				_, err := e.Update(field)
				Expect(err).NotTo(HaveOccurred())
				Expect(e.Goals()).To(Equal(goals))
			}

			clock.Set(3 * time.Second)
			_, err = e.Update(field)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Goals()).NotTo(Equal(goals))
		})
	})
})
