package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gazesim/internal/heatmap"
	"github.com/san-kum/gazesim/internal/metrics"
	"github.com/san-kum/gazesim/internal/saccade"
	"github.com/san-kum/gazesim/internal/sim"
)

type recorder struct {
	ticks []int
}

func (r *recorder) OnTick(t sim.Tick) { r.ticks = append(r.ticks, t.Index) }

var _ = Describe("Runner", func() {
	var cfg sim.Config

	BeforeEach(func() {
		cfg = sim.DefaultConfig()
		cfg.Ticks = 60
		cfg.Seed = GinkgoRandomSeed()
		cfg.Engine.PointCount = 2
		cfg.Engine.Policy = saccade.PolicySaliency
	})

	It("notifies observers once per frame in order", func() {
		r := sim.New(heatmap.NewBlobs(30, 40, 2, 0.3, 5), nil)
		rec := &recorder{}
		r.AddObserver(rec)

		result, err := r.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.ticks).To(HaveLen(60))
		for i, idx := range rec.ticks {
			Expect(idx).To(Equal(i))
		}
		Expect(result.Goals).To(HaveLen(60))
		Expect(result.Track(1)).To(HaveLen(60))
	})

	It("reports every default metric", func() {
		r := sim.New(heatmap.NewBlobs(30, 40, 2, 0.3, 5), nil)
		for _, m := range metrics.Defaults() {
			r.AddMetric(m)
		}

		result, err := r.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Metrics).To(HaveKey("goal_distance"))
		Expect(result.Metrics).To(HaveKey("travel"))
		Expect(result.Metrics).To(HaveKey("salience"))
		Expect(result.Metrics).To(HaveKey("settled"))
		Expect(result.Metrics["salience"]).To(BeNumerically(">=", 0))
		Expect(result.Metrics["salience"]).To(BeNumerically("<=", 1))
	})

	Describe("Ensemble", func() {
		It("gives each run its own seed", func() {
			e := sim.NewEnsemble(
				func(seed int64) (heatmap.Provider, error) { return heatmap.NewBlobs(30, 40, 2, 0.3, seed), nil },
				metrics.Defaults,
				4, 10, nil,
			)
			results, err := e.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(4))
			Expect(results[0].Frames).NotTo(Equal(results[1].Frames))
		})
	})
})
