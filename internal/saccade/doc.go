// Package saccade simulates gaze points moving across a saliency field.
//
// An [Engine] owns a fixed number of tracked points. Each call to
// [Engine.Update] is one video frame: the configured [Policy] refreshes the
// goal of every point, then every point eases toward its goal with a clamped
// per-axis step (see [Smooth]).
//
//   - [PolicyConstant]: goals never move after the first frame
//   - [PolicyRandom]: goals jump to uniform random cells on a fixed interval
//   - [PolicySaliency]: goals hill-climb the field with [LocalSearch]
//
// # Example
//
//	eng, _ := saccade.New(saccade.Config{PointCount: 2, Policy: saccade.PolicySaliency},
//		saccade.WithRand(rand.New(rand.NewSource(1))))
//	points, err := eng.Update(field)
//
// # Thread Safety
//
// Engine instances are NOT safe for concurrent use. Exactly one goroutine
// may call Update at a time; hosts that share an engine must serialize
// access themselves.
package saccade
