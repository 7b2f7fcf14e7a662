// Package gesture adapts an external webcam gesture classifier into review
// session actions. The classifier and the camera are opaque collaborators;
// this package owns confidence thresholding, debouncing, and teardown.
package gesture

import "context"

// Gesture labels the poller knows how to map onto session actions.
const (
	LabelYes  = "yes"
	LabelNo   = "no"
	LabelHint = "hint"
)

// Frame is one captured camera frame, encoded by the frame source.
type Frame []byte

// FeatureVector is the classifier's embedding of a frame.
type FeatureVector []float32

// Prediction is one classifier output: the winning label plus per-label
// confidence scores in [0, 1].
type Prediction struct {
	Label       string             `json:"label"`
	Confidences map[string]float64 `json:"confidences"`
}

// Confidence returns the score of the winning label.
func (p *Prediction) Confidence() float64 {
	if p == nil {
		return 0
	}
	return p.Confidences[p.Label]
}

// Classifier is the consumed gesture model interface. Predict returns
// (nil, nil) when the model has no prediction for the input. An untrained
// classifier reports NumTrainedClasses() == 0 and must not drive a session.
type Classifier interface {
	InferOnFrame(ctx context.Context, frame Frame) (FeatureVector, error)
	Predict(ctx context.Context, features FeatureVector, k int) (*Prediction, error)
	NumTrainedClasses() int
}

// FrameSource is a live camera feed. Close stops the underlying media
// tracks; it must be called on session teardown so the device is released.
type FrameSource interface {
	Frame(ctx context.Context) (Frame, error)
	Close() error
}
