// Package classify defines the boundary to the external fragment-type
// classifier. The reconstruction core treats classification as an opaque
// tag: any classifier implementation can be plugged in, and the shipped
// fallback lets the pipeline run without a model.
package classify

import (
	"fmt"
	"image"
)

// FragmentType labels which part of the vessel a fragment came from. The
// set is open-ended: unknown labels from an external classifier are kept
// as-is rather than rejected.
type FragmentType string

// Known fragment types.
const (
	Rim     FragmentType = "rim"
	Body    FragmentType = "body"
	Base    FragmentType = "base"
	Unknown FragmentType = "unknown"
)

// Result is the classifier's verdict for one captured image.
type Result struct {
	// Type is the predicted fragment type.
	Type FragmentType

	// Confidence is the classifier's confidence in [0,1].
	Confidence float64
}

// State describes classifier readiness.
type State int

const (
	// Loading means the classifier is still preparing (e.g. model load).
	Loading State = iota

	// Ready means the classifier can serve Classify calls.
	Ready

	// Failed means the classifier will never become ready.
	Failed
)

// Readiness is the result-typed replacement for the original demo's polled
// readiness flag: callers receive Ready, Loading, or Failed with a reason,
// instead of spinning on a boolean.
type Readiness struct {
	State State
	Err   error
}

// Classifier is the external collaborator interface. Implementations may
// be backed by a pretrained model; the core only consumes Result values.
type Classifier interface {
	// Readiness reports whether the classifier can serve requests.
	Readiness() Readiness

	// Classify predicts the fragment type for one image.
	Classify(img image.Image) (Result, error)
}

// StaticClassifier is the always-ready fallback used when no external model
// is wired in. It labels everything with a fixed result.
type StaticClassifier struct {
	Result Result
}

// NewStaticClassifier returns a fallback classifier that labels every image
// as an unknown fragment with zero confidence.
func NewStaticClassifier() *StaticClassifier {
	return &StaticClassifier{Result: Result{Type: Unknown, Confidence: 0}}
}

// Readiness always reports Ready.
func (c *StaticClassifier) Readiness() Readiness {
	return Readiness{State: Ready}
}

// Classify returns the fixed result for any non-nil image.
func (c *StaticClassifier) Classify(img image.Image) (Result, error) {
	if img == nil {
		return Result{}, fmt.Errorf("cannot classify nil image")
	}
	return c.Result, nil
}
