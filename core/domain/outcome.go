// ABOUTME: Tagged result types produced by decoding detection backend responses
// ABOUTME: An Outcome is a success report or a Failure carrying the message to display

package domain

// Outcome is the decoded result of a single detection request.
// Each response decodes to exactly one variant: *NewsReport, *DeepfakeReport or *Failure.
type Outcome interface {
	outcome()
}

// Failure is the error variant of an Outcome.
type Failure struct {
	Message string `json:"error"`
}

func (*Failure) outcome()        {}
func (*NewsReport) outcome()     {}
func (*DeepfakeReport) outcome() {}

// PredictionFake is the label the backend uses for manipulated content.
const PredictionFake = "Fake"
