// ABOUTME: View models that turn detection reports into display-ready values
// ABOUTME: Badge thresholds, fixed-point formatting and truncation are decided here

package render

import (
	"html/template"

	"mediacheck/core/detection"
	"mediacheck/core/domain"
	"mediacheck/pkg/utils/format"
	"mediacheck/pkg/utils/text"
)

// TextLimit is the number of characters of analyzed text shown in a news result.
const TextLimit = 300

// Badge colours.
const (
	BadgeDanger  = "danger"
	BadgeWarning = "warning"
	BadgeSuccess = "success"
)

// ScoreBadge picks the header badge colour for a deepfake probability in [0,1].
func ScoreBadge(fakeProbability float64) string {
	switch {
	case fakeProbability > 0.6:
		return BadgeDanger
	case fakeProbability > 0.3:
		return BadgeWarning
	default:
		return BadgeSuccess
	}
}

// FrameBadge picks the badge colour for a single frame score in [0,1].
func FrameBadge(fakeScore float64) string {
	if fakeScore > 0.6 {
		return BadgeDanger
	}
	return BadgeSuccess
}

func verdictBadge(isFake bool) string {
	if isFake {
		return BadgeDanger
	}
	return BadgeSuccess
}

type featureView struct {
	Label string
	Value string
}

type newsView struct {
	Prediction  string
	IsFake      bool
	Badge       string
	Confidence  string
	Method      string
	FakePercent string
	RealPercent string
	FakeWidth   template.CSS
	RealWidth   template.CSS
	Warnings    []string
	HasFeatures bool
	Features    []featureView
	Text        string
	Title       string
	URL         string
}

func newNewsView(r *domain.NewsReport) newsView {
	v := newsView{
		Prediction:  r.Prediction,
		IsFake:      r.IsFake(),
		Badge:       verdictBadge(r.IsFake()),
		Confidence:  format.Percent(r.Confidence),
		Method:      r.Method,
		FakePercent: format.Percent(r.FakeProbability),
		RealPercent: format.Percent(r.RealProbability),
		FakeWidth:   widthStyle(r.FakeProbability),
		RealWidth:   widthStyle(r.RealProbability),
		Warnings:    r.Warnings,
		HasFeatures: r.LinguisticFeatures != nil,
		Text:        text.Truncate(r.Text, TextLimit),
		Title:       r.Title,
		URL:         r.URL,
	}
	if v.Method == "" {
		v.Method = "N/A"
	}

	for _, f := range r.LinguisticFeatures {
		fv := featureView{Label: text.FormatKey(f.Key), Value: f.Value.Text}
		if f.Value.Numeric {
			fv.Value = format.ToFixed(f.Value.Number, 3)
		}
		v.Features = append(v.Features, fv)
	}
	return v
}

type faceView struct {
	ID      string
	Percent string
	Badge   string
	X, Y    string
}

type frameView struct {
	Frame   string
	Faces   int
	Percent string
	Badge   string
}

type deepfakeView struct {
	Prediction     string
	IsFake         bool
	Badge          string
	Confidence     string
	AnalysisType   string
	FacesDetected  int
	FramesAnalyzed int
	FakePercent    string
	FakeWidth      template.CSS
	ScoreBadge     string
	Faces          []faceView
	Frames         []frameView
}

func newDeepfakeView(r *domain.DeepfakeReport) deepfakeView {
	v := deepfakeView{
		Prediction:     r.Prediction,
		IsFake:         r.IsFake(),
		Badge:          verdictBadge(r.IsFake()),
		Confidence:     format.Percent(r.Confidence),
		AnalysisType:   "Video Analysis",
		FacesDetected:  r.FacesDetected,
		FramesAnalyzed: r.FramesAnalyzed,
		FakePercent:    format.Percent(r.FakeProbability),
		FakeWidth:      widthStyle(r.FakeProbability),
		ScoreBadge:     ScoreBadge(r.FakeProbability),
	}
	if r.FileType == domain.FileTypeImage {
		v.AnalysisType = "Image Analysis"
	}

	for _, face := range r.Details {
		v.Faces = append(v.Faces, faceView{
			ID:      string(face.FaceID),
			Percent: format.Percent(face.FakeScore),
			Badge:   verdictBadge(face.IsFake),
			X:       format.Number(face.Position.X),
			Y:       format.Number(face.Position.Y),
		})
	}
	for _, frame := range r.FrameDetails {
		v.Frames = append(v.Frames, frameView{
			Frame:   string(frame.Frame),
			Faces:   frame.FacesDetected,
			Percent: format.Percent(frame.FakeScore),
			Badge:   FrameBadge(frame.FakeScore),
		})
	}
	return v
}

type dashboardView struct {
	TotalChecks  int64
	FakeDetected int64
	NewsChecks   int64
	FakeNews     int64
	MediaChecks  int64
	FakeMedia    int64
	Failures     int64
	FakeRate     string
	FakeStyle    template.CSS
}

func newDashboardView(snap detection.StatsSnapshot) dashboardView {
	var rate float64
	if snap.TotalChecks > 0 {
		rate = float64(snap.FakeDetected) / float64(snap.TotalChecks)
	}
	return dashboardView{
		TotalChecks:  snap.TotalChecks,
		FakeDetected: snap.FakeDetected,
		NewsChecks:   snap.NewsChecks,
		FakeNews:     snap.FakeNews,
		MediaChecks:  snap.MediaChecks,
		FakeMedia:    snap.FakeMedia,
		Failures:     snap.Failures,
		FakeRate:     format.Percent(rate),
		FakeStyle:    widthStyle(rate),
	}
}
