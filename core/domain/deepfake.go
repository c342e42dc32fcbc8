// ABOUTME: Deepfake analysis report models
// ABOUTME: Mirrors the JSON contract of the /detect-deepfake endpoint

package domain

import (
	"encoding/json"
	"fmt"
)

// File types reported by /detect-deepfake.
const (
	FileTypeImage = "image"
	FileTypeVideo = "video"
)

// MsgNoFile is the blocking alert shown when the deepfake form has no file.
const MsgNoFile = "Please select a file"

// MsgDeepfakeFailed is shown when the backend fails without saying why.
const MsgDeepfakeFailed = "Deepfake detection failed"

// Identifier is a face or frame id that the backend may send as a number or a string.
type Identifier string

// UnmarshalJSON accepts JSON strings and numbers.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = Identifier(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier: %w", err)
	}
	*id = Identifier(n.String())
	return nil
}

// Position is the top-left corner of a detected face.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FaceDetail is the per-face breakdown of an image analysis.
type FaceDetail struct {
	FaceID    Identifier `json:"face_id"`
	FakeScore float64    `json:"fake_score"`
	IsFake    bool       `json:"is_fake"`
	Position  Position   `json:"position"`
}

// FrameDetail is the per-frame breakdown of a video analysis.
type FrameDetail struct {
	Frame         Identifier `json:"frame"`
	FacesDetected int        `json:"faces_detected"`
	FakeScore     float64    `json:"fake_score"`
}

// DeepfakeReport is the success variant of a deepfake analysis.
type DeepfakeReport struct {
	Prediction      string        `json:"prediction"`
	Confidence      float64       `json:"confidence"`
	FakeProbability float64       `json:"fake_probability"`
	FileType        string        `json:"file_type"`
	Filename        string        `json:"filename,omitempty"`
	FacesDetected   int           `json:"faces_detected,omitempty"`
	FramesAnalyzed  int           `json:"frames_analyzed,omitempty"`
	TotalFrames     int           `json:"total_frames,omitempty"`
	Details         []FaceDetail  `json:"details,omitempty"`
	FrameDetails    []FrameDetail `json:"frame_details,omitempty"`
}

// IsFake reports whether the media was classified as fake.
func (r *DeepfakeReport) IsFake() bool {
	return r.Prediction == PredictionFake
}
