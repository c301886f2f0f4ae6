// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package mood

import "strings"

// Type is one of the four mood categories an image can be assigned.
type Type string

const (
	Happy     Type = "happy"
	Sad       Type = "sad"
	Energetic Type = "energetic"
	Calm      Type = "calm"
)

// All lists the moods in scoring order. The winner scan walks this slice, so
// the order decides ties.
var All = []Type{Happy, Sad, Energetic, Calm}

// Valid reports whether t is one of the four known moods.
func (t Type) Valid() bool {
	switch t {
	case Happy, Sad, Energetic, Calm:
		return true
	}
	return false
}

// Upper returns the mood in capitals, as shown in chat ("HAPPY").
func (t Type) Upper() string {
	return strings.ToUpper(string(t))
}

// Emoji returns the chat emoji for the mood.
func (t Type) Emoji() string {
	switch t {
	case Happy:
		return "😊"
	case Sad:
		return "😔"
	case Energetic:
		return "⚡"
	case Calm:
		return "😌"
	default:
		return "🎵"
	}
}

// Likelihood mirrors the Vision API likelihood enum for face attributes.
type Likelihood string

const (
	LikelihoodUnknown Likelihood = "UNKNOWN"
	VeryUnlikely      Likelihood = "VERY_UNLIKELY"
	Unlikely          Likelihood = "UNLIKELY"
	Possible          Likelihood = "POSSIBLE"
	Likely            Likelihood = "LIKELY"
	VeryLikely        Likelihood = "VERY_LIKELY"
)

// atLeastLikely reports whether l is LIKELY or VERY_LIKELY.
func (l Likelihood) atLeastLikely() bool {
	return l == Likely || l == VeryLikely
}

// Label is one label annotation: a description and a confidence in [0,1].
type Label struct {
	Description string
	Score       float64
}

// Face carries the two face attributes that feed the scorer.
type Face struct {
	Joy    Likelihood
	Sorrow Likelihood
}

// Color is an RGB triple on the 0-255 scale.
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

// Brightness is the unweighted mean of the three channels.
func (c Color) Brightness() float64 {
	return (c.Red + c.Green + c.Blue) / 3
}

// VisionResult is the subset of an image analysis the scorer reads. A nil
// Labels, Faces or DominantColor simply contributes nothing.
type VisionResult struct {
	Labels        []Label
	Faces         []Face
	DominantColor *Color
}

// Scores holds the accumulated score per mood.
type Scores map[Type]float64

// Result is the outcome of scoring one image.
type Result struct {
	Mood        Type   `json:"mood"`
	Scores      Scores `json:"scores"`
	Description string `json:"description"`
	Details     string `json:"details"`
}
