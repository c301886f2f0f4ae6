// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package mood turns an image analysis into one of four moods.
//
// Score is pure: the same VisionResult always yields the same Result, and
// nothing outside the argument is read. Contributions are accumulated in a
// fixed order (labels, then faces, then the first dominant color) and the
// winner is picked by a strict-greater scan over All, so ties resolve to the
// earlier mood and an image with no signal is calm.
package mood

import "strings"

const (
	faceIncrement   = 0.5
	brightThreshold = 180.0
	darkThreshold   = 100.0
	maxDetailLabels = 5
	detailsPrefix   = "Detected: "
)

var keywords = map[Type][]string{
	Happy:     {"fun", "party", "celebration", "smile", "joy", "sunshine", "bright", "colorful", "happy", "cheerful"},
	Sad:       {"rain", "dark", "alone", "melancholy", "cry", "lonely", "gray", "gloomy", "sad"},
	Energetic: {"sport", "dance", "music", "festival", "crowd", "action", "concert", "energy", "active"},
	Calm:      {"nature", "sky", "water", "peaceful", "serene", "sunset", "beach", "forest", "calm", "quiet"},
}

var descriptions = map[Type]string{
	Happy:     "Your image radiates happiness and positivity!",
	Sad:       "Your image has a melancholic, introspective feel.",
	Energetic: "Your image is full of energy and excitement!",
	Calm:      "Your image evokes peace and tranquility.",
}

// Description returns the fixed English sentence for t.
func Description(t Type) string {
	return descriptions[t]
}

// Score computes the mood of an analyzed image.
func Score(v VisionResult) Result {
	scores := Scores{Happy: 0, Sad: 0, Energetic: 0, Calm: 0}

	for _, label := range v.Labels {
		desc := strings.ToLower(label.Description)
		for _, m := range All {
			if matchesAny(desc, keywords[m]) {
				scores[m] += label.Score
			}
		}
	}

	for _, face := range v.Faces {
		if face.Joy.atLeastLikely() {
			scores[Happy] += faceIncrement
		}
		if face.Sorrow.atLeastLikely() {
			scores[Sad] += faceIncrement
		}
	}

	if c := v.DominantColor; c != nil {
		brightness := c.Brightness()
		switch {
		case brightness > brightThreshold:
			scores[Happy] += 0.3
			scores[Energetic] += 0.2
		case brightness < darkThreshold:
			scores[Sad] += 0.3
			scores[Calm] += 0.2
		}
		if c.Red > c.Blue {
			scores[Energetic] += 0.2
		} else {
			scores[Calm] += 0.2
		}
	}

	winner := pickWinner(scores)
	return Result{
		Mood:        winner,
		Scores:      scores,
		Description: descriptions[winner],
		Details:     details(v.Labels),
	}
}

func matchesAny(desc string, words []string) bool {
	for _, w := range words {
		if strings.Contains(desc, w) {
			return true
		}
	}
	return false
}

func pickWinner(scores Scores) Type {
	winner := Calm
	best := 0.0
	for _, m := range All {
		if scores[m] > best {
			best = scores[m]
			winner = m
		}
	}
	return winner
}

func details(labels []Label) string {
	n := len(labels)
	if n > maxDetailLabels {
		n = maxDetailLabels
	}
	names := make([]string, 0, n)
	for _, l := range labels[:n] {
		names = append(names, strings.ToLower(l.Description))
	}
	return detailsPrefix + strings.Join(names, ", ")
}
