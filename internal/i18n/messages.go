// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package i18n

import (
	"strings"

	"github.com/tomtom215/moodpost/internal/mood"
)

// MessageKey identifies one user-visible text.
type MessageKey uint8

const (
	KeyWelcome MessageKey = iota
	KeyLanguageSet
	KeyAnalyzing
	KeyMoodDetected
	KeyAskArtists
	KeySearching
	KeySurprising
	KeyRecommendations
	KeyRecommendationItem
	KeyAnotherImage
	KeyNoRecommendations
	KeySendImageFirst
	KeyGreeting
	KeyNoArtists
	KeyFallback
	KeySessionExpired
	KeyAnalysisFailed
	KeyRecommendFailed
	KeyUnsupportedMessage
	KeyButtonArtist
	KeyButtonSurprise
	KeyDescHappy
	KeyDescSad
	KeyDescEnergetic
	KeyDescCalm

	numKeys
)

var catalog = [numLocales][numKeys]string{
	English: {
		KeyWelcome: "👋 Welcome to Mood Post Bot! 🎵\n\nI analyze your photos and recommend music that matches the vibe!\n\n" +
			"📸 How it works:\n1. Send me any image\n2. I'll detect the mood (happy, calm, energetic, sad)\n" +
			"3. Get personalized song recommendations!\n\nPlease choose your language:",
		KeyLanguageSet:        "✅ Language set to English!",
		KeyAnalyzing:          "🎨 Analyzing your image... This will take a moment!",
		KeyMoodDetected:       "✨ {description}\n\nDetected mood: {mood} {emoji}\n\nDetails: {details}\n\n🎵 Reply with 'artist' to use your favorite artists, or reply with 'surprise' for random recommendations!",
		KeyAskArtists:         "🎤 Great! Tell me your favorite artists!\n\nYou can send multiple artists separated by commas.\nExample: Juice WRLD, Joji, Travis Scott",
		KeySearching:          "🔍 Searching for music by {artists}...",
		KeySurprising:         "✨ Let me surprise you with some {mood} vibes...",
		KeyRecommendations:    "🎵 Here are your {mood} music recommendations:\n\n",
		KeyRecommendationItem: "{n}. {title}\n   by {artist}\n   🎧 {url}\n\n",
		KeyAnotherImage:       "\n✨ Send me another image for more recommendations!",
		KeyNoRecommendations:  "😕 Sorry, I couldn't find any recommendations. Please try again!",
		KeySendImageFirst:     "Please send me an image first so I can detect the mood! 📸",
		KeyGreeting:           "👋 Hi! Send me an image and I'll recommend music based on its vibe! 📸🎵",
		KeyNoArtists:          "❌ Please provide at least one artist name!",
		KeyFallback:           "Please send me an image first! 📸",
		KeySessionExpired:     "Session expired. Please send an image again! 📸",
		KeyAnalysisFailed:     "❌ Sorry, I had trouble analyzing your image. Please try again!",
		KeyRecommendFailed:    "❌ Sorry, I had trouble finding music. Please try again!",
		KeyUnsupportedMessage: "Please send me an image to analyze! 📸",
		KeyButtonArtist:       "🎤 My artists",
		KeyButtonSurprise:     "✨ Surprise me",
		KeyDescHappy:          "Your image radiates happiness and positivity!",
		KeyDescSad:            "Your image has a melancholic, introspective feel.",
		KeyDescEnergetic:      "Your image is full of energy and excitement!",
		KeyDescCalm:           "Your image evokes peace and tranquility.",
	},
	Chinese: {
		KeyWelcome: "👋 歡迎使用 Mood Post Bot！🎵\n\n我會分析你的照片，並推薦符合氛圍的音樂！\n\n" +
			"📸 使用方式：\n1. 傳送任何圖片給我\n2. 我會偵測情緒（開心、平靜、充滿活力、悲傷）\n" +
			"3. 獲得個人化的歌曲推薦！\n\n請選擇你的語言：",
		KeyLanguageSet:     "✅ 語言已設定為中文！",
		KeyAnalyzing:       "🎨 正在分析你的圖片...請稍候！",
		KeyMoodDetected:    "✨ {description}\n\n偵測到的情緒：{mood} {emoji}\n\n細節：{details}\n\n🎵 回覆 'artist' 使用你最愛的歌手，或回覆 'surprise' 獲得隨機推薦！",
		KeyAskArtists:      "🎤 太好了！告訴我你最喜歡的歌手！\n\n你可以用逗號分隔多位歌手。\n例如：周杰倫, 五月天, 蔡依林",
		KeySearching:       "🔍 正在搜尋 {artists} 的音樂...",
		KeySurprising:      "✨ 讓我給你一些 {mood} 氛圍的音樂...",
		KeyRecommendations: "🎵 這是你的 {mood} 音樂推薦：\n\n",
		KeyAnotherImage:    "\n✨ 傳送另一張圖片獲得更多推薦！",
		KeySendImageFirst:  "請先傳送圖片給我，讓我偵測情緒！📸",
		KeyDescHappy:       "你的圖片散發快樂與正能量！",
		KeyDescSad:         "你的圖片帶有憂鬱、內省的感覺。",
		KeyDescEnergetic:   "你的圖片充滿能量與興奮！",
		KeyDescCalm:        "你的圖片喚起平靜與寧靜。",
	},
}

// Text returns the text for key in locale l, falling back to English when l
// has no translation. An out-of-range key or locale yields "".
func Text(l Locale, key MessageKey) string {
	if key >= numKeys {
		return ""
	}
	if l.Valid() {
		if s := catalog[l][key]; s != "" {
			return s
		}
	}
	return catalog[English][key]
}

// Format returns Text(l, key) with each "{name}" placeholder replaced.
// Arguments are name/value pairs:
//
//	i18n.Format(loc, i18n.KeySearching, "artists", "Joji, Drake")
func Format(l Locale, key MessageKey, pairs ...string) string {
	text := Text(l, key)
	if len(pairs) < 2 {
		return text
	}
	oldnew := make([]string, 0, len(pairs)&^1)
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(text)
}

// MoodDescription returns the localized description sentence for m.
func MoodDescription(l Locale, m mood.Type) string {
	switch m {
	case mood.Happy:
		return Text(l, KeyDescHappy)
	case mood.Sad:
		return Text(l, KeyDescSad)
	case mood.Energetic:
		return Text(l, KeyDescEnergetic)
	case mood.Calm:
		return Text(l, KeyDescCalm)
	default:
		return ""
	}
}
