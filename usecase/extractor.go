package usecase

import "regexp"

// videoIDPattern recognizes the canonical YouTube URL shapes: the short-link
// host, /v/, /u/<user>/, /embed/ path forms and the watch?v= / &v= query forms.
var videoIDPattern = regexp.MustCompile(`(?:youtu\.be/|/v/|/u/\w/|/embed/|watch\?v=|&v=)([^#&?]*)`)

const videoIDLength = 11

// ExtractVideoID parses a platform URL into its canonical 11-character video
// id. It is a pure, total function: unsupported or malformed input yields
// ok=false and the caller keeps the record as a plain link.
func ExtractVideoID(rawURL string) (string, bool) {
	match := videoIDPattern.FindStringSubmatch(rawURL)
	if match == nil || len(match[1]) != videoIDLength {
		return "", false
	}
	return match[1], true
}
