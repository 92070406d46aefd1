package catalog

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Image sizes used by the browser.
const (
	PosterSize   = "w500"
	BackdropSize = "original"
	ProfileSize  = "w200"
)

// Images builds image URLs from relative paths.
type Images struct {
	Base string
}

// NewImages returns an Images rooted at base, e.g. https://image.tmdb.org/t/p/.
func NewImages(base string) Images {
	return Images{Base: strings.TrimRight(base, "/") + "/"}
}

func (im Images) url(size, path string) string {
	if path == "" {
		return ""
	}
	return im.Base + size + "/" + strings.TrimLeft(path, "/")
}

// Poster returns the w500 poster URL, or "" when the movie has none.
func (im Images) Poster(path string) string { return im.url(PosterSize, path) }

// Backdrop returns the full-size backdrop URL.
func (im Images) Backdrop(path string) string { return im.url(BackdropSize, path) }

// Profile returns the w200 headshot URL.
func (im Images) Profile(path string) string { return im.url(ProfileSize, path) }

// PickTrailer prefers a YouTube trailer, then a YouTube teaser, then
// whatever video comes first.
func PickTrailer(videos []Video) (Video, bool) {
	for _, want := range []string{"Trailer", "Teaser"} {
		for _, v := range videos {
			if v.Site == "YouTube" && v.Type == want {
				return v, true
			}
		}
	}
	if len(videos) > 0 {
		return videos[0], true
	}
	return Video{}, false
}

// WatchURL returns a browser link for a video, or "" for unknown hosts.
func WatchURL(v Video) string {
	switch v.Site {
	case "YouTube":
		return "https://www.youtube.com/watch?v=" + v.Key
	case "Vimeo":
		return "https://vimeo.com/" + v.Key
	}
	return ""
}

// FormatCurrency renders a whole-dollar amount like "$1,500,000". Zero means
// the service has no figure and renders as "N/A".
func FormatCurrency(amount int64) string {
	if amount <= 0 {
		return "N/A"
	}
	return "$" + humanize.Comma(amount)
}

// FormatRuntime renders minutes as "2h 15m".
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return strconv.Itoa(m) + "m"
	case m == 0:
		return strconv.Itoa(h) + "h"
	}
	return strconv.Itoa(h) + "h " + strconv.Itoa(m) + "m"
}

// Top returns at most n elements of s.
func Top[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
