package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AnjaBuckley/GermanTube-Learning/internal/domain"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/logger"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://www.youtube.com"

// ExtractVideoID extracts the video id from the two common YouTube URL
// shapes: the short link (youtu.be/<id>) and the long form
// (youtube.com/watch?v=<id>). Anything else is an invalid URL.
func ExtractVideoID(youtubeURL string) (string, error) {
	switch {
	case strings.Contains(youtubeURL, "youtu.be"):
		parts := strings.Split(youtubeURL, "/")
		id := parts[len(parts)-1]
		// Query parameters may trail the id in the short form.
		id = strings.SplitN(id, "?", 2)[0]
		if id == "" {
			return "", domain.NewInvalidURLError(youtubeURL)
		}
		return id, nil
	case strings.Contains(youtubeURL, "youtube.com/watch"):
		parsed, err := url.Parse(youtubeURL)
		if err != nil {
			return "", domain.NewInvalidURLError(youtubeURL)
		}
		id := parsed.Query().Get("v")
		if id == "" {
			return "", domain.NewInvalidURLError(youtubeURL)
		}
		return id, nil
	}
	return "", domain.NewInvalidURLError(youtubeURL)
}

// captionTrack mirrors the timedtext XML payload: a flat list of timed
// text fragments.
type captionTrack struct {
	XMLName xml.Name      `xml:"transcript"`
	Texts   []captionText `xml:"text"`
}

type captionText struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Body     string  `xml:",chardata"`
}

// YouTubeClient fetches caption tracks from YouTube's timedtext endpoint.
type YouTubeClient struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

func NewYouTubeClient(language string, timeout time.Duration) *YouTubeClient {
	return &YouTubeClient{
		baseURL:  defaultBaseURL,
		language: language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewYouTubeClientWithBaseURL is used by tests to point the client at a
// local server.
func NewYouTubeClientWithBaseURL(baseURL, language string, timeout time.Duration) *YouTubeClient {
	c := NewYouTubeClient(language, timeout)
	c.baseURL = baseURL
	return c
}

// Fetch retrieves the caption track for the given video and flattens it to
// plain text, discarding timing metadata. Fragment texts are joined with
// newlines. A missing track, a restricted video or any transport error all
// surface as the same transcript-unavailable failure.
func (c *YouTubeClient) Fetch(ctx context.Context, videoID string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/timedtext?lang=%s&v=%s", c.baseURL, url.QueryEscape(c.language), url.QueryEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", domain.NewInternalError("failed to build transcript request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewTranscriptUnavailableError(videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.NewTranscriptUnavailableError(videoID, fmt.Errorf("transcript endpoint returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewTranscriptUnavailableError(videoID, err)
	}

	// YouTube answers 200 with an empty body when no track exists for the
	// requested language.
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", domain.NewTranscriptUnavailableError(videoID, fmt.Errorf("no %s caption track", c.language))
	}

	var track captionTrack
	if err := xml.Unmarshal(body, &track); err != nil {
		return "", domain.NewTranscriptUnavailableError(videoID, err)
	}
	if len(track.Texts) == 0 {
		return "", domain.NewTranscriptUnavailableError(videoID, fmt.Errorf("empty %s caption track", c.language))
	}

	lines := make([]string, 0, len(track.Texts))
	for _, t := range track.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		lines = append(lines, text)
	}

	logger.Get().Info("Fetched transcript",
		zap.String("video_id", videoID),
		zap.String("language", c.language),
		zap.Int("fragments", len(lines)),
	)

	return strings.Join(lines, "\n"), nil
}

var _ domain.TranscriptFetcher = (*YouTubeClient)(nil)
