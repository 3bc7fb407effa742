package imdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"movie-quiz/internal/domain"
)

// maxImageBytes bounds poster downloads.
const maxImageBytes = 10 << 20

// ErrImageTooLarge is returned for posters above the download limit.
var ErrImageTooLarge = errors.New("poster exceeds size limit")

// Client talks to an IMDb-compatible API (tv-api.com style) for the Top-250
// list and downloads posters.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	imageLimit int64
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = "https://tv-api.com/en"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		imageLimit: maxImageBytes,
	}
}

type top250Response struct {
	ErrorMessage string       `json:"errorMessage"`
	Items        []top250Item `json:"items"`
}

type top250Item struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Rating string `json:"imDbRating"`
	Image  string `json:"image"`
}

// LoadMovies fetches the Top-250 list.
func (c *Client) LoadMovies(ctx context.Context) ([]domain.Movie, error) {
	endpoint := fmt.Sprintf("%s/API/Top250Movies/%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("imdb non-2xx: %d", resp.StatusCode)
	}

	var payload top250Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode top250: %w", err)
	}
	if payload.ErrorMessage != "" {
		return nil, errors.New(payload.ErrorMessage)
	}
	if len(payload.Items) == 0 {
		return nil, domain.ErrNoMovies
	}

	movies := make([]domain.Movie, 0, len(payload.Items))
	for _, item := range payload.Items {
		rating, err := strconv.ParseFloat(item.Rating, 64)
		if err != nil {
			rating = 0
		}
		movies = append(movies, domain.Movie{
			ID:       item.ID,
			Title:    item.Title,
			Rating:   rating,
			ImageURL: item.Image,
		})
	}
	return movies, nil
}

// FetchImage downloads the poster at its 600px-wide rendition.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ResizedImageURL(imageURL), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("poster non-2xx: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.imageLimit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.imageLimit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrImageTooLarge, c.imageLimit)
	}
	return data, nil
}

// ResizedImageURL rewrites an Amazon media URL to the UX600 rendition:
// everything from the first "._" is replaced.
func ResizedImageURL(raw string) string {
	idx := strings.Index(raw, "._")
	if idx < 0 {
		return raw
	}
	return raw[:idx] + "._V0_UX600_.jpg"
}
