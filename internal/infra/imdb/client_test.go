package imdb

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-quiz/internal/domain"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestLoadMoviesParsesTop250(t *testing.T) {
	var seenPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		_, _ = w.Write([]byte(`{"errorMessage":"","items":[
			{"id":"tt0111161","title":"The Shawshank Redemption","imDbRating":"9.2","image":"https://m.media-amazon.com/images/M/abc._V1_Ratio0.6716_AL_.jpg"},
			{"id":"tt0000001","title":"Unrated","imDbRating":"","image":"https://example.com/x.jpg"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "k_test", srv.Client())
	movies, err := client.LoadMovies(context.Background())
	if err != nil {
		t.Fatalf("load movies: %v", err)
	}
	if seenPath != "/API/Top250Movies/k_test" {
		t.Fatalf("unexpected path %q", seenPath)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].Rating != 9.2 || movies[0].Title != "The Shawshank Redemption" {
		t.Fatalf("unexpected first movie %+v", movies[0])
	}
	if movies[1].Rating != 0 {
		t.Fatalf("expected unparseable rating to be 0, got %v", movies[1].Rating)
	}
}

func TestLoadMoviesErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errorMessage":"Invalid API Key","items":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad", srv.Client()).LoadMovies(context.Background())
	if err == nil || err.Error() != "Invalid API Key" {
		t.Fatalf("expected api error message, got %v", err)
	}
}

func TestLoadMoviesEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errorMessage":"","items":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", srv.Client()).LoadMovies(context.Background())
	if !errors.Is(err, domain.ErrNoMovies) {
		t.Fatalf("expected ErrNoMovies, got %v", err)
	}
}

func TestLoadMoviesNonOKStatus(t *testing.T) {
	client := NewClient("https://api.test", "k", &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Header:     make(http.Header),
		}, nil
	})})

	if _, err := client.LoadMovies(context.Background()); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}

func TestLoadMoviesMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "k", srv.Client()).LoadMovies(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFetchImageRequestsResizedPoster(t *testing.T) {
	var seenPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		_, _ = w.Write([]byte("poster-bytes"))
	}))
	defer srv.Close()

	data, err := NewClient("", "", srv.Client()).FetchImage(context.Background(), srv.URL+"/images/M/abc._V1_Ratio0.6716_AL_.jpg")
	if err != nil {
		t.Fatalf("fetch image: %v", err)
	}
	if string(data) != "poster-bytes" {
		t.Fatalf("unexpected body %q", data)
	}
	if seenPath != "/images/M/abc._V0_UX600_.jpg" {
		t.Fatalf("unexpected poster path %q", seenPath)
	}
}

func TestFetchImageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := NewClient("", "", srv.Client()).FetchImage(context.Background(), srv.URL+"/missing.jpg"); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestFetchImageRejectsOversizedPoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	client := NewClient("", "", srv.Client())
	client.imageLimit = 4
	data, err := client.FetchImage(context.Background(), srv.URL+"/big.jpg")
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
	if data != nil {
		t.Fatalf("expected no data, got %q", data)
	}
}

func TestFetchImageAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123"))
	}))
	defer srv.Close()

	client := NewClient("", "", srv.Client())
	client.imageLimit = 4
	data, err := client.FetchImage(context.Background(), srv.URL+"/exact.jpg")
	if err != nil {
		t.Fatalf("fetch image: %v", err)
	}
	if string(data) != "0123" {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestResizedImageURL(t *testing.T) {
	cases := map[string]string{
		"https://m.media-amazon.com/images/M/abc._V1_Ratio0.6716_AL_.jpg": "https://m.media-amazon.com/images/M/abc._V0_UX600_.jpg",
		"https://example.com/plain.jpg":                                   "https://example.com/plain.jpg",
		"":                                                                "",
	}
	for in, want := range cases {
		if got := ResizedImageURL(in); got != want {
			t.Fatalf("ResizedImageURL(%q) = %q, want %q", in, got, want)
		}
	}
}
