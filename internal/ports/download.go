package ports

import "context"

// Progress describes how much of a download has been received.
// Total is -1 when the server did not announce a length.
type Progress struct {
	Name     string
	Received int64
	Total    int64
}

// Fraction returns the completed fraction in [0, 1], or -1 if the total is unknown.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return -1
	}
	f := float64(p.Received) / float64(p.Total)
	if f > 1 {
		return 1
	}
	return f
}

// ProgressFunc receives download progress updates.
type ProgressFunc func(Progress)

// DownloadRequest describes an installer artifact to fetch.
type DownloadRequest struct {
	URL  string
	Name string
	// SHA256 is the expected hex digest; empty skips verification.
	SHA256 string
}

// Downloader fetches installer artifacts.
type Downloader interface {
	// Download fetches the artifact into a local file and returns its path.
	Download(ctx context.Context, req DownloadRequest) (string, error)
}
