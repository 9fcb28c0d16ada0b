package utils

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
)

const DefaultUserAgent = "vsprofile/1.0"

// Downloaded 是 Download 的结果
type Downloaded struct {
	Body   []byte
	Header http.Header
}

// NewHttpClient returns http.DefaultClient when proxyUrl is empty, otherwise a client that
// goes through proxyUrl.
func NewHttpClient(proxyUrl string) (*http.Client, error) {
	if proxyUrl == "" {
		return http.DefaultClient, nil
	}
	url_proxy, err := url.Parse(proxyUrl)
	if err != nil {
		return nil, ErrInErr{ErrDesc: "bad proxy url", ErrDetail: ErrWrongParameter, Data: proxyUrl}
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:           http.ProxyURL(url_proxy),
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}, nil
}

// Download GETs downloadLink, optionally through proxyUrl. An empty userAgent means
// DefaultUserAgent. Non 200 responses are errors.
func Download(proxyUrl, downloadLink, userAgent string) (*Downloaded, error) {
	client, err := NewHttpClient(proxyUrl)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodGet, downloadLink, nil)
	if err != nil {
		return nil, err
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInErr{ErrDesc: "download got bad status", ErrDetail: ErrInvalidData, Data: resp.Status}
	}

	counter := &DownloadPrintCounter{Quiet: LogLevel > Log_debug}
	body, err := io.ReadAll(io.TeeReader(resp.Body, counter))
	if err != nil {
		return nil, err
	}
	counter.Done()
	return &Downloaded{Body: body, Header: resp.Header}, nil
}

// https://golangcode.com/download-a-file-with-progress/
type DownloadPrintCounter struct {
	Total uint64
	Quiet bool
}

func (wc *DownloadPrintCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	wc.PrintProgress()
	return n, nil
}

func (wc DownloadPrintCounter) PrintProgress() {
	if wc.Quiet {
		return
	}
	fmt.Printf("\r%s", strings.Repeat(" ", 35))
	fmt.Printf("\rDownloading... %s complete", humanize.Bytes(wc.Total))
}

func (wc DownloadPrintCounter) Done() {
	if !wc.Quiet {
		PrintStr("\n")
	}
}
