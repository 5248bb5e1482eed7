package main

import (
	"net/http"
	"os"
	"time"

	"github.com/ericogr/war-cards/internal/constants"
)

const defaultHealthcheckURL = "http://127.0.0.1:8080/api/version"

func main() {
	url := os.Getenv(constants.EnvHealthcheckURL)
	if url == "" {
		url = defaultHealthcheckURL
	}
	os.Exit(check(&http.Client{Timeout: 2 * time.Second}, url))
}

// check returns the process exit code for a health request to url.
func check(client *http.Client, url string) int {
	resp, err := client.Get(url)
	if err != nil {
		return 1
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return 1
	}
	return 0
}
