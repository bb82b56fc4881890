package bundle

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/suganuamtec/fieldlog/internal/logger"
)

// apiBase is the GitHub API root. A package variable so tests can point it
// at a local httptest server.
var apiBase = "https://api.github.com"

// githubRelease is the subset of the GitHub release JSON response we read.
type githubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// Resolve turns a --bundle source into a local directory of wheels ready for
// pip's --find-links:
//
//   - an existing directory is used as-is
//   - an existing archive file is extracted into a temp directory
//   - an "owner/repo@tag" reference downloads the release asset matching the
//     host platform, then extracts it
func Resolve(source, goos, goarch string) (string, error) {
	if info, err := os.Stat(source); err == nil {
		if info.IsDir() {
			return wheelDir(source)
		}
		if !IsArchive(source) {
			return "", fmt.Errorf("bundle %s is not a supported archive", source)
		}
		dest, err := os.MkdirTemp("", "fieldlog_bundle_")
		if err != nil {
			return "", err
		}
		return Extract(source, dest)
	}

	owner, repo, tag, ok := parseReleaseRef(source)
	if !ok {
		return "", fmt.Errorf("bundle %q is neither an existing path nor an owner/repo@tag release reference", source)
	}

	archive, err := fetchReleaseAsset(owner, repo, tag, goos, goarch)
	if err != nil {
		return "", err
	}
	dest, err := os.MkdirTemp("", "fieldlog_bundle_")
	if err != nil {
		return "", err
	}
	return Extract(archive, dest)
}

// parseReleaseRef splits "owner/repo@tag" into its parts.
func parseReleaseRef(ref string) (owner, repo, tag string, ok bool) {
	at := strings.LastIndex(ref, "@")
	if at <= 0 || at == len(ref)-1 {
		return "", "", "", false
	}
	slash := strings.Index(ref[:at], "/")
	if slash <= 0 || slash == at-1 {
		return "", "", "", false
	}
	return ref[:slash], ref[slash+1 : at], ref[at+1:], true
}

// fetchReleaseAsset resolves the GitHub release, picks the asset whose name
// matches the host platform, and downloads it to a temp file.
func fetchReleaseAsset(owner, repo, tag, goos, goarch string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", apiBase, owner, repo, tag)
	logger.Debug("[DEBUG] Fetching release metadata from %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("HTTP GET error fetching release %s/%s@%s: %w", owner, repo, tag, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release fetch failed for %s/%s@%s: HTTP status %d", owner, repo, tag, resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode release JSON for %s/%s@%s: %w", owner, repo, tag, err)
	}
	logger.Debug("[DEBUG] Release %s has %d assets\n", release.TagName, len(release.Assets))

	assetURL, assetName := matchAsset(release, goos, goarch)
	if assetURL == "" {
		return "", fmt.Errorf("no bundle asset matching OS=%s ARCH=%s in release %s", goos, goarch, release.TagName)
	}

	tmp := filepath.Join(os.TempDir(), assetName)
	logger.Step("Downloading bundle %s...", assetName)
	if err := downloadFile(assetURL, tmp); err != nil {
		return "", err
	}
	return tmp, nil
}

// matchAsset picks the release asset for the host platform. Assets are
// matched on OS name synonyms first, then preferred when they also carry the
// architecture; an OS-only match (a universal pure-wheel bundle) is accepted
// as fallback.
func matchAsset(release githubRelease, goos, goarch string) (url, name string) {
	osNames := map[string][]string{
		"linux":   {"linux"},
		"darwin":  {"darwin", "macos"},
		"windows": {"windows", "win"},
	}[goos]
	archNames := map[string][]string{
		"amd64": {"amd64", "x86_64"},
		"arm64": {"arm64", "aarch64"},
	}[goarch]

	var osOnlyURL, osOnlyName string
	for _, asset := range release.Assets {
		lower := strings.ToLower(asset.Name)
		if !IsArchive(lower) || !containsAny(lower, osNames) {
			continue
		}
		if containsAny(lower, archNames) {
			logger.Debug("[DEBUG] Matched asset %s\n", asset.Name)
			return asset.BrowserDownloadURL, asset.Name
		}
		if osOnlyURL == "" {
			osOnlyURL, osOnlyName = asset.BrowserDownloadURL, asset.Name
		}
	}
	return osOnlyURL, osOnlyName
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// downloadFile streams the content at url into destPath.
func downloadFile(url, destPath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s failed: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write response to file: %w", err)
	}

	logger.Debug("[DEBUG] Downloaded bundle to: %s\n", destPath)
	return nil
}
