// Package updater checks GitHub for newer Memex releases and can replace
// the running binary in place. It uses the GitHub Releases API (no auth
// required for public repos).
//
// Design decisions:
//   - CheckVersion never returns an error: an unreachable API or a dev
//     build simply reports that no update is available.
//   - Release archives are .tar.gz on every platform.
//   - Atomic replace: the new binary is written next to the executable
//     and renamed over it.
//   - No auto-restart: the user restarts memex after updating.
package updater

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	// githubRepo is the repository path for API calls.
	githubRepo = "HendryAvila/memex"

	// releaseURL is the GitHub API endpoint for the latest release.
	releaseURL = "https://api.github.com/repos/" + githubRepo + "/releases/latest"

	// checkTimeout bounds the GitHub API call.
	checkTimeout = 10 * time.Second
)

// For testing: allow overriding the release endpoint and HTTP client.
var (
	releaseEndpoint = releaseURL
	httpClient      = &http.Client{Timeout: checkTimeout}
)

// Release holds the relevant fields of a GitHub release.
type Release struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []Asset `json:"assets"`
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// UpdateResult is returned by CheckVersion to communicate the outcome.
type UpdateResult struct {
	// CurrentVersion is the running version, without the leading "v".
	CurrentVersion string
	// LatestVersion is the newest published release.
	LatestVersion string
	// UpdateAvailable is true when latest > current.
	UpdateAvailable bool
	// ReleaseURL is the GitHub page for the latest release.
	ReleaseURL string
}

// CheckVersion queries GitHub for the latest release and compares it
// against the running version. Network and API failures report no
// update; the check is best-effort.
func CheckVersion(currentVersion string) *UpdateResult {
	result := &UpdateResult{CurrentVersion: trimV(currentVersion)}

	release, err := fetchLatest(currentVersion)
	if err != nil {
		return result
	}

	result.LatestVersion = trimV(release.TagName)
	result.ReleaseURL = release.HTMLURL
	result.UpdateAvailable = isNewer(result.CurrentVersion, result.LatestVersion)
	return result
}

// SelfUpdate downloads the release binary for the current OS/arch and
// replaces the running executable.
func SelfUpdate(currentVersion string) error {
	release, err := fetchLatest(currentVersion)
	if err != nil {
		return err
	}

	latest := trimV(release.TagName)
	if !isNewer(trimV(currentVersion), latest) {
		return fmt.Errorf("already at latest version (%s)", currentVersion)
	}

	name := assetName(latest)
	var downloadURL string
	for _, a := range release.Assets {
		if a.Name == name {
			downloadURL = a.BrowserDownloadURL
			break
		}
	}
	if downloadURL == "" {
		return fmt.Errorf("no release asset for %s/%s (looked for %s)",
			runtime.GOOS, runtime.GOARCH, name)
	}

	binary, err := download(downloadURL)
	if err != nil {
		return err
	}
	return replaceExecutable(binary)
}

// fetchLatest retrieves and decodes the latest release metadata.
func fetchLatest(currentVersion string) (*Release, error) {
	req, err := http.NewRequest(http.MethodGet, releaseEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "memex/"+currentVersion)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checking latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("parsing release info: %w", err)
	}
	return &release, nil
}

// download fetches a release archive and extracts the binary from it.
// The URL comes from the GitHub API response.
func download(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("downloading release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download returned %d", resp.StatusCode)
	}
	return extractBinary(resp.Body)
}

// extractBinary pulls the memex binary out of a .tar.gz archive.
func extractBinary(r io.Reader) ([]byte, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar: %w", err)
		}

		name := filepath.Base(header.Name)
		if name == "memex" || name == "memex.exe" {
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("reading binary from tar: %w", err)
			}
			return data, nil
		}
	}

	return nil, fmt.Errorf("memex binary not found in archive")
}

// replaceExecutable writes data next to the running executable and
// renames it over the current binary.
func replaceExecutable(data []byte) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding current executable: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolving symlinks: %w", err)
	}

	tmpPath := execPath + ".new"
	if err := os.WriteFile(tmpPath, data, 0o755); err != nil {
		return fmt.Errorf("writing new binary: %w", err)
	}

	// Windows cannot rename over a running binary; move it aside first.
	if runtime.GOOS == "windows" {
		oldPath := execPath + ".old"
		_ = os.Remove(oldPath)
		if err := os.Rename(execPath, oldPath); err != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("backing up current binary: %w", err)
		}
	}

	if err := os.Rename(tmpPath, execPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing binary: %w", err)
	}
	return nil
}

// assetName is the archive filename published for the current OS and
// architecture.
func assetName(version string) string {
	return fmt.Sprintf("memex_%s_%s_%s.tar.gz", version, runtime.GOOS, runtime.GOARCH)
}

// trimV strips the leading "v" from a release tag.
func trimV(v string) string {
	return strings.TrimPrefix(v, "v")
}

// isNewer reports whether latest is a higher semantic version than
// current. Dev builds never see updates.
func isNewer(current, latest string) bool {
	if current == "" || latest == "" || current == "dev" {
		return false
	}

	cur := strings.Split(current, ".")
	lat := strings.Split(latest, ".")
	for i := 0; i < 3; i++ {
		c, l := versionField(cur, i), versionField(lat, i)
		if l != c {
			return l > c
		}
	}
	return false
}

// versionField parses the i-th dotted field as its leading integer, so
// "3rc1" counts as 3 and a missing field counts as 0.
func versionField(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n := 0
	for _, ch := range parts[i] {
		if ch < '0' || ch > '9' {
			break
		}
		n = n*10 + int(ch-'0')
	}
	return n
}
