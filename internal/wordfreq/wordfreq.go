// Package wordfreq builds spellbee corpora from the wordfreq dataset.
package wordfreq

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/spellbee/internal/wordlist"
)

const pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"

const dataPrefix = "wordfreq/data/"

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

// Options controls which words end up in a generated corpus.
type Options struct {
	Lang      string
	ListType  string
	Size      int
	MinLength int
	MaxLength int
}

type pypiFile struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Packagetype string `json:"packagetype"`
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []pypiFile `json:"urls"`
}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir.
// A wheel already present in the cache is reused.
func DownloadLatestWheel(ctx context.Context, cacheDir string) (Wheel, error) {
	return downloadWheel(ctx, pypiEndpoint, cacheDir)
}

func downloadWheel(ctx context.Context, endpoint, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	var payload pypiResponse
	if err := getJSON(ctx, endpoint, &payload); err != nil {
		return Wheel{}, err
	}
	if payload.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in pypi response")
	}
	file, ok := pickWheel(payload.URLs)
	if !ok {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	wheel := Wheel{Version: payload.Info.Version, Path: filepath.Join(cacheDir, file.Filename), Filename: file.Filename}
	if _, err := os.Stat(wheel.Path); err == nil {
		wheel.Cached = true
		return wheel, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	resp, err := httpGet(ctx, file.URL)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := writeAtomic(wheel.Path, resp.Body); err != nil {
		return Wheel{}, fmt.Errorf("failed to store wheel: %w", err)
	}
	return wheel, nil
}

func getJSON(ctx context.Context, url string, out interface{}) error {
	resp, err := httpGet(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode pypi response: %w", err)
	}
	return nil
}

func httpGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status from %s: %s", url, resp.Status)
	}
	return resp, nil
}

func pickWheel(files []pypiFile) (pypiFile, bool) {
	var fallback *pypiFile
	for i := range files {
		if files[i].Packagetype != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(files[i].Filename, "py3-none-any.whl") {
			return files[i], true
		}
		if fallback == nil {
			fallback = &files[i]
		}
	}
	if fallback == nil {
		return pypiFile{}, false
	}
	return *fallback, true
}

// ExtractWordlist returns up to opts.Size words from the wheel, most
// frequent first. Words are lowercased, deduplicated and filtered by the
// language filter and the length bounds.
func ExtractWordlist(wheelPath string, opts Options) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	lang := strings.ToLower(opts.Lang)
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}
	if opts.ListType == "" {
		return nil, fmt.Errorf("word list type is required")
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("size must be greater than 0")
	}

	entries, err := readEntries(wheelPath, lang, strings.ToLower(opts.ListType))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	keepLang := wordlist.FilterForLang(lang)
	keepLength := wordlist.LengthBetween(opts.MinLength, opts.MaxLength)
	words := make([]string, 0, opts.Size)
	seen := make(map[string]struct{})
	for _, entry := range entries {
		word := strings.ToLower(strings.TrimSpace(entry.word))
		if _, ok := seen[word]; ok {
			continue
		}
		if word == "" || !keepLang(word) || !keepLength(word) {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
		if len(words) >= opts.Size {
			break
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s/%s", lang, opts.ListType)
	}
	return words, nil
}

// WriteCorpus writes words one per line to path, replacing the file
// atomically. An existing file is only replaced when force is set.
func WriteCorpus(path string, words []string, force bool) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	body := strings.Join(words, "\n") + "\n"
	if err := writeAtomic(path, strings.NewReader(body)); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	return nil
}

func writeAtomic(path string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := io.Copy(tmp, r); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// WriteAttribution writes attribution and license files next to a corpus.
func WriteAttribution(wheelPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	attribution := strings.Join([]string{
		"Word list generated from the wordfreq dataset.",
		"Source: https://github.com/rspeer/wordfreq",
		"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
		"Changes were made: lowercased, filtered by alphabet and length, truncated to the requested size.",
		"Includes data from Google Books Ngrams: https://books.google.com/ngrams",
		"Includes data from the Leeds Internet Corpus: https://corpus.leeds.ac.uk/",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(outDir, "ATTRIBUTION.txt"), []byte(attribution), 0o644); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}

	license, err := readWheelLicense(wheelPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "LICENSE.txt"), license, 0o644); err != nil {
		return fmt.Errorf("failed to write license: %w", err)
	}
	return nil
}

// LanguageTypes maps language codes to available list types.
type LanguageTypes map[string]map[string]struct{}

// Languages returns the sorted language codes.
func (t LanguageTypes) Languages() []string {
	out := make([]string, 0, len(t))
	for lang := range t {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// ListLanguageTypes returns available languages and list types in the wheel.
func ListLanguageTypes(wheelPath string) (LanguageTypes, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	langs := make(LanguageTypes)
	for _, file := range reader.File {
		lang, listType := parseDataName(file.Name)
		if lang == "" {
			continue
		}
		if _, ok := langs[lang]; !ok {
			langs[lang] = make(map[string]struct{})
		}
		langs[lang][listType] = struct{}{}
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	return langs, nil
}

// parseDataName maps "wordfreq/data/large_en.msgpack.gz" to ("en", "large").
func parseDataName(name string) (string, string) {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, dataPrefix) {
		return "", ""
	}
	base := strings.TrimPrefix(name, dataPrefix)
	base = strings.TrimSuffix(base, ".gz")
	if !strings.HasSuffix(base, ".msgpack") {
		return "", ""
	}
	base = strings.TrimSuffix(base, ".msgpack")
	listType, lang, ok := strings.Cut(base, "_")
	if !ok || lang == "" || (listType != "large" && listType != "small") {
		return "", ""
	}
	return lang, listType
}

func readEntries(wheelPath, lang, listType string) ([]wordEntry, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		fileLang, fileType := parseDataName(file.Name)
		if fileLang != lang || fileType != listType {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		defer func() {
			_ = rc.Close()
		}()
		return decodeEntries(file.Name, rc)
	}
	return nil, fmt.Errorf("no data file found for %s/%s", lang, listType)
}

func readWheelLicense(wheelPath string) ([]byte, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel for license: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if !strings.Contains(strings.ToLower(file.Name), "license") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open license: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read license: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("license file not found in wheel")
}
