package omimparser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/repotrial/omim-extractor/logging"
	"golang.org/x/text/encoding/charmap"
)

// downloadFile fetches one OMIM file into the data directory. OMIM snapshots
// are served in mixed encodings, so non-UTF-8 payloads are decoded from
// ISO-8859-1 before being written out line by line.
func downloadFile(dataDir string, name string, url string) error {
	outPath := filepath.Clean(filepath.Join(dataDir, name))

	client := &http.Client{
		Timeout: 5 * time.Minute,
	}
	response, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "file", name, "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: unexpected status %d", name, response.StatusCode)
	}

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body for %s: %w", name, err)
	}

	var reader io.Reader
	if utf8.Valid(bodyBytes) {
		reader = bytes.NewReader(bodyBytes)
	} else {
		reader = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", outPath, err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logging.Warn("Failed to close output file", "file", outPath, "error", err)
		}
	}()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	for scanner.Scan() {
		if _, err := io.WriteString(outFile, scanner.Text()+"\n"); err != nil {
			return fmt.Errorf("failed to write to file %s: %w", outPath, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error while downloading %s: %w", name, err)
	}

	logging.Debug(fmt.Sprintf("%s downloaded without errors", name))
	return nil
}

// downloadAll fetches the configured OMIM files concurrently. Files without a
// configured URL are assumed to already be in the data directory (the OMIM
// download links carry a per-licensee key, so offline runs are common).
func downloadAll(opts Options) error {
	files := map[string]string{
		"mim2gene.txt":  opts.Mim2GeneURL,
		"genemap2.txt":  opts.Genemap2URL,
		"morbidmap.txt": opts.MorbidmapURL,
	}

	if err := os.MkdirAll(opts.DataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for name, url := range files {
		if url == "" {
			continue
		}
		wg.Add(1)

		go func(name string, url string) {
			defer wg.Done()
			if err := downloadFile(opts.DataDir, name, url); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(name, url)
	}
	wg.Wait()

	if len(errs) > 0 {
		logging.Error("Download errors occurred", "errors", errs)
		return fmt.Errorf("download errors: %v", errs)
	}

	return nil
}
