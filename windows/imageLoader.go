// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// maxImageBytes caps the size of a downloaded image.
const maxImageBytes = 8 << 20

// HTTPImageLoader downloads remote images and hands them to their targets on
// the UI goroutine. A target loaded again only receives the latest image.
type HTTPImageLoader struct {
	client  *http.Client
	timeout int
	logger  *slog.Logger

	mu          sync.Mutex
	generations map[sectiontable.ImageTarget]uint64
}

var _ sectiontable.ImageLoader = (*HTTPImageLoader)(nil)

// NewHTTPImageLoader returns a loader whose requests time out after
// timeoutSeconds. A nil client uses http.DefaultClient.
func NewHTTPImageLoader(client *http.Client, timeoutSeconds int, logger *slog.Logger) *HTTPImageLoader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPImageLoader{
		client:      client,
		timeout:     timeoutSeconds,
		logger:      logger,
		generations: make(map[sectiontable.ImageTarget]uint64),
	}
}

// Load shows the placeholder and starts the download.
func (l *HTTPImageLoader) Load(target sectiontable.ImageTarget, img sectiontable.RemoteImage) {
	l.mu.Lock()
	l.generations[target]++
	gen := l.generations[target]
	l.mu.Unlock()

	if img.Placeholder != "" {
		target.SetImage(&sectiontable.Image{Name: img.Placeholder, Radius: img.Radius})
	} else {
		target.SetImage(nil)
	}

	go func() {
		res, err := l.fetch(img.URL)
		if err != nil {
			l.logger.Warn("remote image failed", "url", img.URL, "error", err)
			return
		}
		fyne.Do(func() {
			l.mu.Lock()
			current := l.generations[target] == gen
			l.mu.Unlock()
			if !current {
				return
			}
			target.SetImage(&sectiontable.Image{Resource: res, Radius: img.Radius})
		})
	}()
}

func (l *HTTPImageLoader) fetch(url string) (fyne.Resource, error) {
	ctx, cancel := createTimeoutContext(l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, err
	}
	return fyne.NewStaticResource(path.Base(req.URL.Path), data), nil
}
