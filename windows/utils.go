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
	"context"
	"fmt"
	"image/color"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-sectiontable/adapters/yamldoc"
	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// createTimeoutContext creates a context with a configurable timeout for network calls.
// timeoutSeconds specifies the timeout duration in seconds (default: 60 seconds if <= 0)
func createTimeoutContext(timeoutSeconds int) (context.Context, context.CancelFunc) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60 // Default to 60 seconds
	}
	return context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
}

// icons maps image names used in datasets onto theme icons.
var icons = map[string]func() fyne.Resource{
	"account":   theme.AccountIcon,
	"person":    theme.AccountIcon,
	"computer":  theme.ComputerIcon,
	"document":  theme.DocumentIcon,
	"file":      theme.FileIcon,
	"folder":    theme.FolderIcon,
	"grid":      theme.GridIcon,
	"table":     theme.GridIcon,
	"help":      theme.HelpIcon,
	"home":      theme.HomeIcon,
	"info":      theme.InfoIcon,
	"mail":      theme.MailComposeIcon,
	"media":     theme.MediaPlayIcon,
	"search":    theme.SearchIcon,
	"settings":  theme.SettingsIcon,
	"storage":   theme.StorageIcon,
	"upload":    theme.UploadIcon,
	"download":  theme.DownloadIcon,
	"warning":   theme.WarningIcon,
	"error":     theme.ErrorIcon,
	"bluetooth": theme.MediaRecordIcon,
	"wifi":      theme.ViewRefreshIcon,
	"chevron":   theme.NavigateNextIcon,
}

// imageResource resolves an image to a resource: the explicit resource, a
// theme icon name or a file path, in that order.
func imageResource(img *sectiontable.Image) (fyne.Resource, bool) {
	if img == nil {
		return nil, false
	}
	if res, ok := img.Resource.(fyne.Resource); ok && res != nil {
		return res, true
	}
	if icon, ok := icons[img.Name]; ok {
		return icon(), true
	}
	if img.Name == "" {
		return nil, false
	}
	if _, err := os.Stat(img.Name); err == nil {
		res, err := storage.LoadResourceFromURI(storage.NewFileURI(img.Name))
		if err == nil {
			return res, true
		}
	}
	return nil, false
}

// canvasObject turns a subview, accessory or details value from a dataset
// into a canvas object. Strings become labels and images become icons.
func canvasObject(v any) fyne.CanvasObject {
	switch v := v.(type) {
	case nil:
		return nil
	case fyne.CanvasObject:
		return v
	case fyne.Resource:
		return widget.NewIcon(v)
	case *sectiontable.Image:
		if res, ok := imageResource(v); ok {
			return widget.NewIcon(res)
		}
		return nil
	case string:
		if res, ok := imageResource(&sectiontable.Image{Name: v}); ok && icons[v] != nil {
			return widget.NewIcon(res)
		}
		return widget.NewLabel(v)
	default:
		return widget.NewLabel(fmt.Sprint(v))
	}
}

// toColor accepts a color or a hex string.
func toColor(v any) (color.Color, bool) {
	switch v := v.(type) {
	case color.Color:
		return v, true
	case string:
		c, err := yamldoc.ParseColor(v)
		return c, err == nil
	}
	return nil, false
}

// toBool accepts booleans only.
func toBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}
