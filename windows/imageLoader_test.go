package windows

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

type recordingTarget struct {
	mu     sync.Mutex
	images []*sectiontable.Image
}

func (r *recordingTarget) SetImage(img *sectiontable.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images = append(r.images, img)
}

func (r *recordingTarget) last() *sectiontable.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.images) == 0 {
		return nil
	}
	return r.images[len(r.images)-1]
}

func (r *recordingTarget) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.images)
}

func lastResource(r *recordingTarget) string {
	img := r.last()
	if img == nil || img.Resource == nil {
		return ""
	}
	return img.Resource.Name()
}

func TestHTTPImageLoader_PlaceholderThenImage(t *testing.T) {
	test.NewTempApp(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png"))
	}))
	t.Cleanup(srv.Close)

	target := &recordingTarget{}
	l := NewHTTPImageLoader(srv.Client(), 5, nil)
	l.Load(target, sectiontable.RemoteImage{URL: srv.URL + "/avatar.png", Placeholder: "person", Radius: 4})

	require.GreaterOrEqual(t, target.count(), 1)
	target.mu.Lock()
	first := target.images[0]
	target.mu.Unlock()
	assert.Equal(t, "person", first.Name)
	assert.Equal(t, float32(4), first.Radius)

	assert.Eventually(t, func() bool { return lastResource(target) == "avatar.png" }, 2*time.Second, 10*time.Millisecond)
	img := target.last()
	assert.Equal(t, []byte("png"), img.Resource.Content())
	assert.Equal(t, float32(4), img.Radius)
}

func TestHTTPImageLoader_FailureKeepsPlaceholder(t *testing.T) {
	test.NewTempApp(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	target := &recordingTarget{}
	l := NewHTTPImageLoader(srv.Client(), 5, nil)
	l.Load(target, sectiontable.RemoteImage{URL: srv.URL + "/missing.png"})

	assert.Never(t, func() bool { return target.count() > 1 }, 200*time.Millisecond, 10*time.Millisecond)
	assert.Nil(t, target.last(), "no placeholder clears the image")
}

func TestHTTPImageLoader_LatestRequestWins(t *testing.T) {
	test.NewTempApp(t)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow.png" {
			<-release
		}
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	t.Cleanup(srv.Close)

	target := &recordingTarget{}
	l := NewHTTPImageLoader(srv.Client(), 5, nil)
	l.Load(target, sectiontable.RemoteImage{URL: srv.URL + "/slow.png"})
	l.Load(target, sectiontable.RemoteImage{URL: srv.URL + "/fast.png"})

	assert.Eventually(t, func() bool { return lastResource(target) == "fast.png" }, 2*time.Second, 10*time.Millisecond)
	close(release)
	assert.Never(t, func() bool { return lastResource(target) == "slow.png" }, 300*time.Millisecond, 10*time.Millisecond)
}
