package aiornot

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const imageReportBody = `{
	"id": "rep-1",
	"report": {
		"ai_generated": {
			"verdict": "ai",
			"ai": {"is_detected": true, "confidence": 0.97},
			"human": {"is_detected": false, "confidence": 0.03},
			"generator": {
				"midjourney": {"is_detected": true, "confidence": 0.91},
				"dall_e": {"is_detected": false, "confidence": 0.02}
			}
		},
		"deepfake": {"is_detected": false, "confidence": 0.1},
		"nsfw": {"is_detected": false},
		"meta": {"width": 512, "height": 512, "format": "png"}
	}
}`

func TestClient_ImageReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/image/sync", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		query := r.URL.Query()
		assert.Equal(t, []string{"ai_generated", "deepfake"}, query["only"])
		assert.Equal(t, []string{"nsfw"}, query["excluding"])
		assert.Equal(t, "case-42", query.Get("external_id"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-image-bytes"), data)

		w.Write([]byte(imageReportBody))
	})

	resp, err := client.ImageReport(context.Background(), []byte("fake-image-bytes"), &ImageReportOptions{
		Only:       []ImageAnalysisType{ImageAnalysisAIGenerated, ImageAnalysisDeepfake},
		Excluding:  []ImageAnalysisType{ImageAnalysisNSFW},
		ExternalID: "case-42",
	})
	require.NoError(t, err)

	assert.Equal(t, "rep-1", resp.ID)
	assert.Equal(t, VerdictAI, resp.Verdict())
	assert.InDelta(t, 0.97, resp.Confidence(), 1e-9)
	assert.True(t, resp.IsAI())
	assert.False(t, resp.IsDeepfake())
	assert.False(t, resp.IsNSFW())

	name, pred := resp.Report.AIGenerated.Generator.Top()
	assert.Equal(t, "Midjourney", name)
	assert.InDelta(t, 0.91, pred.Confidence, 1e-9)
}

func TestClient_ImageReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o644))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte("jpeg-bytes"), data)
		w.Write([]byte(imageReportBody))
	})

	_, err := client.ImageReportFile(context.Background(), path, nil)
	assert.NoError(t, err)
}

func TestClient_ImageReportFile_Missing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for a missing file")
	})

	_, err := client.ImageReportFile(context.Background(), "does-not-exist.jpg", nil)
	require.Error(t, err)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "does-not-exist.jpg", fileErr.Path)
	assert.Equal(t, KindFile, Kind(err))
}

func TestClient_ImageReportURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/image/sync", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "https://example.com/photo.jpg", payload["object"])

		w.Write([]byte(imageReportBody))
	})

	resp, err := client.ImageReportURL(context.Background(), "https://example.com/photo.jpg", nil)
	require.NoError(t, err)
	assert.True(t, resp.IsAI())
}

func TestClient_VideoReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/video/sync", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("video")
		require.NoError(t, err)

		w.Write([]byte(`{
			"id": "vid-1",
			"report": {
				"ai_video": {"is_detected": true, "confidence": 0.88},
				"ai_voice": {"is_detected": false, "confidence": 0.12},
				"deepfake_video": {"is_detected": false, "confidence": 0.05, "no_faces_found": true},
				"meta": {"duration": 14, "total_bytes": 1024, "md5": "abc", "audio": "aac", "video": "h264"}
			}
		}`))
	})

	resp, err := client.VideoReport(context.Background(), []byte("mp4-bytes"), nil)
	require.NoError(t, err)

	assert.Equal(t, VerdictAI, resp.Verdict())
	assert.True(t, resp.IsAI())
	assert.False(t, resp.IsDeepfake())
	assert.True(t, resp.Report.DeepfakeVideo.NoFacesFound)
	assert.Equal(t, 14, resp.Report.Meta.Duration)
}

func TestClient_VoiceReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reports/voice", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "speech.wav", header.Filename)

		w.Write([]byte(`{
			"id": "voice-1",
			"report": {"verdict": "human", "confidence": 0.93, "duration": 30, "total_bytes": 2048, "md5": "def"}
		}`))
	})

	resp, err := client.VoiceReport(context.Background(), []byte("wav-bytes"), "speech.wav")
	require.NoError(t, err)
	assert.Equal(t, VerdictHuman, resp.Verdict())
	assert.False(t, resp.IsAI())
	assert.InDelta(t, 0.93, resp.Confidence(), 1e-9)
}

func TestClient_VoiceReport_DefaultFilename(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "audio.mp3", header.Filename)
		w.Write([]byte(`{"id": "voice-2", "report": {"verdict": "ai", "confidence": 0.8}}`))
	})

	_, err := client.VoiceReport(context.Background(), []byte("raw"), "")
	assert.NoError(t, err)
}

func TestClient_MusicReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reports/music", r.URL.Path)
		w.Write([]byte(`{
			"id": "music-1",
			"report": {"verdict": "ai", "confidence": 0.77, "duration": 180}
		}`))
	})

	resp, err := client.MusicReport(context.Background(), []byte("mp3-bytes"), "song.mp3")
	require.NoError(t, err)
	assert.True(t, resp.IsAI())
	assert.Equal(t, 180, resp.Report.Duration)
}

func TestClient_TextReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/text/sync", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "true", r.URL.Query().Get("include_annotations"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Once upon a time", r.PostFormValue("text"))

		w.Write([]byte(`{
			"id": "text-1",
			"report": {
				"ai_text": {
					"is_detected": true,
					"confidence": 0.85,
					"annotations": [["Once upon a time", 0.92]]
				}
			},
			"metadata": {"word_count": 4, "character_count": 16}
		}`))
	})

	resp, err := client.TextReport(context.Background(), "Once upon a time", &TextReportOptions{
		IncludeAnnotations: true,
	})
	require.NoError(t, err)

	assert.Equal(t, VerdictAI, resp.Verdict())
	assert.Equal(t, 4, resp.Metadata.WordCount)

	annotations := resp.Annotations()
	require.Len(t, annotations, 1)
	assert.Equal(t, "Once upon a time", annotations[0].Text)
	assert.InDelta(t, 0.92, annotations[0].Confidence, 1e-9)
}

func TestClient_TextReport_NoAnnotationParam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("include_annotations"))
		w.Write([]byte(`{"id": "text-2", "report": {"ai_text": {"is_detected": false, "confidence": 0.1}}}`))
	})

	resp, err := client.TextReport(context.Background(), "plain prose", nil)
	require.NoError(t, err)
	assert.Equal(t, VerdictHuman, resp.Verdict())
}

func TestReportTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(imageReportBody))
	}, WithTimeout(20*time.Millisecond))

	_, err := client.ImageReport(context.Background(), []byte("bytes"), nil)
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "image analysis", timeoutErr.Op)
	assert.Equal(t, KindTimeout, Kind(err))
}

func TestClient_ImageReportBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.jpg")
	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(good, []byte("good-bytes"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("bad-bytes"), 0o644))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)

		if string(data) == "bad-bytes" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail": "unsupported image"}`))
			return
		}
		w.Write([]byte(imageReportBody))
	})

	items := []Item{FileItem(good), FileItem(bad), FileItem(filepath.Join(dir, "absent.jpg"))}
	summary, err := client.ImageReportBatch(context.Background(), items, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)

	assert.Equal(t, good, summary.Results[0].Input)
	assert.True(t, summary.Results[0].Success())

	assert.Equal(t, KindValidation, summary.Results[1].ErrorKind)
	assert.Contains(t, summary.Results[1].Message, "unsupported image")

	assert.Equal(t, KindFile, summary.Results[2].ErrorKind)
}

func TestClient_ImageReportBatch_ExternalIDPrefix(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Get("external_id"))
		w.Write([]byte(imageReportBody))
	})

	items := []Item{DataItem([]byte("a")), DataItem([]byte("b"))}
	summary, err := client.ImageReportBatch(context.Background(), items, &ImageBatchOptions{
		BatchOptions:     BatchOptions{MaxConcurrency: 1},
		ExternalIDPrefix: "run",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)
	assert.ElementsMatch(t, []string{"run_0", "run_1"}, seen)
}

func TestClient_TextReportBatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("text") == "fails" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id": "t", "report": {"ai_text": {"is_detected": false, "confidence": 0.2}}}`))
	})

	summary, err := client.TextReportBatch(context.Background(), []string{"hello", "fails", "world"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, "fails", summary.Results[1].Input)
	assert.Equal(t, KindRateLimit, summary.Results[1].ErrorKind)
}

func TestClient_ImageReportDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(imageReportBody))
	})

	summary, err := client.ImageReportDirectory(context.Background(), dir, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
}
