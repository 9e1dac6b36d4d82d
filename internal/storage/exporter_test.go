package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

func TestNewExporterRequiresBucketAndCredentials(t *testing.T) {
	_, err := NewExporter(Config{AccessKey: "a", SecretKey: "b"})
	assert.Error(t, err)

	_, err = NewExporter(Config{Bucket: "b"})
	assert.Error(t, err)

	e, err := NewExporter(Config{Bucket: "b", AccessKey: "a", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "exports", e.cfg.Prefix)
	assert.Equal(t, "us-east-1", e.cfg.Region)
}

func TestCampaignKey(t *testing.T) {
	e, err := NewExporter(Config{Bucket: "b", AccessKey: "a", SecretKey: "s", Prefix: "/out/"})
	require.NoError(t, err)

	key := e.campaignKey(7, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), "application/json")
	assert.True(t, strings.HasPrefix(key, "out/campaigns/7/2026/03/04/"), key)
	assert.True(t, strings.HasSuffix(key, ".json"), key)
	assert.Equal(t, ".bin", extensionFromContentType("application/octet-stream"))
}

func TestObjectURL(t *testing.T) {
	e := &Exporter{cfg: Config{Bucket: "b"}}
	assert.Equal(t, "s3://b/k.json", e.objectURL("k.json"))

	e.cfg.PublicBaseURL = "https://cdn.example.test/"
	assert.Equal(t, "https://cdn.example.test/k.json", e.objectURL("k.json"))
}

func TestExportCampaignUploadsJSON(t *testing.T) {
	var (
		gotPath        string
		gotContentType string
		gotBody        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e, err := NewExporter(Config{
		Endpoint:      srv.URL,
		Bucket:        "outreach",
		AccessKey:     "key",
		SecretKey:     "secret",
		UsePathStyle:  true,
		PublicBaseURL: "https://cdn.example.test",
	})
	require.NoError(t, err)

	hook := "Hey Sarah!"
	url, err := e.ExportCampaign(context.Background(),
		models.Campaign{ID: 7, UserID: 1, ServiceDescription: "Outreach automation", OutreachGoal: models.GoalBookCall},
		[]models.Message{{ID: 1, CampaignID: 7, HookLine: hook, MainMessage: "body"}},
	)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "/outreach/exports/campaigns/7/"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ".json"), gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.test/exports/campaigns/7/"), url)

	var doc Document
	require.NoError(t, json.Unmarshal(gotBody, &doc))
	assert.Equal(t, int64(7), doc.Campaign.ID)
	require.Len(t, doc.Messages, 1)
	assert.Equal(t, hook, doc.Messages[0].HookLine)
}
