package process

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"osbc/config"
	"osbc/osufile"
	"osbc/state"
)

const sampleBeatmap = "\xef\xbb\xbf" + `osu file format v14

[General]
AudioFilename: audio.mp3
Mode: 0

[Metadata]
Title:Test

[Events]
//Background and Video events
0,0,"bg.jpg",0,0
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(sampleBeatmap)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.Version != 14 || !doc.HasVersionHeader {
		t.Fatalf("version = %d, header = %v", doc.Version, doc.HasVersionHeader)
	}

	body, ok := doc.EventsBody()
	if !ok {
		t.Fatalf("events section not found")
	}
	if !strings.Contains(body, `0,0,"bg.jpg",0,0`) {
		t.Fatalf("events body = %q", body)
	}

	// the byte order mark is dropped, everything else survives
	if got := doc.Render(); got != strings.TrimPrefix(sampleBeatmap, "\xef\xbb\xbf") {
		t.Fatalf("render mismatch:\n%s", got)
	}
}

func TestParseDocumentHeaderless(t *testing.T) {
	doc, err := ParseDocument("[Events]\n//storyboard\n")
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.HasVersionHeader {
		t.Fatalf("storyboard files have no version header")
	}
	if doc.Version != osufile.LatestVersion {
		t.Fatalf("version = %d, want %d", doc.Version, osufile.LatestVersion)
	}
}

func TestParseDocumentBadVersion(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		_, err := ParseDocument("osu file format vX\n")
		var le *osufile.LineError
		if !errors.As(err, &le) || le.Line != 0 {
			t.Fatalf("expected LineError on line 0, got %v", err)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if _, err := ParseDocument("osu file format v2\n"); err == nil {
			t.Fatalf("expected version check failure")
		}
	})
}

func TestDocumentGeneral(t *testing.T) {
	doc, err := ParseDocument(sampleBeatmap)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	fields := doc.General()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != "AudioFilename" || fields[0].Value != "audio.mp3" {
		t.Fatalf("field 0 = %+v", fields[0])
	}
}

func TestSetEventsBody(t *testing.T) {
	t.Run("replaces_existing", func(t *testing.T) {
		doc, err := ParseDocument(sampleBeatmap)
		if err != nil {
			t.Fatalf("ParseDocument failed: %v", err)
		}
		doc.SetEventsBody("2,100,200")
		body, _ := doc.EventsBody()
		if body != "2,100,200" {
			t.Fatalf("body = %q", body)
		}
		// unrelated sections stay untouched
		if !strings.Contains(doc.Render(), "[Metadata]\nTitle:Test") {
			t.Fatalf("metadata section lost:\n%s", doc.Render())
		}
	})

	t.Run("appends_missing", func(t *testing.T) {
		doc, err := ParseDocument("osu file format v14\n")
		if err != nil {
			t.Fatalf("ParseDocument failed: %v", err)
		}
		doc.SetEventsBody("//comment")
		want := "osu file format v14\n[Events]\n//comment\n"
		if got := doc.Render(); got != want {
			t.Fatalf("render = %q, want %q", got, want)
		}
	})
}

func TestSetVersion(t *testing.T) {
	t.Run("rewrites_header", func(t *testing.T) {
		doc, err := ParseDocument(sampleBeatmap)
		if err != nil {
			t.Fatalf("ParseDocument failed: %v", err)
		}
		if err := doc.SetVersion(13); err != nil {
			t.Fatalf("SetVersion failed: %v", err)
		}
		if doc.Version != 13 {
			t.Fatalf("version = %d", doc.Version)
		}
		if !strings.HasPrefix(doc.Render(), "osu file format v13\n") {
			t.Fatalf("header not rewritten:\n%s", doc.Render())
		}
	})

	t.Run("headerless_document", func(t *testing.T) {
		doc, err := ParseDocument("[Events]\n")
		if err != nil {
			t.Fatalf("ParseDocument failed: %v", err)
		}
		if err := doc.SetVersion(5); err != nil {
			t.Fatalf("SetVersion failed: %v", err)
		}
		if doc.Version != 5 || strings.Contains(doc.Render(), "osu file format") {
			t.Fatalf("headerless document must not gain a version line:\n%s", doc.Render())
		}
	})

	t.Run("rejects_unsupported", func(t *testing.T) {
		doc, err := ParseDocument(sampleBeatmap)
		if err != nil {
			t.Fatalf("ParseDocument failed: %v", err)
		}
		if err := doc.SetVersion(1); err == nil {
			t.Fatalf("expected version check failure")
		}
	})
}

func TestBuildOutputPath(t *testing.T) {
	env := &state.LocalEnv{
		Cfg: &config.Config{
			Document: config.DocumentConfig{
				OutputNameTemplate: "{{ .Name }}.v{{ .Version }}{{ .Ext }}",
			},
		},
	}

	got, err := buildOutputPath(filepath.Join("maps", "song.osu"), 14, env)
	if err != nil {
		t.Fatalf("buildOutputPath failed: %v", err)
	}
	if got != filepath.Join("maps", "song.v14.osu") {
		t.Fatalf("path = %q", got)
	}

	env.Cfg.Document.OutputNameTemplate = "{{ .Broken"
	if _, err := buildOutputPath("song.osu", 14, env); err == nil {
		t.Fatalf("expected template parse failure")
	}
}
