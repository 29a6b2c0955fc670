package predict

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SD-18/TeaGuard/internal/domain"
)

func testAsset() domain.ImageAsset {
	return domain.ImageAsset{Data: []byte("fake-jpeg"), MediaType: "image/jpeg", FileName: "leaf.jpg"}
}

func TestClassifySuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image field missing: %v", err)
		}
		file.Close()
		if header.Filename != "leaf.jpg" {
			t.Errorf("filename = %q, want leaf.jpg", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"latency_ms": 1240,
			"prediction": {
				"disease": "Blister_Blight",
				"confidence": 87.3,
				"all_probabilities": {
					"Blister_Blight": 87.3,
					"Grey_Blight": 4.9,
					"Brown_Blight": 4.9,
					"Healthy_leaves": 2.9
				}
			},
			"images": {"predicted_image": "/static/annotated/abc.jpg"}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	raw, err := c.Classify(context.Background(), testAsset())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if gotPath != "/api/predict" {
		t.Errorf("path = %q, want /api/predict", gotPath)
	}
	if raw.Disease != "Blister_Blight" {
		t.Errorf("disease = %q", raw.Disease)
	}
	if raw.Confidence != 87.3 {
		t.Errorf("confidence = %v", raw.Confidence)
	}
	if raw.LatencyMS != 1240 {
		t.Errorf("latency = %d", raw.LatencyMS)
	}
	if raw.AnnotatedImageRef != "/static/annotated/abc.jpg" {
		t.Errorf("annotated ref = %q", raw.AnnotatedImageRef)
	}
	if raw.HasSeverity {
		t.Error("HasSeverity true without severity fields")
	}

	// Wire order of the probability object must survive decoding, including
	// the equal Grey/Brown pair.
	wantOrder := []string{"Blister_Blight", "Grey_Blight", "Brown_Blight", "Healthy_leaves"}
	if len(raw.Probabilities) != len(wantOrder) {
		t.Fatalf("got %d probabilities, want %d", len(raw.Probabilities), len(wantOrder))
	}
	for i, want := range wantOrder {
		if raw.Probabilities[i].Label != want {
			t.Errorf("probabilities[%d] = %q, want %q", i, raw.Probabilities[i].Label, want)
		}
	}
}

func TestClassifyParsesSeverityFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"success": true,
			"latency_ms": 900,
			"prediction": {
				"disease": "Blister_Blight",
				"confidence": 91.0,
				"all_probabilities": {"Blister_Blight": 91.0},
				"severity": "Severe",
				"severity_percent": 88.5
			},
			"images": {"predicted_image": ""}
		}`))
	}))
	defer srv.Close()

	raw, err := NewClient(srv.URL, 5*time.Second).Classify(context.Background(), testAsset())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !raw.HasSeverity || raw.Severity != "Severe" || raw.SeverityPercent != 88.5 {
		t.Fatalf("severity passthrough = %+v", raw)
	}
}

func TestClassifyServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 5*time.Second).Classify(context.Background(), testAsset())
	if !errors.Is(err, domain.ErrService) {
		t.Fatalf("got %v, want ErrService", err)
	}
}

func TestClassifyUnsuccessfulResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with success=false still means the service failed.
		w.Write([]byte(`{"success":false,"prediction":{"disease":"x","confidence":1,"all_probabilities":{"x":1}}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 5*time.Second).Classify(context.Background(), testAsset())
	if !errors.Is(err, domain.ErrService) {
		t.Fatalf("got %v, want ErrService", err)
	}
}

func TestClassifyParseError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"missing disease", `{"success":true,"prediction":{"confidence":1,"all_probabilities":{"x":1}}}`},
		{"empty probabilities", `{"success":true,"prediction":{"disease":"x","confidence":1,"all_probabilities":{}}}`},
		{"duplicate labels", `{"success":true,"prediction":{"disease":"x","confidence":1,"all_probabilities":{"a":1,"a":2}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, 5*time.Second).Classify(context.Background(), testAsset())
			if !errors.Is(err, domain.ErrParse) {
				t.Fatalf("got %v, want ErrParse", err)
			}
		})
	}
}

func TestClassifyNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := NewClient(srv.URL, time.Second).Classify(context.Background(), testAsset())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("got %v, want ErrNetwork", err)
	}
}
