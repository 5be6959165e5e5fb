package utils

import (
	"strings"
	"testing"
)

func TestNormalizeLocation(t *testing.T) {
	t.Parallel()

	got, err := NormalizeLocation("s3://bucket/resumes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "s3://bucket/resumes" {
		t.Fatalf("expected scheme url to be kept, got %q", got)
	}

	got, err = NormalizeLocation("/tmp/resumes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, "/tmp/resumes") {
		t.Fatalf("expected file url, got %q", got)
	}

	got, err = NormalizeLocation("resumes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, "/resumes") {
		t.Fatalf("expected absolute file url, got %q", got)
	}
}
