package awsx

import (
	"context"
	"os"
	"testing"
)

func TestLoadConfig_DefaultRegion(t *testing.T) {
	os.Setenv("AWS_REGION", "")

	cfg, err := LoadConfig(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Region != "us-east-1" {
		t.Fatalf("expected default region 'us-east-1', got %s", cfg.Region)
	}
}

func TestLoadConfig_ExplicitRegion(t *testing.T) {
	os.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := LoadConfig(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Region != "eu-west-1" {
		t.Fatalf("region mismatch, got %s", cfg.Region)
	}
}
