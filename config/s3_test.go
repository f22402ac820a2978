package config

import "testing"

func TestGetS3Config(t *testing.T) {
	t.Setenv("BUCKET_NAME", "renders")
	t.Setenv("REGION", "")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("MANIFEST_PREFIX", "/manifests/")

	cfg, err := GetS3Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("Region = %q, want fallback to AWS_REGION", cfg.Region)
	}
	if cfg.ManifestPrefix != "manifests" {
		t.Errorf("ManifestPrefix = %q, want %q", cfg.ManifestPrefix, "manifests")
	}
}

func TestGetS3ConfigRequiresBucket(t *testing.T) {
	t.Setenv("BUCKET_NAME", "")
	t.Setenv("REGION", "eu-west-1")

	if _, err := GetS3Config(); err == nil {
		t.Fatal("expected error without BUCKET_NAME")
	}
}
