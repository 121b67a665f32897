package locale

import "testing"

func TestDefaultCatalogComplete(t *testing.T) {
	l := Default()
	if l.CLI.Description == "" {
		t.Fatal("missing CLI description")
	}
	if l.Errors.UnknownFormat == "" || l.Errors.UnknownConnection == "" {
		t.Fatal("missing error messages")
	}
	if l.Logs.ExecutingBatch == "" || l.Logs.BatchFailed == "" {
		t.Fatal("missing log messages")
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	l, err := Load("xx_XX")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if l.CLI.Description != Default().CLI.Description {
		t.Fatal("defaults not preserved")
	}
}

func TestDetectSystemLocale(t *testing.T) {
	t.Setenv("LANG", "pt-BR.UTF-8")
	if got := DetectSystemLocale(); got != "pt_BR" {
		t.Fatalf("got %q", got)
	}

	t.Setenv("LANG", "")
	if got := DetectSystemLocale(); got != "en_US" {
		t.Fatalf("got %q", got)
	}
}
