package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadDocument_PlainText(t *testing.T) {
	path := writeTemp(t, "letter.txt", "Claim No: CLM12345\nRejected under PED-001.")

	text, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if !strings.Contains(text, "CLM12345") {
		t.Errorf("text = %q", text)
	}
}

func TestReadDocument_Markdown(t *testing.T) {
	path := writeTemp(t, "policy.MD", "# Policy Terms\n\nWaiting period: 36 months.")

	text, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if !strings.Contains(text, "36 months") {
		t.Errorf("text = %q", text)
	}
}

func TestReadDocument_HTML(t *testing.T) {
	page := `<html><head><style>body { color: red }</style>
<script>alert("tracking")</script></head>
<body><p>Claim No: CLM555</p><p>Rejection: waiting period WP-001</p></body></html>`
	path := writeTemp(t, "letter.html", page)

	text, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if !strings.Contains(text, "CLM555") || !strings.Contains(text, "WP-001") {
		t.Errorf("text = %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color: red") {
		t.Error("script/style content should be stripped")
	}
	if !strings.Contains(text, "\n") {
		t.Error("block elements should produce line breaks")
	}
}

func TestReadDocument_UnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "letter.pdf", "%PDF-1.4")
	if _, err := ReadDocument(path); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestReadDocument_MissingFile(t *testing.T) {
	if _, err := ReadDocument(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}
