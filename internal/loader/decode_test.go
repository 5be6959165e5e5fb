package loader

import (
	"archive/zip"
	"bytes"
	"testing"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func TestDecodeDOCX(t *testing.T) {
	t.Parallel()

	data := buildDOCX(t, `<w:document `+wordNS+`><w:body>`+
		`<w:p><w:r><w:t>Jane</w:t></w:r><w:r><w:t xml:space="preserve"> Doe</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Python</w:t><w:tab/><w:t>SQL</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := DecodeDOCX(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Jane Doe\nPython\tSQL\nline one\nline two"
	if text != expected {
		t.Fatalf("expected %q, got %q", expected, text)
	}
}

func TestDecodeDOCXErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("word/styles.xml"); err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	cases := map[string][]byte{
		"not a zip":        []byte("plain text"),
		"missing document": buf.Bytes(),
		"broken xml":       buildDOCX(t, `<w:document `+wordNS+`><w:body><w:p>`),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := DecodeDOCX(data); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDecodePDFRejectsInvalidData(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("not a pdf at all")} {
		if _, err := DecodePDF(data); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
