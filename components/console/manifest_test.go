package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `version: "1"
name: Threat Panels
package: github.com/acme/threat-panels
panels:
  - definition:
      code: acme.panel.threat_map
      name: Threat Map
      description: Live geospatial threat overlay.
      category: intel
    provider:
      name: Threat Map Provider
      entry: github.com/acme/threat-panels.NewThreatMapProvider
      capabilities: [html, json]
      channel: partner
    maintainers: [ops@acme.example]
    tags: [geo, intel]
`

func TestDecodeManifest(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("DecodeManifest returned error: %v", err)
	}
	if doc.Version != ManifestVersion {
		t.Fatalf("expected version %s, got %s", ManifestVersion, doc.Version)
	}
	if len(doc.Panels) != 1 || doc.Panels[0].Definition.Code != "acme.panel.threat_map" {
		t.Fatalf("unexpected panels: %#v", doc.Panels)
	}
	if doc.Panels[0].Provider.Channel != "partner" {
		t.Fatalf("expected provider metadata decoded, got %#v", doc.Panels[0].Provider)
	}
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	manifest := `version: "1"
panels: []
surprise: true
`
	if _, err := DecodeManifest(strings.NewReader(manifest)); err == nil {
		t.Fatalf("expected unknown field rejection")
	}
}

func TestDecodeManifestRejectsDuplicates(t *testing.T) {
	manifest := `version: "1"
panels:
  - definition: {code: a.panel.x, name: X}
  - definition: {code: a.panel.x, name: X again}
`
	if _, err := DecodeManifest(strings.NewReader(manifest)); err == nil {
		t.Fatalf("expected duplicate code rejection")
	}
}

func TestDecodeManifestRejectsUnsupportedVersion(t *testing.T) {
	manifest := `version: "2"
panels: []
`
	if _, err := DecodeManifest(strings.NewReader(manifest)); err == nil {
		t.Fatalf("expected version rejection")
	}
}

func TestDecodeManifestDefaultsVersion(t *testing.T) {
	manifest := `panels:
  - definition: {code: a.panel.x, name: X}
`
	doc, err := DecodeManifest(strings.NewReader(manifest))
	if err != nil {
		t.Fatalf("DecodeManifest returned error: %v", err)
	}
	if doc.Version != ManifestVersion {
		t.Fatalf("expected default version, got %q", doc.Version)
	}
}

func TestLoadManifestFileRegistersMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panels.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	reg := NewRegistry()
	doc, err := reg.LoadManifestFile(path)
	if err != nil {
		t.Fatalf("LoadManifestFile returned error: %v", err)
	}
	if doc.Source != path {
		t.Fatalf("expected source recorded, got %q", doc.Source)
	}
	if _, ok := reg.Definition("acme.panel.threat_map"); !ok {
		t.Fatalf("expected manifest definition registered")
	}
	meta, ok := reg.ProviderMetadata("acme.panel.threat_map")
	if !ok {
		t.Fatalf("expected provider metadata recorded")
	}
	if meta.Entry != "github.com/acme/threat-panels.NewThreatMapProvider" {
		t.Fatalf("unexpected entry %q", meta.Entry)
	}
}

func TestReadManifestMissingFile(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}
