package console

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// PanelManifestDocument models a YAML/JSON manifest describing panels/providers.
type PanelManifestDocument struct {
	Version  string          `json:"version" yaml:"version"`
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Package  string          `json:"package,omitempty" yaml:"package,omitempty"`
	Homepage string          `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Panels   []ManifestPanel `json:"panels" yaml:"panels"`
	Source   string          `json:"-" yaml:"-"`
}

// ManifestPanel describes a single panel entry within a manifest.
type ManifestPanel struct {
	Definition  PanelDefinition  `json:"definition" yaml:"definition"`
	Provider    ManifestProvider `json:"provider,omitempty" yaml:"provider,omitempty"`
	Maintainers []string         `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ManifestProvider captures discovery metadata about a provider implementation.
type ManifestProvider struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Entry        string   `json:"entry,omitempty" yaml:"entry,omitempty"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty"`
	DocsURL      string   `json:"docs_url,omitempty" yaml:"docs_url,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Channel      string   `json:"channel,omitempty" yaml:"channel,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// registry, and returns the document.
func (r *Registry) LoadManifestFile(path string) (*PanelManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers definitions and provider metadata from a
// decoded manifest.
func (r *Registry) LoadManifestDocument(doc *PanelManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("console: manifest document is nil")
	}
	for _, panel := range doc.Panels {
		if err := r.RegisterDefinition(panel.Definition); err != nil {
			return fmt.Errorf("console: register panel %s from %s: %w", panel.Definition.Code, doc.Source, err)
		}
		r.recordProviderMetadata(panel.Definition.Code, panel.Provider)
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*PanelManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("console: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("console: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*PanelManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc PanelManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("console: manifest is empty")
		}
		return nil, fmt.Errorf("console: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *PanelManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("console: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Panels))
	for idx, panel := range doc.Panels {
		if panel.Definition.Code == "" {
			return fmt.Errorf("console: manifest panel at index %d is missing definition.code", idx)
		}
		if panel.Definition.Name == "" {
			return fmt.Errorf("console: manifest panel %s missing definition.name", panel.Definition.Code)
		}
		if _, exists := seen[panel.Definition.Code]; exists {
			return fmt.Errorf("console: manifest duplicates panel code %s", panel.Definition.Code)
		}
		seen[panel.Definition.Code] = struct{}{}
	}
	return nil
}

func (doc *PanelManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}

func (p ManifestProvider) isZero() bool {
	return p.Name == "" &&
		p.Summary == "" &&
		p.Entry == "" &&
		p.Package == "" &&
		p.DocsURL == "" &&
		len(p.Capabilities) == 0 &&
		p.Channel == ""
}
