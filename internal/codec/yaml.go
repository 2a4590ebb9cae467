package codec

import (
	"fmt"
	"io"

	"hanzimap/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument represents the YAML structure for graph data
type yamlDocument struct {
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
}

type yamlNode struct {
	ID      string `yaml:"id"`
	Meaning string `yaml:"meaning"`
	Learned bool   `yaml:"learned,omitempty"`
}

type yamlEdge struct {
	ID     string `yaml:"id,omitempty"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Parse imports graph data from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Document, error) {
	var yd yamlDocument
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yd); err != nil {
		if err == io.EOF {
			return domain.NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	doc := domain.NewDocument()

	for _, yn := range yd.Nodes {
		doc.AddNode(domain.Node{
			ID:      yn.ID,
			Meaning: yn.Meaning,
			Learned: yn.Learned,
		})
	}

	for _, ye := range yd.Edges {
		doc.AddEdge(domain.Edge{
			ID:     ye.ID,
			Source: ye.Source,
			Target: ye.Target,
		})
	}

	return doc, nil
}

// Export exports graph data to YAML
func (c *YAMLCodec) Export(doc *domain.Document, w io.Writer) error {
	yd := yamlDocument{
		Nodes: make([]yamlNode, 0, len(doc.Nodes)),
		Edges: make([]yamlEdge, 0, len(doc.Edges)),
	}

	for _, n := range doc.Nodes {
		yd.Nodes = append(yd.Nodes, yamlNode{
			ID:      n.ID,
			Meaning: n.Meaning,
			Learned: n.Learned,
		})
	}

	for _, e := range doc.Edges {
		yd.Edges = append(yd.Edges, yamlEdge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yd); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
