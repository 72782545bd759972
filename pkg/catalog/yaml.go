package catalog

import (
	"errors"
	"io"

	"github.com/tantalor93/dnsrank/pkg/dnsbench"
	"gopkg.in/yaml.v3"
)

type yamlCatalog struct {
	Providers []*dnsbench.Provider `yaml:"providers"`
}

func parseYAML(r io.Reader) ([]*dnsbench.Provider, error) {
	var c yamlCatalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return c.Providers, nil
}

// WriteYAML writes providers as a YAML catalog that can be loaded again.
func WriteYAML(w io.Writer, providers []*dnsbench.Provider) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlCatalog{Providers: providers}); err != nil {
		return err
	}
	return enc.Close()
}
