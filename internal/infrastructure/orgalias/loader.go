// Package orgalias reads the organization alias file used by ticket sync.
//
// The file maps variant company names to the canonical one:
//
//	aliases:
//	  "Acme Corporation": "Acme Corp"
//	  "ACME S.A. de C.V.": "Acme Corp"
package orgalias

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"crmdesk/internal/domain/organization"
)

type file struct {
	Aliases map[string]string `yaml:"aliases"`
}

// Load returns an empty alias set when path is empty. A configured path that
// does not exist is an error.
func Load(path string) (organization.Aliases, error) {
	if path == "" {
		return organization.NewAliases(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("alias file %s not found", path)
		}
		return nil, fmt.Errorf("failed to read alias file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse alias file %s: %w", path, err)
	}
	return organization.NewAliases(f.Aliases), nil
}
