// internal/knowledge/loader.go
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Standard file names inside a knowledge directory.
const (
	CoursesFile = "courses.json"
	RulesFile   = "rules.json"
	PlansFile   = "teaching_plans.json"
)

// LoadFromFiles reads, validates and indexes the three knowledge documents
// from dir. Any failure here is fatal to construction; there is no partial
// store.
func LoadFromFiles(dir string) (*Store, error) {
	var (
		courses CoursesDoc
		rules   RulesDoc
		plans   PlansDoc
	)

	if err := loadDocument(filepath.Join(dir, CoursesFile), "courses", &courses); err != nil {
		return nil, err
	}
	if err := loadDocument(filepath.Join(dir, RulesFile), "rules", &rules); err != nil {
		return nil, err
	}
	if err := loadDocument(filepath.Join(dir, PlansFile), "teaching_plans", &plans); err != nil {
		return nil, err
	}

	return NewStore(&courses, &rules, &plans), nil
}

func loadDocument(path, name string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s document: %w", name, err)
	}
	if err := ValidateDocument(name, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s document: %w", name, err)
	}
	return nil
}
