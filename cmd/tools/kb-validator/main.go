// cmd/tools/kb-validator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"advisor-workers/internal/knowledge"
)

// kb-validator checks the three knowledge base documents before deployment:
// schema validation for each file, then cross-reference checks over the
// loaded store (prerequisite ids, teaching plan entries, cohort mappings).
func main() {
	dir := flag.String("dir", "knowledge", "Directory containing the knowledge base documents")
	strict := flag.Bool("strict", false, "Treat cross-reference warnings as errors")
	flag.Parse()

	docs := []struct {
		file string
		name string
	}{
		{knowledge.CoursesFile, "courses"},
		{knowledge.RulesFile, "rules"},
		{knowledge.PlansFile, "teaching_plans"},
	}

	failed := false
	for _, doc := range docs {
		path := filepath.Join(*dir, doc.file)
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", doc.file, err)
			failed = true
			continue
		}
		if err := knowledge.ValidateDocument(doc.name, data); err != nil {
			fmt.Printf("FAIL  %s: %v\n", doc.file, err)
			failed = true
			continue
		}
		fmt.Printf("OK    %s\n", doc.file)
	}
	if failed {
		os.Exit(1)
	}

	store, err := knowledge.LoadFromFiles(*dir)
	if err != nil {
		fmt.Printf("FAIL  load: %v\n", err)
		os.Exit(1)
	}

	warnings := crossCheck(store)
	for _, w := range warnings {
		fmt.Printf("WARN  %s\n", w)
	}

	fmt.Printf("validated %d courses, %d rules, %d cohort mappings, %d warnings\n",
		len(store.Courses()), len(store.AllRules()), len(store.CohortMappings()), len(warnings))

	if *strict && len(warnings) > 0 {
		os.Exit(1)
	}
}

func crossCheck(store *knowledge.Store) []string {
	var warnings []string

	// Prerequisites must reference catalog courses.
	for _, course := range store.Courses() {
		for _, pre := range course.Prerequisites {
			if _, ok := store.Course(pre); !ok {
				warnings = append(warnings,
					fmt.Sprintf("course %s: prerequisite %s not in catalog", course.ID, pre))
			}
		}
	}

	// Concrete teaching plan entries must be catalog courses. Placeholder
	// entries (empty or "-" ids) are synthesized at resolve time.
	planKeys := make([]string, 0, len(store.TeachingPlans()))
	for key := range store.TeachingPlans() {
		planKeys = append(planKeys, key)
	}
	sort.Strings(planKeys)

	for _, key := range planKeys {
		plan, _ := store.TeachingPlan(key)
		for semKey, sem := range plan.Semesters {
			for _, entry := range sem.Courses {
				ids := entry.Choices
				if !entry.IsSlot() && entry.ID != "" && entry.ID != "-" {
					ids = []string{entry.ID}
				}
				for _, id := range ids {
					if _, ok := store.Course(id); !ok {
						warnings = append(warnings,
							fmt.Sprintf("plan %s semester %s: unknown course %s", key, semKey, id))
					}
				}
			}
		}
	}

	// Every cohort mapping must have at least one teaching plan for its
	// curriculum version.
	for cohort, info := range store.CohortMappings() {
		found := false
		for key := range store.TeachingPlans() {
			if strings.HasSuffix(key, "_"+info.Curriculum) {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings,
				fmt.Sprintf("cohort %s: no teaching plan for curriculum %s", cohort, info.Curriculum))
		}
	}

	return warnings
}
