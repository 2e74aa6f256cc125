package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/nocturne-journal/nocturne/internal/domain"
)

// ValidateImportSchema checks the backup for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Entries) == 0 && len(schema.Goals) == 0 {
		errs = append(errs, fmt.Errorf("import file contains no entries or goals"))
	}

	refs := make(map[string]bool)
	errs = append(errs, validateEntries(schema.Entries, refs)...)
	errs = append(errs, validateGoals(schema.Goals, refs)...)

	return errs
}

func validateEntries(entries []EntryImport, refs map[string]bool) []error {
	var errs []error
	for i, e := range entries {
		prefix := fmt.Sprintf("entries[%d]", i)

		if e.Ref != "" {
			if refs[e.Ref] {
				errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, e.Ref))
			}
			refs[e.Ref] = true
		}
		if !domain.EntryType(e.Type).Valid() {
			errs = append(errs, fmt.Errorf("%s.type: invalid type %q (expected dream, journal or note)", prefix, e.Type))
		}
		if strings.TrimSpace(e.Text) == "" {
			errs = append(errs, fmt.Errorf("%s.text is required", prefix))
		}
		errs = append(errs, validateDate(prefix+".date_string", e.DateString)...)
		if e.Timestamp != nil {
			if _, err := time.Parse(time.RFC3339, *e.Timestamp); err != nil {
				errs = append(errs, fmt.Errorf("%s.timestamp: invalid format %q (expected RFC 3339)", prefix, *e.Timestamp))
			}
		}
	}
	return errs
}

func validateGoals(goals []GoalImport, refs map[string]bool) []error {
	var errs []error
	for i, g := range goals {
		prefix := fmt.Sprintf("goals[%d]", i)

		if strings.TrimSpace(g.Text) == "" {
			errs = append(errs, fmt.Errorf("%s.text is required", prefix))
		}
		if g.Source != "" && !domain.GoalSource(g.Source).Valid() {
			errs = append(errs, fmt.Errorf("%s.source: invalid source %q (expected ai or manual)", prefix, g.Source))
		}
		if g.EntryRef != nil && !refs[*g.EntryRef] {
			errs = append(errs, fmt.Errorf("%s.entry_ref: unknown entry ref %q", prefix, *g.EntryRef))
		}
		errs = append(errs, validateDate(prefix+".date_string", g.DateString)...)
	}
	return errs
}

func validateDate(field, value string) []error {
	if value == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if !domain.ValidDateString(value) {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return nil
}
