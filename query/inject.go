package query

import "fmt"

// AddToQuery returns q with addition applied.
//
// With an empty field the whole query is wrapped: the result is exactly
// "(" + q + ") " + addition, q is not parsed and no error is returned.
//
// Otherwise q is deparsed and the term of every record whose field equals
// field (case-sensitive) becomes "(" + term + " " + addition + ")". Other
// records are left alone and the result is reassembled, so a query without
// a matching field comes back with normalized spacing only. Applying the
// same addition twice nests the parentheses twice.
func AddToQuery(q, addition, field string) (string, error) {
	if field == "" {
		return "(" + q + ") " + addition, nil
	}

	records, err := Deparse(q)
	if err != nil {
		return "", err
	}
	for i := range records {
		if records[i].Field == field {
			records[i].Term = "(" + records[i].Term + " " + addition + ")"
		}
	}
	return Assemble(records), nil
}

// Rule is a named AddToQuery invocation. An empty Field wraps the whole query.
type Rule struct {
	Name     string `yaml:"name" json:"name"`
	Field    string `yaml:"field,omitempty" json:"field,omitempty"`
	Addition string `yaml:"addition" json:"addition"`
}

// ApplyRules applies rules to q in order. Whole-query rules turn the query
// into a single parenthesised term, so field rules listed after them no
// longer find their field.
func ApplyRules(q string, rules []Rule) (string, error) {
	result := q
	for _, rule := range rules {
		next, err := AddToQuery(result, rule.Addition, rule.Field)
		if err != nil {
			return "", fmt.Errorf("rule %q: %w", rule.Name, err)
		}
		result = next
	}
	return result, nil
}
