package heavyselect

import "fmt"

// Config is the search configuration snapshot stored per rendered widget.
// It is purely structural: sources are referenced by registry name, never by
// a live handle, so an entry written in one process can be read in another.
type Config struct {
	// Source names the registered search source that executes the query.
	Source string `json:"source"`

	// Query describes the target collection.
	Query Query `json:"query"`

	// SearchFields are the attribute names matched against the search term.
	SearchFields []string `json:"search_fields"`

	// MaxResults is the page size for search responses. 0 => 25.
	MaxResults int `json:"max_results"`

	// DependentFields names sibling form fields whose current values the
	// client sends along with each search. The endpoint turns them into
	// equality conditions, narrowing the child's results by the parent's
	// selection.
	DependentFields []string `json:"dependent_fields,omitempty"`

	// Filter carries optional source-specific parameters. Values must be
	// codec-serializable; a live object here makes Store fail loudly.
	Filter map[string]any `json:"filter,omitempty"`
}

// Query is a structural description of the collection a widget searches.
type Query struct {
	// Collection is the table or collection name.
	Collection string `json:"collection"`

	// IDField is the identifier column. "" => "id".
	IDField string `json:"id_field,omitempty"`

	// TextField is the display column. "" => first search field.
	TextField string `json:"text_field,omitempty"`

	// Where holds fixed conditions applied to every search.
	Where []Cond `json:"where,omitempty"`

	// OrderBy lists ordering fields; prefix "-" for descending.
	OrderBy []string `json:"order_by,omitempty"`
}

// Cond is one fixed query condition.
type Cond struct {
	Field string `json:"field"`
	Op    string `json:"op"` // "=", "!=", "<", "<=", ">", ">=", "like"
	Value any    `json:"value"`
}

const defaultMaxResults = 25

// Limit returns the effective page size.
func (c Config) Limit() int {
	if c.MaxResults > 0 {
		return c.MaxResults
	}
	return defaultMaxResults
}

func (c Config) validate() error {
	if c.Source == "" {
		return fmt.Errorf("heavyselect: config has no source")
	}
	if len(c.SearchFields) == 0 {
		return fmt.Errorf("heavyselect: config has no search fields")
	}
	return nil
}
