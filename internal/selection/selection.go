// Package selection builds the root choices offered by the page's dropdown.
package selection

import "hanzimap/internal/domain"

// Option is one entry of the single-choice root input
type Option struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// EligibleRoots lists the nodes with at least one outgoing edge, in document
// order. The option whose ID equals defaultID, if any, is marked selected.
func EligibleRoots(doc *domain.Document, defaultID string) []Option {
	options := make([]Option, 0)
	if doc == nil {
		return options
	}

	degree := doc.OutDegree()
	for _, n := range doc.Nodes {
		if degree[n.ID] == 0 {
			continue
		}
		options = append(options, Option{
			ID:       n.ID,
			Label:    n.Label(),
			Selected: n.ID == defaultID,
		})
	}
	return options
}

// Initial returns the ID a single-choice input would hold once populated:
// the selected option, else the first one, else "" when there are no options
func Initial(options []Option) string {
	for _, o := range options {
		if o.Selected {
			return o.ID
		}
	}
	if len(options) > 0 {
		return options[0].ID
	}
	return ""
}
