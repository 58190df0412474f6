package project

// ToggleSelectionDTO is one click on a node's checkbox: the caller sends its
// current selection and gets the propagated result back.
type ToggleSelectionDTO struct {
	SelectedIDs []string `json:"selected_ids"`
	ProjectID   string   `json:"project_id"`
	Selected    bool     `json:"selected"`
}

// SelectAllDTO replaces the whole selection.
type SelectAllDTO struct {
	Selected bool `json:"selected"`
}

// SummaryDTO asks for the label of an existing selection.
type SummaryDTO struct {
	SelectedIDs []string `json:"selected_ids"`
}

// SelectionResponse carries the new caller-owned selection plus its label.
type SelectionResponse struct {
	SelectedIDs []string `json:"selected_ids"`
	Summary     string   `json:"summary"`
}

// TreeResponse is the flattened rendering of the forest for a given set of
// expanded branches.
type TreeResponse struct {
	Nodes   []TreeNode `json:"nodes"`
	Summary string     `json:"summary"`
}

// ProjectsResponse lists the raw forest in input order.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
}
