// Package navigation holds the dashboard navigation tree and the visibility
// filter that prunes it per session.
package navigation

// Item is a node in the navigation tree. A node with Children is a group;
// Action/Subject, when set, gate the node's visibility.
type Item struct {
	Title    string `json:"title"`
	To       string `json:"to,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Action   string `json:"action,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Children []Item `json:"children,omitempty"`
}

// IsGroup reports whether the item is a group node.
func (i Item) IsGroup() bool {
	return len(i.Children) > 0
}
