package domain

const (
	// InboxID is the fallback group. It always exists and can be
	// neither deleted nor reparented.
	InboxID = "inbox"

	// MaxDepth bounds the tree: a group may have at most two ancestors.
	MaxDepth = 3

	// MergedGroupName is the name given to the intermediate group
	// created when two groups are merged by a drop gesture.
	MergedGroupName = "新分组"
)

// Virtual destinations are computed views, not stored groups. They can
// be selected in the sidebar but never participate in tree mutations.
var virtualIDs = map[string]struct{}{
	"today":     {},
	"week":      {},
	"all":       {},
	"completed": {},
	"trash":     {},
}

func IsVirtual(id string) bool {
	_, ok := virtualIDs[id]
	return ok
}

type Group struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	ParentID string  `json:"parentId,omitempty"`
	Pinned   bool    `json:"pinned,omitempty"`
	Order    float64 `json:"order"`
}

// DeletePolicy selects what happens to a deleted group's tasks.
type DeletePolicy string

const (
	// DeleteMove reassigns the group's tasks to the inbox and promotes
	// child groups to the top level.
	DeleteMove DeletePolicy = "move"
	// DeleteCascade removes the whole subtree and trashes every task
	// that referenced any group in it.
	DeleteCascade DeletePolicy = "delete"
)

func (p DeletePolicy) Valid() bool {
	return p == DeleteMove || p == DeleteCascade
}

// DropPosition is the already-resolved half of the drop target the
// pointer landed on. Mapping pointer geometry to a position happens at
// the presentation boundary; the tree only ever sees the result.
type DropPosition string

const (
	DropAbove DropPosition = "above"
	DropBelow DropPosition = "below"
)

func PresetGroups() []Group {
	return []Group{
		{ID: InboxID, Name: "未分组", Color: "#7cc4a3", Order: 1},
		{ID: "work", Name: "工作", Color: "#a7c8ff", Order: 2},
		{ID: "wish", Name: "心愿", Color: "#f5c26b", Order: 3},
		{ID: "study", Name: "学习", Color: "#c9b7ff", Order: 4},
		{ID: "shop", Name: "购物", Color: "#ffb7c5", Order: 5},
	}
}
