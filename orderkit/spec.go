package orderkit

const (
	ascArrow  = " ↑"
	descArrow = " ↓"
)

// Spec holds everything a view needs to render one sortable column.
type Spec struct {
	Key       string
	Title     string
	AscTitle  string
	AscURL    string
	DescTitle string
	DescURL   string
	Active    Direction
}

// IsActive reports whether the list is currently ordered by this column.
func (s Spec) IsActive() bool {
	return s.Active != ""
}

func (s Spec) AscActive() bool {
	return s.Active == Ascending
}

func (s Spec) DescActive() bool {
	return s.Active == Descending
}

// Title is the caption of a sortable column. Create it with Label or Labels.
type Title struct {
	label string
	asc   string
	desc  string
	pair  bool
}

// Label makes a title whose direction captions get an arrow appended, e.g. "Name ↑" and "Name ↓".
func Label(label string) Title {
	return Title{label: label}
}

// Labels makes a title with explicit captions for each direction, e.g. Labels("A-Z", "Z-A").
func Labels(asc string, desc string) Title {
	return Title{label: asc, asc: asc, desc: desc, pair: true}
}

func (t Title) String() string {
	return t.label
}

func (t Title) captions() (asc string, desc string) {
	if t.pair {
		return t.asc, t.desc
	}
	return t.label + ascArrow, t.label + descArrow
}

// Column is one entry of a DeclareAll batch.
type Column struct {
	Key   string
	Title Title
}
