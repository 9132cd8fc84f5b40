package table

// Action is a link or button rendered inside a cell.
type Action struct {
	Label  string
	Href   string
	Method string // empty for a link, "post" for a form button
	Danger bool
}

type Cell struct {
	Text    string
	Href    string
	Image   string
	Badge   string
	Actions []Action
}

type Row []Cell

// Table is the view model of a list: a header row and either one row per
// record, in order, or a single fallback row.
type Table struct {
	Headers  []string
	Rows     []Row
	Fallback string
}

// New maps items to rows with render. It performs no sorting, filtering or
// paging; callers pass the records they want shown.
func New[T any](items []T, headers []string, render func(T) Row, fallback string) Table {
	t := Table{
		Headers:  headers,
		Rows:     make([]Row, 0, len(items)),
		Fallback: fallback,
	}
	for _, item := range items {
		t.Rows = append(t.Rows, render(item))
	}
	return t
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Span is the column count a fallback row stretches across.
func (t Table) Span() int {
	if len(t.Headers) == 0 {
		return 1
	}
	return len(t.Headers)
}

func Text(s string) Cell {
	return Cell{Text: s}
}

func Link(text, href string) Cell {
	return Cell{Text: text, Href: href}
}
