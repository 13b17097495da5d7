package excel

// Table is a sheet or CSV file split into its header row and data rows.
type Table struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows, trimmed, possibly ragged
}

// Column returns the index of the named column, or -1. An empty name
// selects the first column.
func (t *Table) Column(name string) int {
	if name == "" && len(t.Headers) > 0 {
		return 0
	}
	for i, header := range t.Headers {
		if header == name {
			return i
		}
	}
	return -1
}
