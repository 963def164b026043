package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// SheetView is the full state of one sheet.
type SheetView struct {
	ID     string     `json:"id"`
	Movies GridView   `json:"movies"`
	Series GridView   `json:"series"`
	Totals TotalsView `json:"totals"`
	Active *EditView  `json:"active,omitempty"`
}

// GridView describes one category grid.
type GridView struct {
	Category string    `json:"category"`
	Label    string    `json:"label"`
	Rows     []RowView `json:"rows"`
}

// RowView is one grid row in transport form.
type RowView struct {
	No          int    `json:"no"`
	Kind        string `json:"kind"`
	CustomFee   string `json:"customFee"`
	Edition     string `json:"edition"`
	Name        string `json:"name"`
	Lines       string `json:"lines"`
	Fees        string `json:"fees"`
	Selected    bool   `json:"selected"`
	Auto        bool   `json:"auto"`
	FeeEditable bool   `json:"feeEditable"`
}

// TotalsView carries the totals and their display strings.
type TotalsView struct {
	Movie      int64  `json:"movie"`
	Series     int64  `json:"series"`
	Grand      int64  `json:"grand"`
	MovieText  string `json:"movieText"`
	SeriesText string `json:"seriesText"`
	GrandText  string `json:"grandText"`
}

// EditView describes the cell editor that is open.
type EditView struct {
	Category string `json:"category"`
	No       int    `json:"no"`
	Field    string `json:"field"`
	Value    string `json:"value"`
}

// TierView is one fee tier.
type TierView struct {
	Category string `json:"category"`
	Edition  string `json:"edition"`
	Base     int64  `json:"base"`
	Limit    int64  `json:"limit"`
	Rate     int64  `json:"rate"`
	Summary  string `json:"summary"`
}

// RulesResponse lists the fee tiers.
type RulesResponse struct {
	Currency string     `json:"currency"`
	Tiers    []TierView `json:"tiers"`
}

// FieldView describes an editable column.
type FieldView struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
}

// StatusResponse summarizes the running server.
type StatusResponse struct {
	Running   bool   `json:"running"`
	PID       int    `json:"pid"`
	Bind      string `json:"bind"`
	RunID     string `json:"runId,omitempty"`
	StartedAt string `json:"startedAt"`
	Sheets    int    `json:"sheets"`

	LockFilePath string `json:"lockFilePath,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BeginEditRequest opens an editor on one cell.
type BeginEditRequest struct {
	Category string `json:"category"`
	No       int    `json:"no"`
	Field    string `json:"field"`
}

// InputRequest carries one keystroke's worth of editor text.
type InputRequest struct {
	Value string `json:"value"`
}

// CommitRequest optionally carries the final editor text before commit.
type CommitRequest struct {
	Value *string `json:"value,omitempty"`
}

// SelectRequest sets the selection mark of a row.
type SelectRequest struct {
	Selected bool `json:"selected"`
}

// DeleteResponse reports how many rows were removed.
type DeleteResponse struct {
	Deleted int       `json:"deleted"`
	Sheet   SheetView `json:"sheet"`
}

// PasteResponse reports how many rows a pasted block produced.
type PasteResponse struct {
	Pasted int       `json:"pasted"`
	Sheet  SheetView `json:"sheet"`
}
