package model

// SheetMeta keeps the detected layout of an imported sheet for tracing
// classification decisions after the fact.
type SheetMeta struct {
	ImportLogID  string `json:"importLogId"`
	Domain       string `json:"domain"`
	SheetName    string `json:"sheetName"`
	HeaderRows   string `json:"headerRows"` // JSON array, 1-based
	TotalColumns int    `json:"totalColumns"`
	TotalRows    int    `json:"totalRows"`
	ParsedRows   int    `json:"parsedRows"`
	ColumnsJSON  string `json:"columnsJson"`
	SourceFile   string `json:"sourceFile"`
}
