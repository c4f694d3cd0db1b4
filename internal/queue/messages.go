package queue

// AnalyzeDocumentMsg asks the worker to extract a document into its case
// graph and run the pattern scan.
type AnalyzeDocumentMsg struct {
	Message       string `json:"message"`
	CaseID        string `json:"case_id"`
	DocumentKey   string `json:"document_key"`
	DocumentType  string `json:"document_type"`
	DocumentName  string `json:"document_name"`
	CorrelationID string `json:"correlation_id"`
}
