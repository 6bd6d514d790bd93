package gateway

// Wire types for the ClauseSense gateway. The server owns these shapes;
// the client decodes them verbatim.

// UploadResult is the response to a successful upload.
type UploadResult struct {
	Status         string `json:"status"`
	DocID          string `json:"doc_id"`
	Classification string `json:"classification,omitempty"`
	Preview        string `json:"preview,omitempty"`
}

// AnalyzeResult bundles the structured findings and the generated report.
type AnalyzeResult struct {
	DocID    string   `json:"doc_id"`
	Analysis Analysis `json:"analysis"`
	Report   string   `json:"report"`
}

// Analysis is the multi-domain result: one sub-report per agent.
type Analysis struct {
	Legal      LegalFindings      `json:"legal"`
	Finance    FinanceFindings    `json:"finance"`
	Compliance ComplianceFindings `json:"compliance"`
	Operations OperationsFindings `json:"operations"`
}

// LegalFindings is the legal agent's sub-report.
type LegalFindings struct {
	Agent       string   `json:"agent,omitempty"`
	KeyFindings []string `json:"key_findings"`
	Risks       []string `json:"risks"`
}

// FinanceFindings is the finance agent's sub-report. The agent runs
// after legal and records which legal findings it consumed.
type FinanceFindings struct {
	Agent             string   `json:"agent,omitempty"`
	UsedLegalFindings []string `json:"used_legal_findings,omitempty"`
	FinancialRisks    []string `json:"financial_risks"`
}

// ComplianceFindings is the compliance agent's sub-report.
type ComplianceFindings struct {
	Agent           string              `json:"agent,omitempty"`
	UsedInputs      map[string][]string `json:"used_inputs,omitempty"`
	ChecksPerformed []string            `json:"checks_performed"`
}

// OperationsFindings is the operations agent's sub-report.
type OperationsFindings struct {
	Agent                   string              `json:"agent,omitempty"`
	DependenciesUsed        map[string][]string `json:"dependencies_used,omitempty"`
	OptimizationSuggestions []string            `json:"optimization_suggestions"`
}

// Status is the gateway's root-endpoint health response.
type Status struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}
