package entities

// ExtractionStats aggregates the recoverable-error counters of one extraction
// run. Fatal errors abort the run instead of being counted here.
type ExtractionStats struct {
	Mim2GeneRows       int `json:"mim2gene_rows"`
	Genemap2Rows       int `json:"genemap2_rows"`
	MorbidmapRows      int `json:"morbidmap_rows"`
	EmptyLines         int `json:"empty_lines"`
	MalformedRows      int `json:"malformed_rows"`
	MalformedMentions  int `json:"malformed_mentions"`
	RowsLackingEntrez  int `json:"rows_lacking_entrez"`
	EmptyPhenotypes    int `json:"empty_phenotypes"`
	ResolutionFailures int `json:"resolution_failures"`
	DuplicateMimKeys   int `json:"duplicate_mim_keys"`
	MergedAssociations int `json:"merged_associations"`
	TotalAssociations  int `json:"total_associations"`
}
