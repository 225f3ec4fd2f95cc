package entities

// GeneRecord is one gene entry from genemap2.txt. Only rows with a populated
// Entrez gene ID produce a GeneRecord; the MIM number is unique per file.
type GeneRecord struct {
	EntrezGeneID       int      `json:"entrezGeneId"`
	MimNumber          int      `json:"mimNumber"`
	ChromosomeLocation string   `json:"chromosomeLocation"`
	Symbols            []string `json:"symbols"`
}
