// Package data provides thread-safe storage for the extracted OMIM data.
// The DataContainer swaps whole snapshots atomically so readers never see a
// half-updated association set.
package data

import (
	"sync/atomic"
	"time"

	"github.com/repotrial/omim-extractor/interfaces"
	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/omimparser/entities"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds all the data with atomic pointers for zero-downtime updates
type DataContainer struct {
	associations    atomic.Value // []entities.DisorderAssociation
	genes           atomic.Value // []entities.GeneRecord
	byGene          atomic.Value // map[int][]entities.DisorderAssociation
	byDisorder      atomic.Value // map[int][]entities.DisorderAssociation
	genesMap        atomic.Value // map[int]entities.GeneRecord
	stats           atomic.Value // entities.ExtractionStats
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.associations.Store(make([]entities.DisorderAssociation, 0))
	dc.genes.Store(make([]entities.GeneRecord, 0))
	dc.byGene.Store(make(map[int][]entities.DisorderAssociation))
	dc.byDisorder.Store(make(map[int][]entities.DisorderAssociation))
	dc.genesMap.Store(make(map[int]entities.GeneRecord))
	dc.stats.Store(entities.ExtractionStats{})
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Thread-safe getters with type check

// GetAssociations returns the ordered association list
func (dc *DataContainer) GetAssociations() []entities.DisorderAssociation {
	if v := dc.associations.Load(); v != nil {
		if associations, ok := v.([]entities.DisorderAssociation); ok {
			return associations
		}
	}

	logging.Warn("Associations list is empty or invalid")
	return []entities.DisorderAssociation{}
}

// GetGenes returns the gene records parsed from genemap2
func (dc *DataContainer) GetGenes() []entities.GeneRecord {
	if v := dc.genes.Load(); v != nil {
		if genes, ok := v.([]entities.GeneRecord); ok {
			return genes
		}
	}

	logging.Warn("Gene list is empty or invalid")
	return []entities.GeneRecord{}
}

// GetAssociationsByGene returns the Entrez-ID-keyed lookup map
func (dc *DataContainer) GetAssociationsByGene() map[int][]entities.DisorderAssociation {
	if v := dc.byGene.Load(); v != nil {
		if byGene, ok := v.(map[int][]entities.DisorderAssociation); ok {
			return byGene
		}
	}

	logging.Warn("ByGene map is empty or invalid")
	return make(map[int][]entities.DisorderAssociation)
}

// GetAssociationsByDisorder returns the disorder-MIM-keyed lookup map
func (dc *DataContainer) GetAssociationsByDisorder() map[int][]entities.DisorderAssociation {
	if v := dc.byDisorder.Load(); v != nil {
		if byDisorder, ok := v.(map[int][]entities.DisorderAssociation); ok {
			return byDisorder
		}
	}

	logging.Warn("ByDisorder map is empty or invalid")
	return make(map[int][]entities.DisorderAssociation)
}

// GetGenesMap returns the Entrez-ID-keyed gene record map
func (dc *DataContainer) GetGenesMap() map[int]entities.GeneRecord {
	if v := dc.genesMap.Load(); v != nil {
		if genesMap, ok := v.(map[int]entities.GeneRecord); ok {
			return genesMap
		}
	}

	logging.Warn("Genes map is empty or invalid")
	return make(map[int]entities.GeneRecord)
}

// GetStats returns the counters of the last completed extraction run
func (dc *DataContainer) GetStats() entities.ExtractionStats {
	if v := dc.stats.Load(); v != nil {
		if stats, ok := v.(entities.ExtractionStats); ok {
			return stats
		}
	}

	logging.Warn("Could not get the extraction stats value")
	return entities.ExtractionStats{}
}

// GetLastUpdated returns the timestamp of the last data update
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a data update is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically swaps in a new extraction snapshot, rebuilding the
// lookup maps from the association list.
func (dc *DataContainer) UpdateData(associations []entities.DisorderAssociation, genes []entities.GeneRecord, stats entities.ExtractionStats) {
	byGene := make(map[int][]entities.DisorderAssociation)
	byDisorder := make(map[int][]entities.DisorderAssociation)
	for _, assoc := range associations {
		byGene[assoc.GeneEntrezID] = append(byGene[assoc.GeneEntrezID], assoc)
		byDisorder[assoc.DisorderMim] = append(byDisorder[assoc.DisorderMim], assoc)
	}

	genesMap := make(map[int]entities.GeneRecord, len(genes))
	for _, gene := range genes {
		genesMap[gene.EntrezGeneID] = gene
	}

	// Atomic swap (zero downtime replacement)
	dc.associations.Store(associations)
	dc.genes.Store(genes)
	dc.byGene.Store(byGene)
	dc.byDisorder.Store(byDisorder)
	dc.genesMap.Store(genesMap)
	dc.stats.Store(stats)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a data update operation
// Returns true if update can proceed, false if another update is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a data update operation
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
