package engine

import (
	"slices"

	"socialdash/internal/models"
)

// Dataset maps each period to its ordered entity records.
// It is built once and never mutated afterwards.
type Dataset struct {
	periods   Periods
	records   map[PeriodKey][]models.EntityRecord
	UpdatedAt string
}

// NewDataset copies records so later changes to the caller's slices are not seen.
func NewDataset(periods Periods, records map[PeriodKey][]models.EntityRecord, updatedAt string) *Dataset {
	ds := &Dataset{
		periods:   periods,
		records:   make(map[PeriodKey][]models.EntityRecord, len(records)),
		UpdatedAt: updatedAt,
	}
	for k, list := range records {
		ds.records[k] = slices.Clone(list)
	}
	return ds
}

func (ds *Dataset) Periods() Periods { return ds.periods }

// Records returns a copy of the records for key; nil when the period has no data.
func (ds *Dataset) Records(key PeriodKey) []models.EntityRecord {
	list, ok := ds.records[key]
	if !ok {
		return nil
	}
	return slices.Clone(list)
}

// PriorRecords returns the records of the period before key. ok is false when
// key is the earliest period or unknown.
func (ds *Dataset) PriorRecords(key PeriodKey) (records []models.EntityRecord, ok bool) {
	prev, ok := ds.periods.Predecessor(key)
	if !ok {
		return nil, false
	}
	return ds.Records(prev), true
}

// Entity looks up a record by name. The record is returned unchanged so click
// handlers get exactly what the dataset holds.
func (ds *Dataset) Entity(key PeriodKey, name string) (models.EntityRecord, bool) {
	for _, r := range ds.records[key] {
		if r.Name == name {
			return r, true
		}
	}
	return models.EntityRecord{}, false
}

// RecordCount is the number of records across all periods.
func (ds *Dataset) RecordCount() int {
	n := 0
	for _, list := range ds.records {
		n += len(list)
	}
	return n
}
