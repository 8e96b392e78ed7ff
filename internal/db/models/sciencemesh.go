package models

import (
	"errors"
	"math"
)

// SettingsTable is the table holding the single ScienceMesh settings row.
const SettingsTable = "sciencemesh"

// SettingsID is the primary key of the settings row written by this service.
const SettingsID uint64 = 1

// MaxCounter is the largest counter a signed 64-bit column stores.
const MaxCounter uint64 = math.MaxInt64

// ErrCounterRange is returned for a counter above MaxCounter.
var ErrCounterRange = errors.New("counter exceeds the storable range")

// SettingsRecord is the administrative ScienceMesh configuration of this site.
// The table holds at most one row.
type SettingsRecord struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement:false" json:"-" form:"-"`
	APIKey     string `gorm:"column:apikey;size:255" json:"apikey" form:"apikey"`
	SiteName   string `gorm:"column:sitename;size:255" json:"sitename" form:"sitename"`
	SiteURL    string `gorm:"column:siteurl;size:255" json:"siteurl" form:"siteurl"`
	Country    string `gorm:"column:country;size:100" json:"country" form:"country"`
	IOPURL     string `gorm:"column:iopurl;size:255" json:"iopurl" form:"iopurl"`
	NumUsers   uint64 `gorm:"column:numusers;not null" json:"numusers" form:"numusers"`
	NumFiles   uint64 `gorm:"column:numfiles;not null" json:"numfiles" form:"numfiles"`
	NumStorage uint64 `gorm:"column:numstorage;not null" json:"numstorage" form:"numstorage"`
}

// TableName implements gorm's tabler interface.
func (SettingsRecord) TableName() string {
	return SettingsTable
}

// DefaultSettingsRecord is what an unconfigured site reports.
func DefaultSettingsRecord() SettingsRecord {
	return SettingsRecord{}
}

// CheckCounters reports ErrCounterRange when a counter cannot be stored.
func (r SettingsRecord) CheckCounters() error {
	if r.NumUsers > MaxCounter || r.NumFiles > MaxCounter || r.NumStorage > MaxCounter {
		return ErrCounterRange
	}

	return nil
}
