package inventory

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SourceRecord is one data-source entry in the inventory. Field order matches
// the persisted CSV/XLSX columns.
type SourceRecord struct {
	SourceID        string `json:"source_id" validate:"required"`
	Topic           string `json:"topic"`
	SourceName      string `json:"source_name" validate:"required"`
	URL             string `json:"url" validate:"omitempty,url"`
	DateAccessed    string `json:"date_accessed" validate:"omitempty,datetime=2006-01-02"`
	DataYears       string `json:"data_years"`
	GeographicScope string `json:"geographic_scope"`
	FileLocation    string `json:"file_location"`
	DataFormat      string `json:"data_format"`
	KeyVariables    string `json:"key_variables"`
	DataQuality     string `json:"data_quality"`
	Limitations     string `json:"limitations"`
	UpdateFrequency string `json:"update_frequency"`
	ContactInfo     string `json:"contact_info" validate:"omitempty,email"`
	Notes           string `json:"notes"`
}

// Headers are the persisted column labels, in field order.
var Headers = []string{
	"Source ID",
	"Topic",
	"Source Name",
	"URL",
	"Date Accessed",
	"Data Years",
	"Geographic Scope",
	"File Location",
	"Data Format",
	"Key Variables",
	"Data Quality",
	"Limitations",
	"Update Frequency",
	"Contact Info",
	"Notes",
}

// Topics are the suggested subject areas.
var Topics = []string{
	"Transport", "Economics", "Environment", "Fleet Management", "Operations",
	"Labor Market", "Infrastructure", "Safety", "Digitalization", "Other",
}

// DataFormats are the recognized file formats.
var DataFormats = []string{
	"CSV", "TSV", "Excel", "JSON", "XML", "Database", "API", "PDF", "Other",
}

// UpdateFrequencies are the recognized refresh cadences.
var UpdateFrequencies = []string{
	"Real-time", "Daily", "Weekly", "Monthly", "Quarterly", "Annual", "Ad-hoc", "Static",
}

var validate = validator.New()

// Validate checks the record's required fields and formats. Enum fields are
// coerced separately; free text passes through untouched.
func (r *SourceRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid inventory record: %w", err)
	}
	return nil
}

func (r *SourceRecord) values() []string {
	return []string{
		r.SourceID, r.Topic, r.SourceName, r.URL, r.DateAccessed,
		r.DataYears, r.GeographicScope, r.FileLocation, r.DataFormat,
		r.KeyVariables, r.DataQuality, r.Limitations, r.UpdateFrequency,
		r.ContactInfo, r.Notes,
	}
}

func recordFromValues(values []string) SourceRecord {
	padded := make([]string, len(Headers))
	copy(padded, values)
	return SourceRecord{
		SourceID:        padded[0],
		Topic:           padded[1],
		SourceName:      padded[2],
		URL:             padded[3],
		DateAccessed:    padded[4],
		DataYears:       padded[5],
		GeographicScope: padded[6],
		FileLocation:    padded[7],
		DataFormat:      padded[8],
		KeyVariables:    padded[9],
		DataQuality:     padded[10],
		Limitations:     padded[11],
		UpdateFrequency: padded[12],
		ContactInfo:     padded[13],
		Notes:           padded[14],
	}
}
