package models

// BackupDocument is the single transportable document produced by a full
// data export. Every field of every record is carried verbatim; this is
// the disaster-recovery path.
type BackupDocument struct {
	Products      []*Product  `json:"products"`
	Customers     []*Customer `json:"customers"`
	Invoices      []*Invoice  `json:"invoices"`
	CurrentSeller *Customer   `json:"currentSeller"`
}
