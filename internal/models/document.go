package models

// AssetDocument is the optional supporting attachment for one asset.
// The original filename is kept for display; StoredName is the UUIDv7
// name of the file on disk.
type AssetDocument struct {
	Base
	AssetID     uint   `gorm:"not null;uniqueIndex" json:"asset_id"`
	FileName    string `gorm:"not null" json:"file_name"`
	StoredName  string `gorm:"not null;uniqueIndex" json:"-"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	URL         string `gorm:"-" json:"url,omitempty"`
}
