package models

import "errors"

// Quantity holds the available stock per size bucket for one product.
// Counts never go negative: the check constraints back up the conditional
// UPDATEs the services issue.
type Quantity struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint `gorm:"uniqueIndex;not null" json:"product_id"`
	Sm        int  `gorm:"not null;default:0;check:sm >= 0" json:"sm"`
	Md        int  `gorm:"not null;default:0;check:md >= 0" json:"md"`
	Lg        int  `gorm:"not null;default:0;check:lg >= 0" json:"lg"`
	Xl        int  `gorm:"not null;default:0;check:xl >= 0" json:"xl"`
	DoubleXl  int  `gorm:"column:doublexl;not null;default:0;check:doublexl >= 0" json:"doublexl"`
}

var ErrInvalidSize = errors.New("invalid size")

// sizeColumns maps API size names to their quantity columns. The column names
// are interpolated into UPDATE statements, so the map doubles as a whitelist.
var sizeColumns = map[string]string{
	"sm":       "sm",
	"md":       "md",
	"lg":       "lg",
	"xl":       "xl",
	"doublexl": "doublexl",
}

// SizeColumn returns the quantity column for a size name.
func SizeColumn(size string) (string, error) {
	col, ok := sizeColumns[size]
	if !ok {
		return "", ErrInvalidSize
	}
	return col, nil
}

// ValidSize reports whether size names a known bucket.
func ValidSize(size string) bool {
	_, ok := sizeColumns[size]
	return ok
}

// Available returns the count in the named bucket.
func (q *Quantity) Available(size string) (int, error) {
	switch size {
	case "sm":
		return q.Sm, nil
	case "md":
		return q.Md, nil
	case "lg":
		return q.Lg, nil
	case "xl":
		return q.Xl, nil
	case "doublexl":
		return q.DoubleXl, nil
	default:
		return 0, ErrInvalidSize
	}
}
