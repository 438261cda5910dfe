package schema

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"catalog-service/internal/models"
)

// The products table has shipped with several physical layouts over time:
// images as a single scalar column, images as a JSON-encoded array column,
// and with or without the available/discount columns. This package is the
// only place that knows about those shapes. Decode maps whatever the store
// returns onto the canonical Product; Encode always emits the newest layout
// (JSON array images, integer availability flag) no matter what was read.

// Anomaly field labels reported by DecodeProduct when stored data is
// malformed and a default had to be substituted.
const (
	AnomalyImages   = "images"
	AnomalyPrice    = "price"
	AnomalyDiscount = "discount"
)

// NullFlag scans a boolean-ish column. The availability flag has been a
// postgres boolean, an integer and a textual value depending on the
// schema vintage; all of them land here.
type NullFlag struct {
	Bool  bool
	Valid bool
}

// Scan implements sql.Scanner.
func (f *NullFlag) Scan(value interface{}) error {
	f.Bool, f.Valid = false, false
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		f.Bool, f.Valid = v, true
	case int64:
		f.Bool, f.Valid = v != 0, true
	case float64:
		f.Bool, f.Valid = v != 0, true
	case []byte:
		f.Bool, f.Valid = truthy(string(v)), true
	case string:
		f.Bool, f.Valid = truthy(v), true
	default:
		return fmt.Errorf("cannot scan %T into NullFlag", value)
	}
	return nil
}

// ProductRow is a physical products row. Every column that has ever been
// optional is nullable; columns missing from the live table simply stay
// invalid after scanning.
type ProductRow struct {
	ID          int64
	Name        sql.NullString
	Description sql.NullString
	Price       sql.NullString
	Discount    sql.NullString
	Available   NullFlag
	Image       sql.NullString // legacy scalar image column
	Images      sql.NullString // JSON-encoded array column
}

// ProductRecord is the write-path shape: one row in the newest layout.
type ProductRecord struct {
	Name        string
	Description string
	Price       float64
	Discount    float64
	Available   int
	Images      string // JSON-encoded array of image references
}

// ProductInput is a create/update payload as received from a client. Price,
// Discount and Available are loosely typed on purpose: clients have
// historically sent numbers as strings and omitted fields freely.
type ProductInput struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       interface{} `json:"price"`
	Discount    interface{} `json:"discount"`
	Available   interface{} `json:"available"`
	Images      []string    `json:"images"`
}

// DecodeProduct maps a physical row onto the canonical Product. It never
// fails: malformed values resolve to safe defaults and are reported back as
// anomaly labels so the caller can log and count them.
func DecodeProduct(row ProductRow) (models.Product, []string) {
	var anomalies []string

	p := models.Product{
		ID:          row.ID,
		Name:        row.Name.String,
		Description: row.Description.String,
		Available:   true,
	}

	p.Price, anomalies = decodeNumeric(row.Price, AnomalyPrice, anomalies)
	p.Discount, anomalies = decodeNumeric(row.Discount, AnomalyDiscount, anomalies)

	if row.Available.Valid {
		p.Available = row.Available.Bool
	}

	switch {
	case row.Image.Valid:
		p.Images = []string{row.Image.String}
	case row.Images.Valid:
		var imgs []string
		if err := json.Unmarshal([]byte(row.Images.String), &imgs); err != nil || imgs == nil {
			if strings.TrimSpace(row.Images.String) != "" && strings.TrimSpace(row.Images.String) != "null" {
				anomalies = append(anomalies, AnomalyImages)
			}
			p.Images = []string{}
		} else {
			p.Images = imgs
		}
	default:
		p.Images = []string{}
	}

	return p, anomalies
}

// EncodeProduct maps a client payload onto the write-path row shape. Numeric
// coercion mirrors the read path: anything that does not parse becomes 0.
// A missing available field encodes as 1, matching the decode default of
// treating availability as opt-out.
func EncodeProduct(in ProductInput) ProductRecord {
	rec := ProductRecord{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       coerceNumber(in.Price),
		Discount:    coerceNumber(in.Discount),
		Available:   1,
	}

	if in.Available != nil && !coerceBool(in.Available) {
		rec.Available = 0
	}

	imgs := in.Images
	if imgs == nil {
		imgs = []string{}
	}
	encoded, err := json.Marshal(imgs)
	if err != nil {
		encoded = []byte("[]")
	}
	rec.Images = string(encoded)

	return rec
}

func decodeNumeric(v sql.NullString, field string, anomalies []string) (float64, []string) {
	if !v.Valid || v.String == "" {
		return 0, anomalies
	}
	f, err := strconv.ParseFloat(v.String, 64)
	if err != nil {
		return 0, append(anomalies, field)
	}
	if f < 0 {
		return 0, anomalies
	}
	return f, anomalies
}

// coerceNumber turns a loosely typed payload value into a non-negative
// float. JSON numbers arrive as float64, but strings like "9.99" are
// accepted too.
func coerceNumber(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		f, _ = n.Float64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if f < 0 {
		return 0
	}
	return f
}

// coerceBool loosely interprets a payload value as a flag.
func coerceBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case string:
		return truthy(b)
	default:
		return false
	}
}

// truthy interprets the stored availability flag, which has been a boolean,
// an integer and a string depending on the deployment.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "f", "false", "no":
		return false
	}
	return true
}
