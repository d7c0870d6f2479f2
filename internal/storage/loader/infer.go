package loader

import (
	"strconv"

	"github.com/leengari/csvbreaker/internal/domain/schema"
)

// InferType picks the narrowest type every non-empty cell fits:
// INT, then FLOAT, then TEXT. A column with no non-empty cells is TEXT.
func InferType(cells []string) schema.ColumnType {
	sawValue := false
	isInt, isFloat := true, true

	for _, cell := range cells {
		if cell == "" {
			continue
		}
		sawValue = true

		if isInt && !isIntLiteral(cell) {
			isInt = false
		}
		if !isInt && !isFloatLiteral(cell) {
			isFloat = false
			break
		}
	}

	switch {
	case !sawValue:
		return schema.ColumnTypeText
	case isInt:
		return schema.ColumnTypeInt
	case isFloat:
		return schema.ColumnTypeFloat
	default:
		return schema.ColumnTypeText
	}
}

// parseCell converts CSV text to the value for a column of the given type.
// The type must come from InferType (or be TEXT), so conversion cannot fail.
func parseCell(cell string, colType schema.ColumnType) interface{} {
	if cell == "" {
		return nil
	}

	switch colType {
	case schema.ColumnTypeInt:
		v, _ := strconv.ParseInt(cell, 10, 64)
		return v
	case schema.ColumnTypeFloat:
		v, _ := strconv.ParseFloat(cell, 64)
		return v
	default:
		return cell
	}
}

func isIntLiteral(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isFloatLiteral accepts plain decimal notation with an optional exponent.
// Hex floats, "inf", "nan" and out-of-range values stay TEXT.
func isFloatLiteral(s string) bool {
	digits := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-':
		default:
			return false
		}
	}
	if !digits {
		return false
	}

	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
