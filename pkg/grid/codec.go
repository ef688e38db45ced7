package grid

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// field file parse states
const (
	PARSE_ROW_COUNT = iota
	PARSE_COL_COUNT = iota
	PARSE_BOUND     = iota
	PARSE_CELLS     = iota
)

// land cells are encoded as a negative concentration in field files
const landMarker = -1

// AsString renders the field in the line-oriented text format understood by
// NewIceFieldFromString.
func (f *IceField) AsString() string {
	var sb strings.Builder

	// write the dimensions and the geographic bound
	sb.WriteString(fmt.Sprintf("%v\n", f.Rows))
	sb.WriteString(fmt.Sprintf("%v\n", f.Cols))
	sb.WriteString(fmt.Sprintf("%v %v %v %v\n", f.Bound.Min[0], f.Bound.Min[1], f.Bound.Max[0], f.Bound.Max[1]))

	sb.WriteString("#Cells\n")
	// one line per row, land encoded as -1
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			if col > 0 {
				sb.WriteString(" ")
			}
			i := row*f.Cols + col
			if f.Land != nil && f.Land[i] {
				sb.WriteString(strconv.Itoa(landMarker))
			} else {
				sb.WriteString(strconv.FormatFloat(f.Values[i], 'g', -1, 64))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func WriteField(f *IceField, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(f.AsString()); err != nil {
		return err
	}
	return writer.Flush()
}

func NewIceFieldFromString(text string) (*IceField, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))

	field := &IceField{}
	numParsedRows := 0

	parseState := PARSE_ROW_COUNT
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}

		switch parseState {
		case PARSE_ROW_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("field file: invalid row count %q", line)
			}
			field.Rows = val
			parseState = PARSE_COL_COUNT
		case PARSE_COL_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("field file: invalid column count %q", line)
			}
			field.Cols = val
			if field.Rows <= 0 || field.Cols <= 0 {
				return nil, fmt.Errorf("field file: invalid dimensions %dx%d", field.Rows, field.Cols)
			}
			field.Values = make([]float64, 0, field.Rows*field.Cols)
			field.Land = make([]bool, 0, field.Rows*field.Cols)
			parseState = PARSE_BOUND
		case PARSE_BOUND:
			var minLon, minLat, maxLon, maxLat float64
			if _, err := fmt.Sscanf(line, "%f %f %f %f", &minLon, &minLat, &maxLon, &maxLat); err != nil {
				return nil, fmt.Errorf("field file: invalid bound %q", line)
			}
			field.Bound = orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}
			parseState = PARSE_CELLS
		case PARSE_CELLS:
			cols := strings.Fields(line)
			if len(cols) != field.Cols {
				return nil, fmt.Errorf("field file: row %d has %d cells, want %d", numParsedRows, len(cols), field.Cols)
			}
			for _, token := range cols {
				val, err := strconv.ParseFloat(token, 64)
				if err != nil {
					return nil, fmt.Errorf("field file: invalid concentration %q", token)
				}
				if val < 0 {
					field.Values = append(field.Values, 0)
					field.Land = append(field.Land, true)
				} else {
					field.Values = append(field.Values, val)
					field.Land = append(field.Land, false)
				}
			}
			numParsedRows++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if numParsedRows != field.Rows {
		return nil, fmt.Errorf("field file: parsed %d rows, want %d", numParsedRows, field.Rows)
	}

	return field, nil
}

func NewIceFieldFromFile(filename string) (*IceField, error) {
	text, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewIceFieldFromString(string(text))
}
