package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelmondragon/sportomic-backend/pkg/enums"
)

// ErrNotObject is returned when the body is valid JSON but not an object.
var ErrNotObject = errors.New("import body must be a JSON object")

// Batch is a decoded import body. Array elements that were not JSON objects
// are counted in Invalid and later reported as failed records.
type Batch struct {
	Records map[enums.Dataset][]map[string]any
	Invalid map[enums.Dataset]int
}

// DecodeBatch parses {venues:[], members:[], bookings:[], transactions:[]}.
// Unknown keys are ignored and a dataset whose value is not an array is
// treated as empty.
func DecodeBatch(body []byte) (Batch, error) {
	batch := Batch{
		Records: make(map[enums.Dataset][]map[string]any),
		Invalid: make(map[enums.Dataset]int),
	}

	var top any
	if err := decodeStrict(body, &top); err != nil {
		return batch, err
	}
	if top == nil {
		return batch, ErrNotObject
	}
	fields, ok := top.(map[string]any)
	if !ok {
		return batch, ErrNotObject
	}

	for _, dataset := range enums.Datasets {
		items, ok := fields[dataset.String()].([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				batch.Invalid[dataset]++
				continue
			}
			batch.Records[dataset] = append(batch.Records[dataset], obj)
		}
	}
	return batch, nil
}

// Len is the number of records in the batch, invalid ones included.
func (b Batch) Len() int {
	total := 0
	for _, records := range b.Records {
		total += len(records)
	}
	for _, n := range b.Invalid {
		total += n
	}
	return total
}

func decodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after top-level value")
	}
	return nil
}
