package billing

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Wire identifiers for the change and update variants.
const (
	changeAdded   = "added"
	changeUpdated = "updated"
	changeRemoved = "removed"

	updateAddress     = "address"
	updateName        = "name"
	updateServiceRate = "service-rate"
	updateInvoiced    = "invoiced"
	updatePaid        = "paid"
	updateTaxes       = "taxes"
)

// MarshalJSON encodes the event as a flat JSON object: key and timestamp
// first, then the change identifier, then the change's own fields.
func (e Event) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("key", e.Key)
	w.Append("timestamp", e.Timestamp.UTC().Format(time.RFC3339))

	switch v := e.Change.(type) {
	case Added:
		w.Append("change", changeAdded)
		w.Append("name", v.Name)
		w.Append("address", v.Address)
	case Updated:
		w.Append("change", changeUpdated)
		switch u := v.Update.(type) {
		case SetAddress:
			w.Append("update", updateAddress)
			w.Append("address", u.Address)
		case SetName:
			w.Append("update", updateName)
			w.Append("name", u.Name)
		case SetServiceRate:
			w.Append("update", updateServiceRate)
			w.Append("service", u.Service)
			w.Append("effective", u.Effective)
			w.EmbedFrom(u.Rate)
		case Invoiced:
			w.Append("update", updateInvoiced)
			w.Append("invoice", u.Invoice)
		case PaidInvoice:
			w.Append("update", updatePaid)
			w.Append("number", u.Number)
			w.Append("on", u.On)
		case SetTaxes:
			w.Append("update", updateTaxes)
			w.Append("effective", u.Effective)
			w.Append("taxes", u.Taxes)
		default:
			return nil, fmt.Errorf("unknown update type: %T", v.Update)
		}
	case Removed:
		w.Append("change", changeRemoved)
	default:
		return nil, fmt.Errorf("unknown change type: %T", e.Change)
	}
	return w.MarshalJSON()
}

// rateCmd is a specialized struct to read a flattened rate in three fields.
type rateCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Per      Unit            `json:"per"`
}

func (r rateCmd) Rate() Rate {
	return Rate{Amount: M(r.Amount, r.Currency), Per: r.Per}
}

// decodeEvent decodes a single event object, dispatching on the change and
// update identifiers.
func decodeEvent(data []byte) (Event, error) {
	var identifier struct {
		Key       string `json:"key"`
		Timestamp string `json:"timestamp"`
		Change    string `json:"change"`
		Update    string `json:"update"`
	}
	if err := json.Unmarshal(data, &identifier); err != nil {
		return Event{}, fmt.Errorf("could not identify event in %q: %w", string(data), err)
	}
	at, err := time.Parse(time.RFC3339, identifier.Timestamp)
	if err != nil {
		return Event{}, fmt.Errorf("invalid event timestamp %q: %w", identifier.Timestamp, err)
	}

	var change Change
	switch identifier.Change {
	case changeAdded:
		var temp struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		}
		if err := json.Unmarshal(data, &temp); err != nil {
			return Event{}, err
		}
		change = Added{Name: temp.Name, Address: temp.Address}

	case changeRemoved:
		change = Removed{}

	case changeUpdated:
		var update Update
		switch identifier.Update {
		case updateAddress:
			var temp struct {
				Address string `json:"address"`
			}
			if err := json.Unmarshal(data, &temp); err != nil {
				return Event{}, err
			}
			update = SetAddress{Address: temp.Address}
		case updateName:
			var temp struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(data, &temp); err != nil {
				return Event{}, err
			}
			update = SetName{Name: temp.Name}
		case updateServiceRate:
			var temp struct {
				rateCmd
				Service   string `json:"service"`
				Effective Date   `json:"effective"`
			}
			if err := json.Unmarshal(data, &temp); err != nil {
				return Event{}, err
			}
			update = SetServiceRate{Service: temp.Service, Effective: temp.Effective, Rate: temp.Rate()}
		case updateInvoiced:
			var temp struct {
				Invoice *Invoice `json:"invoice"`
			}
			if err := json.Unmarshal(data, &temp); err != nil {
				return Event{}, err
			}
			if temp.Invoice == nil {
				return Event{}, fmt.Errorf("invoiced update without an invoice in %q", string(data))
			}
			update = Invoiced{Invoice: temp.Invoice}
		case updatePaid:
			var temp struct {
				Number int  `json:"number"`
				On     Date `json:"on"`
			}
			if err := json.Unmarshal(data, &temp); err != nil {
				return Event{}, err
			}
			update = PaidInvoice{Number: temp.Number, On: temp.On}
		case updateTaxes:
			var temp struct {
				Effective Date      `json:"effective"`
				Taxes     []TaxRate `json:"taxes"`
			}
			if err := json.Unmarshal(data, &temp); err != nil {
				return Event{}, err
			}
			update = SetTaxes{Effective: temp.Effective, Taxes: temp.Taxes}
		default:
			return Event{}, fmt.Errorf("unknown update kind: %q", identifier.Update)
		}
		change = Updated{Update: update}

	default:
		return Event{}, fmt.Errorf("unknown change kind: %q", identifier.Change)
	}

	return Event{Key: identifier.Key, Timestamp: at.UTC(), Change: change}, nil
}

// EncodeEvent marshals a single event and writes it to the writer followed by
// a newline, in JSONL format.
func EncodeEvent(w io.Writer, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// EncodeEvents persists events to an io.Writer in the canonical JSONL format,
// one event per line, in log order.
func EncodeEvents(w io.Writer, events []Event) error {
	for _, e := range events {
		if err := EncodeEvent(w, e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeEvents reads an event log in any of the known encodings: the
// canonical JSONL format is tried first, then the legacy whole-file JSON
// array. The first encoding that parses wins; if none does, the error wraps
// ErrFormat.
func DecodeEvents(r io.Reader) ([]Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading event log: %w", err)
	}

	events, jsonlErr := decodeJSONL(data)
	if jsonlErr == nil {
		return events, nil
	}
	events, legacyErr := decodeLegacyArray(data)
	if legacyErr == nil {
		return events, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrFormat, jsonlErr)
}

// decodeJSONL decodes the canonical format: one event object per line.
func decodeJSONL(data []byte) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		e, err := decodeEvent(line)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// decodeLegacyArray decodes the legacy format: the whole log as a single JSON
// array of event objects.
func decodeLegacyArray(data []byte) ([]Event, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(raws))
	for _, raw := range raws {
		e, err := decodeEvent(raw)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
